// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptionsValidates(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())
}

func TestValidateRejectsNonPositiveGrid(t *testing.T) {
	o := DefaultOptions()
	o.NK[1] = 0
	require.ErrorIs(t, o.Validate(), ErrInvalidOptions)
}

func TestValidateRejectsFewContourPoints(t *testing.T) {
	o := DefaultOptions()
	o.NWh = 2
	require.ErrorIs(t, o.Validate(), ErrInvalidOptions)
}

func TestValidateRejectsInvertedBounds(t *testing.T) {
	o := DefaultOptions()
	o.Wh, o.Emax = 1, -1
	require.ErrorIs(t, o.Validate(), ErrInvalidOptions)
}

func TestValidateRejectsNonPositiveShapeP(t *testing.T) {
	o := DefaultOptions()
	o.ContourShape.P = 0
	require.ErrorIs(t, o.Validate(), ErrInvalidOptions)
}

func TestValidateAcceptsTunedOptions(t *testing.T) {
	o := DefaultOptions()
	o.SiteDiagonal = true
	o.Workers = 4
	assert.NoError(t, o.Validate())
}
