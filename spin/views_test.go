// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wannier-exchange/lkag/lattice"
)

func TestUpDownViews(t *testing.T) {
	m := New(NonCollinear, 2)
	m.Set(0, 0, 1)
	m.Set(2, 2, 2)
	m.Set(0, 2, 3)
	m.Set(2, 0, 4)

	assert.Equal(t, complex128(1), m.Up().At(0, 0))
	assert.Equal(t, complex128(2), m.Down().At(0, 0))
	assert.Equal(t, complex128(3), m.UpDown().At(0, 0))
	assert.Equal(t, complex128(4), m.DownUp().At(0, 0))
}

func TestAtomViewAllStitchesQuadrants(t *testing.T) {
	m := New(NonCollinear, 2)
	a := lattice.OrbitalRange{Lo: 0, Hi: 1}
	b := lattice.OrbitalRange{Lo: 1, Hi: 2}
	m.Set(a.Lo, b.Lo, 1)     // UU
	m.Set(a.Lo, 2+b.Lo, 2)   // UD
	m.Set(2+a.Lo, b.Lo, 3)   // DU
	m.Set(2+a.Lo, 2+b.Lo, 4) // DD

	v, err := m.AtomView(a, b, All)
	require.NoError(t, err)
	r, c := v.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, complex128(1), v.At(0, 0))
	assert.Equal(t, complex128(2), v.At(0, 1))
	assert.Equal(t, complex128(3), v.At(1, 0))
	assert.Equal(t, complex128(4), v.At(1, 1))
}

func TestAtomViewOutOfRange(t *testing.T) {
	m := New(NonCollinear, 2)
	_, err := m.AtomView(lattice.OrbitalRange{Lo: 0, Hi: 5}, lattice.OrbitalRange{Lo: 0, Hi: 1}, UU)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestAtomViewInvalidSelector(t *testing.T) {
	m := New(NonCollinear, 2)
	_, err := m.AtomView(lattice.OrbitalRange{Lo: 0, Hi: 1}, lattice.OrbitalRange{Lo: 0, Hi: 1}, SpinSel(99))
	require.ErrorIs(t, err, ErrShapeMismatch)
}
