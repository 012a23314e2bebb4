// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func identity2() mat.CMatrix {
	return mat.NewCDense(2, 2, []complex128{1, 0, 0, 1})
}

func TestNewTBOperatorShapeMismatch(t *testing.T) {
	terms := []Term{
		{R: Vector{0, 0, 0}, H: identity2()},
		{R: Vector{1, 0, 0}, H: mat.NewCDense(3, 3, nil)},
	}
	_, err := NewTBOperator(terms, Collinear)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNewTBOperatorEmpty(t *testing.T) {
	_, err := NewTBOperator(nil, Collinear)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNewTBOperatorOK(t *testing.T) {
	tb, err := NewTBOperator([]Term{{R: Vector{0, 0, 0}, H: identity2()}}, NonCollinear)
	require.NoError(t, err)
	assert.Equal(t, 2, tb.Dim)
	assert.Equal(t, NonCollinear, tb.Layout)
}

func TestVectorScale(t *testing.T) {
	r := Vector{1, -2, 3}
	assert.Equal(t, Vector{2, -4, 6}, r.Scale(2))
}

func TestKPointDot(t *testing.T) {
	k := KPoint{0.5, 0.25, 0}
	r := Vector{2, 4, 1}
	assert.InDelta(t, 1.0+1.0, k.Dot(r), 1e-12)
}

func TestCellTranslate(t *testing.T) {
	cell := Cell{M: mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})}
	p := cell.Translate([3]float64{0, 0, 0}, Vector{1, 2, 3})
	assert.InDeltaSlice(t, []float64{1, 2, 3}, p[:], 1e-12)
}

func TestValidateOrbitalCoverageOverlap(t *testing.T) {
	atoms := []Atom{
		{Symbol: "A", Indices: &OrbitalRange{0, 2}},
		{Symbol: "B", Indices: &OrbitalRange{1, 3}},
	}
	err := ValidateOrbitalCoverage(atoms, 3)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestValidateOrbitalCoverageOutOfRange(t *testing.T) {
	atoms := []Atom{{Symbol: "A", Indices: &OrbitalRange{0, 5}}}
	err := ValidateOrbitalCoverage(atoms, 3)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestValidateOrbitalCoveragePartial(t *testing.T) {
	atoms := []Atom{
		{Symbol: "A", Indices: &OrbitalRange{0, 1}},
		{Symbol: "B"}, // missing orbitals: allowed
	}
	require.NoError(t, ValidateOrbitalCoverage(atoms, 3))
}

func TestLayoutString(t *testing.T) {
	assert.Equal(t, "Collinear", Collinear.String())
	assert.Equal(t, "NonCollinear", NonCollinear.String())
}
