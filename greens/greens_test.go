// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package greens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wannier-exchange/lkag/interp"
	"github.com/wannier-exchange/lkag/lattice"
	"github.com/wannier-exchange/lkag/spin"
)

// trivialKData builds a single-k, single-orbital, diagonal-Hamiltonian
// KData whose eigenvectors are the identity, so G(k,omega) reduces to
// the textbook scalar resolvent 1/(mu+omega-E).
func trivialKData(eUp, eDown float64, phase complex128) *interp.KData {
	vecs := spin.New(spin.NonCollinear, 1)
	vecs.Set(0, 0, 1)
	vecs.Set(1, 1, 1)
	return &interp.KData{
		K:      []lattice.KPoint{{0, 0, 0}},
		Eig:    []spin.EigPair{{Vals: spin.MagneticVector{eUp, eDown}, Vecs: vecs}},
		Phases: []complex128{phase},
	}
}

func TestIntegrateGkIntoScalarResolvent(t *testing.T) {
	kdata := trivialKData(1.0, -1.0, 1)
	mu := 0.5
	omega := complex(0, 2)

	gOut := spin.New(spin.NonCollinear, 1)
	sc := newScratch(spin.NonCollinear, 1)
	require.NoError(t, IntegrateGkInto(gOut, omega, mu, kdata, spin.NonCollinear, 1, sc))

	wantUU := 1 / (complex(mu, 0) + omega - complex(1.0, 0))
	wantDD := 1 / (complex(mu, 0) + omega - complex(-1.0, 0))
	assert.InDelta(t, real(wantUU), real(gOut.At(0, 0)), 1e-9)
	assert.InDelta(t, imag(wantUU), imag(gOut.At(0, 0)), 1e-9)
	assert.InDelta(t, real(wantDD), real(gOut.At(1, 1)), 1e-9)
	assert.InDelta(t, imag(wantDD), imag(gOut.At(1, 1)), 1e-9)
}

func TestIntegrateGkIntoAppliesPhaseAsymmetrically(t *testing.T) {
	phase := complex(0, 1) // i: conj is -i
	kdata := trivialKData(1.0, 1.0, phase)
	mu, omega := 0.0, complex(0, 5)

	gOut := spin.New(spin.NonCollinear, 1)
	sc := newScratch(spin.NonCollinear, 1)
	require.NoError(t, IntegrateGkInto(gOut, omega, mu, kdata, spin.NonCollinear, 1, sc))

	resolvent := 1 / (omega - complex(1.0, 0))
	wantUU := resolvent * phase
	wantDD := resolvent * complexConj(phase)
	assert.InDelta(t, real(wantUU), real(gOut.At(0, 0)), 1e-9)
	assert.InDelta(t, imag(wantUU), imag(gOut.At(0, 0)), 1e-9)
	assert.InDelta(t, real(wantDD), real(gOut.At(1, 1)), 1e-9)
	assert.InDelta(t, imag(wantDD), imag(gOut.At(1, 1)), 1e-9)
}

func TestAssembleAllLength(t *testing.T) {
	kdata := trivialKData(0.5, -0.5, 1)
	omegaGrid := []complex128{complex(0, 1), complex(0, 2), complex(0, 3)}
	out, err := AssembleAll(omegaGrid, 0, kdata, spin.NonCollinear, 1, 1)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}
