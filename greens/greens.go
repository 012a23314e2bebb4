// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package greens constructs the k-averaged one-particle Green's function
// G(k,omega) at each contour energy and assembles the full omega-grid of
// results (spec.md §4.6).
package greens

import (
	"sync"

	"github.com/wannier-exchange/lkag/interp"
	"github.com/wannier-exchange/lkag/internal/workerpool"
	"github.com/wannier-exchange/lkag/spin"
)

// scratch holds the per-worker buffers reused across omega values: the
// eigenvectors scaled by the diagonal resolvent, the eigenvectors'
// adjoint, and their product, all cleared at the top of every work item.
type scratch struct {
	resolvent *spin.SpinBlockMatrix // V . diag(1/(mu+omega-E))
	adjoint   *spin.SpinBlockMatrix // V^dagger
	product   *spin.SpinBlockMatrix // resolvent . adjoint
}

func newScratch(layout spin.Layout, n int) *scratch {
	return &scratch{
		resolvent: spin.New(layout, n),
		adjoint:   spin.New(layout, n),
		product:   spin.New(layout, n),
	}
}

// IntegrateGkInto accumulates G(k,omega) = V . diag(1/(mu+omega-E)) . V^H,
// averaged over kdata's grid with forward/backward translation phases, into
// gOut (which is cleared first). The up-up block is scaled by phases[k]
// (the R-displacement phase), the down-down block by conj(phases[k]), and
// the off-diagonal spin blocks are copied unphased, matching spec.md
// §4.6 exactly, including its non-obvious up/down phase asymmetry (see
// DESIGN.md — this is deliberate, not a bug, and must not be "corrected").
func IntegrateGkInto(gOut *spin.SpinBlockMatrix, omega complex128, mu float64, kdata *interp.KData, layout spin.Layout, n int, sc *scratch) error {
	gOut.Reset()
	sc.resolvent.Reset()
	sc.adjoint.Reset()
	sc.product.Reset()

	dim := 2 * n
	nk := complex(float64(len(kdata.K)), 0)

	for ik := range kdata.K {
		eig := kdata.Eig[ik]
		sc.resolvent.Reset()
		for col := 0; col < dim; col++ {
			denom := complex(mu, 0) + omega - complex(eig.Vals[col], 0)
			inv := 1 / denom
			for row := 0; row < dim; row++ {
				v := eig.Vecs.At(row, col)
				if v == 0 {
					continue
				}
				sc.resolvent.Set(row, col, v*inv)
			}
		}
		if err := spin.AdjointInto(sc.adjoint, eig.Vecs); err != nil {
			return err
		}
		if err := spin.Multiply(sc.product, sc.resolvent, sc.adjoint); err != nil {
			return err
		}

		phase := kdata.Phases[ik]
		phaseConj := complexConj(phase)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				gOut.AddUU(i, j, sc.product.At(i, j)*phase/nk)
				gOut.AddDD(i, j, sc.product.At(n+i, n+j)*phaseConj/nk)
			}
		}
		if layout == spin.NonCollinear {
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					gOut.AddUD(i, j, sc.product.At(i, n+j)/nk)
					gOut.AddDU(i, j, sc.product.At(n+i, j)/nk)
				}
			}
		}
	}
	return nil
}

func complexConj(c complex128) complex128 { return complex(real(c), -imag(c)) }

// AssembleAll computes G(omega) for every omega in omegaGrid, in parallel
// using up to workers goroutines (workers <= 0 picks a default), each
// with its own scratch bundle so no state is shared across goroutines.
func AssembleAll(omegaGrid []complex128, mu float64, kdata *interp.KData, layout spin.Layout, n, workers int) ([]*spin.SpinBlockMatrix, error) {
	out := make([]*spin.SpinBlockMatrix, len(omegaGrid))
	for i := range out {
		out[i] = spin.New(layout, n)
	}

	var errMu sync.Mutex
	var firstErr error
	workerpool.Run(len(omegaGrid), workers,
		func() any { return newScratch(layout, n) },
		func(i int, s any) {
			sc := s.(*scratch)
			if err := IntegrateGkInto(out[i], omegaGrid[i], mu, kdata, layout, n, sc); err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
			}
		},
	)
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
