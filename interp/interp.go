// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interp Fourier-interpolates the tight-binding Hamiltonian onto
// a k-grid and diagonalizes it per k (spec.md §4.5).
package interp

import (
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/wannier-exchange/lkag/internal/workerpool"
	"github.com/wannier-exchange/lkag/lattice"
	"github.com/wannier-exchange/lkag/spin"
)

// KData bundles everything BuildKEigens computes: the per-k Hamiltonian,
// its eigendecomposition, the translation phase exp(i*2*pi*k.R) for the
// configured displacement R, and the on-site exchange splitting Delta =
// (H_up - H_down) averaged over the grid.
type KData struct {
	K      []lattice.KPoint
	Hk     []*spin.SpinBlockMatrix
	Eig    []spin.EigPair
	Phases []complex128
	Delta  *mat.CDense // N×N, Hermitian; Delta[i][i] is real.
}

// HKInto writes H(k) = (1/|R|) sum_i exp(i*2*pi*k.R_i) H_i into out,
// clearing out first. The layout of out determines which conceptual
// blocks are read from each term: Collinear reads only the up-up and
// down-down blocks (the up-down/down-up blocks of a Collinear TB term are
// assumed to be exactly zero and are never touched), NonCollinear reads
// all four.
func HKInto(out *spin.SpinBlockMatrix, tb *lattice.TBOperator, k lattice.KPoint) {
	out.Reset()
	n := out.N()
	weight := 1 / float64(len(tb.Terms))
	for _, term := range tb.Terms {
		phase := cmplx.Exp(complex(0, 2*math.Pi*k.Dot(term.R))) * complex(weight, 0)
		switch out.Layout() {
		case spin.Collinear:
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					out.AddUU(i, j, phase*term.H.At(i, j))
					out.AddDD(i, j, phase*term.H.At(n+i, n+j))
				}
			}
		case spin.NonCollinear:
			dim := 2 * n
			for i := 0; i < dim; i++ {
				for j := 0; j < dim; j++ {
					v := phase * term.H.At(i, j)
					switch {
					case i < n && j < n:
						out.AddUU(i, j, v)
					case i >= n && j >= n:
						out.AddDD(i-n, j-n, v)
					case i < n && j >= n:
						out.AddUD(i, j-n, v)
					default:
						out.AddDU(i-n, j, v)
					}
				}
			}
		}
	}
}

// BuildKEigens diagonalizes H(k) at every point of kpoints, in parallel
// using up to workers goroutines (workers <= 0 picks a default), each
// with its own EigenWorkspace and Hamiltonian scratch so no state is
// shared across goroutines (spec.md §5). R sets the translation phase
// recorded per k for later use by the Green's-function assembler.
func BuildKEigens(tb *lattice.TBOperator, kpoints []lattice.KPoint, r lattice.Vector, layout spin.Layout, workers int) (*KData, error) {
	n := tb.Dim / 2

	data := &KData{
		K:      kpoints,
		Hk:     make([]*spin.SpinBlockMatrix, len(kpoints)),
		Eig:    make([]spin.EigPair, len(kpoints)),
		Phases: make([]complex128, len(kpoints)),
	}
	for i, k := range kpoints {
		data.Hk[i] = spin.New(layout, n)
		data.Eig[i] = spin.EigPair{
			Vals: make(spin.MagneticVector, 2*n),
			Vecs: spin.New(layout, n),
		}
		data.Phases[i] = cmplx.Exp(complex(0, 2*math.Pi*k.Dot(r)))
	}

	type scratch struct {
		ws  *spin.EigenWorkspace
		sum *spin.SpinBlockMatrix // per-worker accumulator for Delta
	}

	var errMu sync.Mutex
	var firstErr error
	setErr := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	workerpool.RunReduce(len(kpoints), workers,
		func(int) any {
			return &scratch{ws: spin.NewEigenWorkspace(layout, n), sum: spin.New(layout, n)}
		},
		func(i int, s any) {
			sc := s.(*scratch)
			HKInto(data.Eig[i].Vecs, tb, kpoints[i])
			// Copy H(k) into Hk[i] before the eigensolver overwrites
			// Vecs in place with eigenvectors.
			copyInto(data.Hk[i], data.Eig[i].Vecs)
			if err := sc.ws.EigenInto(data.Eig[i].Vals, data.Eig[i].Vecs, data.Hk[i]); err != nil {
				setErr(err)
				return
			}
			if err := spin.Add(sc.sum, sc.sum, data.Hk[i]); err != nil {
				setErr(err)
			}
		},
		func(scratches []any) {
			total := spin.New(layout, n)
			for _, s := range scratches {
				sc := s.(*scratch)
				spin.Add(total, total, sc.sum)
			}
			data.Delta = mat.NewCDense(n, n, nil)
			nk := complex(float64(len(kpoints)), 0)
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					data.Delta.Set(i, j, (total.At(i, j)-total.At(n+i, n+j))/nk)
				}
			}
		},
	)
	if firstErr != nil {
		return nil, firstErr
	}
	return data, nil
}

// copyInto copies every conceptual element of src into dst; dst and src
// must share layout and dimension.
func copyInto(dst, src *spin.SpinBlockMatrix) {
	dim := dst.Dim()
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			dst.Set(i, j, src.At(i, j))
		}
	}
}
