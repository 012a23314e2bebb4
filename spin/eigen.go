// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spin

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// MagneticVector holds 2N eigenvalues; for a Collinear decomposition the
// first half are the up-channel eigenvalues and the second half the
// down-channel eigenvalues (each sorted ascending independently). For a
// NonCollinear decomposition all 2N entries are one globally-sorted set.
type MagneticVector []float64

// EigPair bundles an eigenvalue vector with its eigenvector matrix.
type EigPair struct {
	Vals MagneticVector
	Vecs *SpinBlockMatrix
}

// EigenWorkspace holds the scratch needed to repeatedly diagonalize
// Hermitian matrices of a fixed dimension and layout (spec.md §4.2). It
// is not safe for concurrent use; callers running the k- or ω-loop in
// parallel must give every worker its own EigenWorkspace.
type EigenWorkspace struct {
	layout  Layout
	n       int
	tol     float64
	maxIter int

	// scratch reused across calls; sized to the largest block the
	// workspace's layout ever diagonalizes (n for Collinear, 2n for
	// NonCollinear).
	a          []complex128
	q          []complex128
	eigvalsTmp []float64
}

// NewEigenWorkspace allocates scratch for repeated diagonalization of
// dimension-2n matrices in the given layout, using the default
// convergence tolerance and iteration cap.
func NewEigenWorkspace(layout Layout, n int) *EigenWorkspace {
	return NewEigenWorkspaceTol(layout, n, 1e-12, 0)
}

// NewEigenWorkspaceTol is like NewEigenWorkspace but lets the caller set
// the Jacobi convergence tolerance and iteration cap (0 picks a default
// proportional to the block size).
func NewEigenWorkspaceTol(layout Layout, n int, tol float64, maxIter int) *EigenWorkspace {
	dim := n
	if layout == NonCollinear {
		dim = 2 * n
	}
	if maxIter == 0 {
		maxIter = 100 * dim * dim
	}
	return &EigenWorkspace{
		layout:  layout,
		n:       n,
		tol:     tol,
		maxIter: maxIter,
		a:       make([]complex128, dim*dim),
		q:       make([]complex128, dim*dim),
	}
}

// EigenInto diagonalizes src and writes ascending eigenvalues into vals
// and the corresponding eigenvectors into vecs. For Collinear src, the
// up-up and down-down blocks are diagonalized independently (vals[0:N]
// from the up block, vals[N:2N] from the down block, each ascending);
// for NonCollinear src, a single 2N Hermitian decomposition is performed.
// EigenInto fails with an *EigenError if the Jacobi sweep does not
// converge within the workspace's iteration cap.
func (ws *EigenWorkspace) EigenInto(vals MagneticVector, vecs *SpinBlockMatrix, src *SpinBlockMatrix) error {
	if src.layout != ws.layout || src.n != ws.n {
		return fmt.Errorf("spin: EigenInto shape mismatch (ws layout=%s n=%d, src layout=%s n=%d): %w", ws.layout, ws.n, src.layout, src.n, ErrShapeMismatch)
	}
	if vecs.layout != ws.layout || vecs.n != ws.n {
		return fmt.Errorf("spin: EigenInto output shape mismatch: %w", ErrShapeMismatch)
	}
	if len(vals) != 2*ws.n {
		return fmt.Errorf("spin: EigenInto wants len(vals)=%d, got %d: %w", 2*ws.n, len(vals), ErrShapeMismatch)
	}

	switch ws.layout {
	case Collinear:
		n := ws.n
		if err := ws.diagonalizeBlock(src.Up(), n); err != nil {
			return err
		}
		copy(vals[:n], ws.eigvalsTmp)
		writeBlockVectors(vecs, 0, 0, n, ws.q[:n*n])

		if err := ws.diagonalizeBlock(src.Down(), n); err != nil {
			return err
		}
		copy(vals[n:2*n], ws.eigvalsTmp)
		writeBlockVectors(vecs, n, n, n, ws.q[:n*n])
	case NonCollinear:
		dim := 2 * ws.n
		if err := ws.diagonalizeBlock(src, dim); err != nil {
			return err
		}
		copy(vals, ws.eigvalsTmp)
		writeBlockVectors(vecs, 0, 0, dim, ws.q[:dim*dim])
	}
	return nil
}

// writeBlockVectors copies a dim×dim eigenvector matrix q (row-major,
// columns are eigenvectors) into dst at block offset (rowOff, colOff).
func writeBlockVectors(dst *SpinBlockMatrix, rowOff, colOff, dim int, q []complex128) {
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			dst.Set(rowOff+i, colOff+j, q[i*dim+j])
		}
	}
}

// diagonalizeBlock runs the complex-Hermitian Jacobi sweep over the
// dim×dim block read from src.At, leaving ascending eigenvalues in
// ws.eigvalsTmp and the eigenvector matrix (columns are eigenvectors,
// row-major) in ws.q[:dim*dim].
func (ws *EigenWorkspace) diagonalizeBlock(src CView, dim int) error {
	a := ws.a[:dim*dim]
	q := ws.q[:dim*dim]
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			a[i*dim+j] = src.At(i, j)
			if i == j {
				q[i*dim+j] = 1
			} else {
				q[i*dim+j] = 0
			}
		}
	}

	iter := 0
	for ; iter < ws.maxIter; iter++ {
		p, qIdx, maxOff := 0, 1, 0.0
		for i := 0; i < dim; i++ {
			for j := i + 1; j < dim; j++ {
				off := cmplx.Abs(a[i*dim+j])
				if off > maxOff {
					maxOff, p, qIdx = off, i, j
				}
			}
		}
		if maxOff < ws.tol {
			break
		}
		jacobiRotate(a, q, dim, p, qIdx)
	}
	if iter >= ws.maxIter {
		return &EigenError{Info: iter}
	}

	vals := make([]float64, dim)
	for i := 0; i < dim; i++ {
		vals[i] = real(a[i*dim+i])
	}
	order := make([]int, dim)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return vals[order[i]] < vals[order[j]] })

	sortedVals := make([]float64, dim)
	sortedQ := make([]complex128, dim*dim)
	for newCol, oldCol := range order {
		sortedVals[newCol] = vals[oldCol]
		for row := 0; row < dim; row++ {
			sortedQ[row*dim+newCol] = q[row*dim+oldCol]
		}
	}
	ws.eigvalsTmp = sortedVals
	copy(q, sortedQ)
	return nil
}

// jacobiRotate zeroes a[p,q] (and a[q,p] by Hermitian symmetry) with a
// complex Givens rotation, accumulating the rotation into q. Generalizes
// the real cyclic-Jacobi sweep (pivot = largest off-diagonal magnitude,
// t = sign(theta)/(|theta|+sqrt(theta^2+1))) to complex Hermitian input
// by factoring out the phase of the pivot entry.
func jacobiRotate(a, q []complex128, dim, p, qi int) {
	apq := a[p*dim+qi]
	r := cmplx.Abs(apq)
	if r == 0 {
		return
	}
	u := apq / complex(r, 0) // unit-modulus phase of a[p,q]
	app := real(a[p*dim+p])
	aqq := real(a[qi*dim+qi])

	theta := (aqq - app) / (2 * r)
	t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
	c := 1 / math.Sqrt(t*t+1)
	s := t * c

	cc := complex(c, 0)
	sc := complex(s, 0)
	uConj := cmplx.Conj(u)

	for i := 0; i < dim; i++ {
		if i == p || i == qi {
			continue
		}
		aip := a[i*dim+p]
		aiq := a[i*dim+qi]
		newIP := cc*aip - sc*uConj*aiq
		newIQ := sc*u*aip + cc*aiq
		a[i*dim+p] = newIP
		a[p*dim+i] = cmplx.Conj(newIP)
		a[i*dim+qi] = newIQ
		a[qi*dim+i] = cmplx.Conj(newIQ)
	}
	a[p*dim+p] = complex(app-t*r, 0)
	a[qi*dim+qi] = complex(aqq+t*r, 0)
	a[p*dim+qi] = 0
	a[qi*dim+p] = 0

	for i := 0; i < dim; i++ {
		qip := q[i*dim+p]
		qiq := q[i*dim+qi]
		q[i*dim+p] = cc*qip - sc*uConj*qiq
		q[i*dim+qi] = sc*u*qip + cc*qiq
	}
}
