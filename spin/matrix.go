// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spin

import (
	"fmt"

	"gonum.org/v1/gonum/blas/cblas128"
)

// SpinBlockMatrix is a dimension-2N complex matrix stored in one of two
// physical layouts (spec.md §3). The layout is fixed at construction and
// never changes.
type SpinBlockMatrix struct {
	layout Layout
	n      int // N: orbitals per spin channel; conceptual dimension is 2N
	buf    cblas128.General
}

// New returns a zero SpinBlockMatrix of dimension 2*n in the given layout.
func New(layout Layout, n int) *SpinBlockMatrix {
	if n <= 0 {
		panic("spin: non-positive dimension")
	}
	var buf cblas128.General
	switch layout {
	case Collinear:
		buf = cblas128.General{Rows: n, Cols: 2 * n, Stride: 2 * n, Data: make([]complex128, n*2*n)}
	case NonCollinear:
		buf = cblas128.General{Rows: 2 * n, Cols: 2 * n, Stride: 2 * n, Data: make([]complex128, 2*n*2*n)}
	default:
		panic("spin: unknown layout")
	}
	return &SpinBlockMatrix{layout: layout, n: n, buf: buf}
}

// Layout reports the matrix's storage layout.
func (m *SpinBlockMatrix) Layout() Layout { return m.layout }

// N returns the per-channel orbital count; the conceptual dimension is 2N.
func (m *SpinBlockMatrix) N() int { return m.n }

// Dim returns the conceptual dimension 2N.
func (m *SpinBlockMatrix) Dim() int { return 2 * m.n }

// Reset zeroes every stored element without reallocating.
func (m *SpinBlockMatrix) Reset() {
	for i := range m.buf.Data {
		m.buf.Data[i] = 0
	}
}

// at returns the conceptual element (row, col) of the full 2N×2N matrix,
// 0 for the implicitly-zero off-diagonal spin blocks of a Collinear
// matrix.
func (m *SpinBlockMatrix) at(row, col int) complex128 {
	n := m.n
	switch m.layout {
	case Collinear:
		switch {
		case row < n && col < n:
			return m.buf.Data[row*m.buf.Stride+col]
		case row >= n && col >= n:
			return m.buf.Data[(row-n)*m.buf.Stride+col]
		default:
			return 0
		}
	default: // NonCollinear
		return m.buf.Data[row*m.buf.Stride+col]
	}
}

// setUU sets the up-up block entry (i, j), i, j in [0, N).
func (m *SpinBlockMatrix) setUU(i, j int, v complex128) {
	m.buf.Data[i*m.buf.Stride+j] = v
}

// setDD sets the down-down block entry (i, j), i, j in [0, N).
func (m *SpinBlockMatrix) setDD(i, j int, v complex128) {
	n := m.n
	switch m.layout {
	case Collinear:
		m.buf.Data[i*m.buf.Stride+n+j] = v
	default:
		m.buf.Data[(n+i)*m.buf.Stride+n+j] = v
	}
}

// setUD sets the up-down block entry; it is a programmer error to call
// this on a Collinear matrix, since that block has no storage.
func (m *SpinBlockMatrix) setUD(i, j int, v complex128) {
	if m.layout == Collinear {
		panic("spin: Collinear matrix has no up-down block storage")
	}
	n := m.n
	m.buf.Data[i*m.buf.Stride+n+j] = v
}

// setDU sets the down-up block entry; it is a programmer error to call
// this on a Collinear matrix, since that block has no storage.
func (m *SpinBlockMatrix) setDU(i, j int, v complex128) {
	if m.layout == Collinear {
		panic("spin: Collinear matrix has no down-up block storage")
	}
	n := m.n
	m.buf.Data[(n+i)*m.buf.Stride+j] = v
}

// AddUU accumulates v into the up-up block entry (i, j).
func (m *SpinBlockMatrix) AddUU(i, j int, v complex128) {
	m.buf.Data[i*m.buf.Stride+j] += v
}

// AddDD accumulates v into the down-down block entry (i, j).
func (m *SpinBlockMatrix) AddDD(i, j int, v complex128) {
	n := m.n
	switch m.layout {
	case Collinear:
		m.buf.Data[i*m.buf.Stride+n+j] += v
	default:
		m.buf.Data[(n+i)*m.buf.Stride+n+j] += v
	}
}

// AddUD accumulates v into the up-down block entry (i, j). It panics on
// a Collinear matrix, which has no storage for that block.
func (m *SpinBlockMatrix) AddUD(i, j int, v complex128) {
	if m.layout == Collinear {
		panic("spin: Collinear matrix has no up-down block storage")
	}
	n := m.n
	m.buf.Data[i*m.buf.Stride+n+j] += v
}

// AddDU accumulates v into the down-up block entry (i, j). It panics on
// a Collinear matrix, which has no storage for that block.
func (m *SpinBlockMatrix) AddDU(i, j int, v complex128) {
	if m.layout == Collinear {
		panic("spin: Collinear matrix has no down-up block storage")
	}
	n := m.n
	m.buf.Data[(n+i)*m.buf.Stride+j] += v
}

// Set writes the conceptual element (row, col) of the full 2N×2N matrix.
// It panics if the target falls in the implicitly-zero region of a
// Collinear matrix and v is non-zero.
func (m *SpinBlockMatrix) Set(row, col int, v complex128) {
	n := m.n
	switch {
	case row < n && col < n:
		m.setUU(row, col, v)
	case row >= n && col >= n:
		m.setDD(row-n, col-n, v)
	case row < n && col >= n:
		if m.layout == Collinear {
			if v != 0 {
				panic("spin: cannot set non-zero up-down entry on a Collinear matrix")
			}
			return
		}
		m.setUD(row, col-n, v)
	default:
		if m.layout == Collinear {
			if v != 0 {
				panic("spin: cannot set non-zero down-up entry on a Collinear matrix")
			}
			return
		}
		m.setDU(row-n, col, v)
	}
}

// At returns the conceptual element (row, col) of the full 2N×2N matrix.
func (m *SpinBlockMatrix) At(row, col int) complex128 { return m.at(row, col) }

// Dims implements CView.
func (m *SpinBlockMatrix) Dims() (r, c int) { return m.Dim(), m.Dim() }

// H returns a newly materialized conjugate transpose. It returns a CView,
// so SpinBlockMatrix does not satisfy gonum's mat.CMatrix interface.
func (m *SpinBlockMatrix) H() CView {
	out := New(m.layout, m.n)
	if err := AdjointInto(out, m); err != nil {
		panic(err)
	}
	return out
}

// CView is the minimal read-only matrix interface used across this
// package: the Dims and At methods of gonum's mat.CMatrix, without H.
type CView interface {
	Dims() (r, c int)
	At(i, j int) complex128
}

// FromInterleaved builds a NonCollinear matrix from the upstream's
// interleaved 2N×2N convention, where m[2i,2j] addresses up-up,
// m[2i+1,2j] down-up, m[2i,2j+1] up-down and m[2i+1,2j+1] down-down
// (0-indexed). It fails with ErrShapeMismatch if the input is not square
// with even dimension.
func FromInterleaved(x CView) (*SpinBlockMatrix, error) {
	r, c := x.Dims()
	if r != c {
		return nil, fmt.Errorf("spin: interleaved input not square (%d,%d): %w", r, c, ErrShapeMismatch)
	}
	if r%2 != 0 {
		return nil, fmt.Errorf("spin: interleaved input has odd dimension %d: %w", r, ErrShapeMismatch)
	}
	n := r / 2
	out := New(NonCollinear, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.setUU(i, j, x.At(2*i, 2*j))
			out.setDU(i, j, x.At(2*i+1, 2*j))
			out.setUD(i, j, x.At(2*i, 2*j+1))
			out.setDD(i, j, x.At(2*i+1, 2*j+1))
		}
	}
	return out, nil
}

// ToInterleaved returns the interleaved 2N×2N representation of a
// NonCollinear matrix, the exact inverse of FromInterleaved.
func (m *SpinBlockMatrix) ToInterleaved() (*SpinBlockMatrix, error) {
	if m.layout != NonCollinear {
		return nil, fmt.Errorf("spin: ToInterleaved requires NonCollinear, got %s: %w", m.layout, ErrLayoutMismatch)
	}
	n := m.n
	out := cblas128.General{Rows: 2 * n, Cols: 2 * n, Stride: 2 * n, Data: make([]complex128, 2*n*2*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Data[(2*i)*out.Stride+2*j] = m.at(i, j)
			out.Data[(2*i+1)*out.Stride+2*j] = m.at(n+i, j)
			out.Data[(2*i)*out.Stride+2*j+1] = m.at(i, n+j)
			out.Data[(2*i+1)*out.Stride+2*j+1] = m.at(n+i, n+j)
		}
	}
	return &SpinBlockMatrix{layout: NonCollinear, n: n, buf: out}, nil
}
