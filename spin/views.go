// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spin

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/wannier-exchange/lkag/lattice"
)

// blockView is a zero-copy read-only rectangular window into a parent
// SpinBlockMatrix's conceptual 2N×2N index space, in the idiom of
// gonum's mat.Conjugate: a thin struct implementing CMatrix in terms of
// the parent's indexing.
type blockView struct {
	parent         *SpinBlockMatrix
	rowOff, colOff int
	rows, cols     int
}

func (v blockView) Dims() (r, c int) { return v.rows, v.cols }

func (v blockView) At(i, j int) complex128 {
	if i < 0 || i >= v.rows || j < 0 || j >= v.cols {
		panic("spin: view index out of range")
	}
	return v.parent.at(v.rowOff+i, v.colOff+j)
}

func (v blockView) H() mat.CMatrix { return mat.Conjugate{CMatrix: v} }

// Up returns the N×N up-up block view.
func (m *SpinBlockMatrix) Up() CView { return blockView{m, 0, 0, m.n, m.n} }

// Down returns the N×N down-down block view.
func (m *SpinBlockMatrix) Down() CView { return blockView{m, m.n, m.n, m.n, m.n} }

// UpDown returns the N×N up-down block view; for Collinear matrices this
// is an all-zero view (no storage backs it).
func (m *SpinBlockMatrix) UpDown() CView { return blockView{m, 0, m.n, m.n, m.n} }

// DownUp returns the N×N down-up block view; for Collinear matrices this
// is an all-zero view (no storage backs it).
func (m *SpinBlockMatrix) DownUp() CView { return blockView{m, m.n, 0, m.n, m.n} }

// AtomView returns a view over atom a's orbitals (rows) and atom b's
// orbitals (columns), restricted to the spin sub-block sel. UU/DD/UD/DU
// return an na×nb view; All returns the full 2*na×2*nb block, with the
// off-diagonal spin quadrants zero for a Collinear parent.
func (m *SpinBlockMatrix) AtomView(a, b lattice.OrbitalRange, sel SpinSel) (CView, error) {
	if a.Lo < 0 || a.Hi > m.n || b.Lo < 0 || b.Hi > m.n {
		return nil, fmt.Errorf("spin: atom range outside [0,%d): %w", m.n, ErrShapeMismatch)
	}
	na, nb := a.Len(), b.Len()
	switch sel {
	case UU:
		return blockView{m, a.Lo, b.Lo, na, nb}, nil
	case DD:
		return blockView{m, m.n + a.Lo, m.n + b.Lo, na, nb}, nil
	case UD:
		return blockView{m, a.Lo, m.n + b.Lo, na, nb}, nil
	case DU:
		return blockView{m, m.n + a.Lo, b.Lo, na, nb}, nil
	case All:
		return atomPairAll{parent: m, a: a, b: b}, nil
	default:
		return nil, fmt.Errorf("spin: AtomView does not accept selector %d: %w", sel, ErrShapeMismatch)
	}
}

// atomPairAll is a 2na×2nb view stitching the four spin quadrants of an
// atom pair together, in the order [[UU, UD], [DU, DD]].
type atomPairAll struct {
	parent *SpinBlockMatrix
	a, b   lattice.OrbitalRange
}

func (v atomPairAll) Dims() (r, c int) { return 2 * v.a.Len(), 2 * v.b.Len() }

func (v atomPairAll) At(i, j int) complex128 {
	na, nb := v.a.Len(), v.b.Len()
	row := v.a.Lo
	if i >= na {
		row = v.parent.n + v.a.Lo
		i -= na
	}
	col := v.b.Lo
	if j >= nb {
		col = v.parent.n + v.b.Lo
		j -= nb
	}
	return v.parent.at(row+i, col+j)
}

func (v atomPairAll) H() mat.CMatrix { return mat.Conjugate{CMatrix: v} }
