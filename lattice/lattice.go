// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lattice holds the data types shared by every stage of the
// magnetic-exchange pipeline: real-space lattice vectors, fractional
// k-points, the tight-binding operator and the atom catalog that indexes
// it into orbital subranges.
package lattice

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrShapeMismatch is returned when a TBOperator's Hamiltonians disagree
// in dimension, or an orbital range falls outside its declared bounds.
var ErrShapeMismatch = errors.New("lattice: shape mismatch")

// Layout selects one of the two physical spin-storage schemes shared by
// a TBOperator and the SpinBlockMatrix values derived from it. It lives
// here, rather than in package spin, because TBOperator must carry it
// and spin already depends on lattice for OrbitalRange.
type Layout int

const (
	// Collinear operators carry only up-up and down-down blocks; the
	// up-down/down-up blocks of every term are exactly zero.
	Collinear Layout = iota
	// NonCollinear operators carry the full 2N×2N spinor content.
	NonCollinear
)

func (l Layout) String() string {
	switch l {
	case Collinear:
		return "Collinear"
	case NonCollinear:
		return "NonCollinear"
	default:
		return "Layout(?)"
	}
}

// Vector is an integer triple indexing a real-space Bravais translation R.
type Vector [3]int

// Scale returns R scaled by n.
func (r Vector) Scale(n int) Vector {
	return Vector{r[0] * n, r[1] * n, r[2] * n}
}

// KPoint is a fractional reciprocal-space coordinate; components are kept
// in [-1/2, 1/2) by the grid builders that produce them.
type KPoint [3]float64

// Dot returns the dot product k.R for the lattice vector r; callers
// multiply by 2*pi to obtain the phase angle.
func (k KPoint) Dot(r Vector) float64 {
	return k[0]*float64(r[0]) + k[1]*float64(r[1]) + k[2]*float64(r[2])
}

// Term is one (R, H(R)) pair of a tight-binding operator's Fourier series.
type Term struct {
	R Vector
	H mat.CMatrix // square, dimension 2N
}

// TBOperator is the ordered sequence of terms defining H(k) = (1/|R|)
// sum_i exp(i 2 pi k.R_i) H_i. All terms must share dimension and the
// declared Layout.
type TBOperator struct {
	Terms  []Term
	Dim    int // 2N
	Layout Layout
}

// NewTBOperator validates that every term has the declared dimension and
// returns the operator tagged with layout, or ErrShapeMismatch.
func NewTBOperator(terms []Term, layout Layout) (*TBOperator, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("lattice: empty operator: %w", ErrShapeMismatch)
	}
	r, c := terms[0].H.Dims()
	if r != c {
		return nil, fmt.Errorf("lattice: non-square H(R=%v): %w", terms[0].R, ErrShapeMismatch)
	}
	for _, t := range terms[1:] {
		tr, tc := t.H.Dims()
		if tr != r || tc != c {
			return nil, fmt.Errorf("lattice: H(R=%v) has shape (%d,%d), want (%d,%d): %w", t.R, tr, tc, r, c, ErrShapeMismatch)
		}
	}
	return &TBOperator{Terms: terms, Dim: r, Layout: layout}, nil
}

// OrbitalRange is a half-open [Lo, Hi) index range into the up-spin
// sub-basis (0-indexed). Its width is the number of orbitals on the atom.
type OrbitalRange struct {
	Lo, Hi int
}

// Len reports the number of orbitals spanned by the range.
func (o OrbitalRange) Len() int { return o.Hi - o.Lo }

// Atom is a site in the atom catalog: a symbol, a Cartesian position and
// the orbital range it owns in the up-spin sub-basis. Indices is nil when
// the upstream collaborator did not supply orbital metadata for this atom
// (spec.md's MissingOrbitals condition); calc_exchanges skips such atoms.
type Atom struct {
	Symbol   string
	Position [3]float64
	Indices  *OrbitalRange
}

// HasOrbitals reports whether the atom carries an orbital range.
func (a Atom) HasOrbitals() bool { return a.Indices != nil }

// Cell is the 3x3 real-space lattice matrix, rows are the lattice
// vectors a1, a2, a3 in Cartesian coordinates.
type Cell struct {
	M *mat.Dense // 3x3
}

// Translate returns position p shifted by the lattice translation R, i.e.
// p + R_frac . Cell, where R_frac = (r[0], r[1], r[2]).
func (c Cell) Translate(p [3]float64, r Vector) [3]float64 {
	frac := mat.NewVecDense(3, []float64{float64(r[0]), float64(r[1]), float64(r[2])})

	var shift mat.VecDense
	shift.MulVec(c.M.T(), frac)

	return [3]float64{
		p[0] + shift.AtVec(0),
		p[1] + shift.AtVec(1),
		p[2] + shift.AtVec(2),
	}
}

// ValidateOrbitalCoverage checks that every non-nil atom range is disjoint
// from the others and falls within [0, n). It does not require full
// coverage of [0, n), since upstream catalogs may leave some atoms
// without metadata (MissingOrbitals).
func ValidateOrbitalCoverage(atoms []Atom, n int) error {
	type span struct{ lo, hi int }
	var spans []span
	for _, a := range atoms {
		if a.Indices == nil {
			continue
		}
		if a.Indices.Lo < 0 || a.Indices.Hi > n || a.Indices.Lo >= a.Indices.Hi {
			return fmt.Errorf("lattice: atom %s range [%d,%d) outside [0,%d): %w", a.Symbol, a.Indices.Lo, a.Indices.Hi, n, ErrShapeMismatch)
		}
		spans = append(spans, span{a.Indices.Lo, a.Indices.Hi})
	}
	for i := range spans {
		for j := range spans {
			if i == j {
				continue
			}
			if spans[i].lo < spans[j].hi && spans[j].lo < spans[i].hi {
				return fmt.Errorf("lattice: overlapping orbital ranges: %w", ErrShapeMismatch)
			}
		}
	}
	return nil
}
