// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contour

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ErrShapeMismatch is returned when Simpson's input slices are too short
// or mismatched in length.
var ErrShapeMismatch = errors.New("contour: shape mismatch")

// Path is an ordered sequence of complex energies parameterizing the
// quadrature contour.
type Path struct {
	Omega []complex128
}

// Shape carries the magic constants the semicircular contour's
// logarithmic packing depends on (spec.md §9: ported as-is, exposed on
// options rather than hard-coded).
type Shape struct {
	// P controls how strongly quadrature nodes pack toward the real
	// axis; the upstream default is 13 with no given derivation.
	P float64
}

// DefaultShape is the upstream default contour packing.
func DefaultShape() Shape { return Shape{P: 13} }

// Semicircle returns n complex abscissae tracing a semicircle of center
// R0 = (emax+wh)/2 and radius R = (emax-wh)/2, packed logarithmically
// toward the real axis via shape.P so as to avoid the pole structure of
// G(omega) sitting on the real axis.
func Semicircle(wh float64, n int, emax float64, shape Shape) Path {
	x, _ := legendreNodes(n)
	r0 := (emax + wh) / 2
	r := (emax - wh) / 2

	a := -math.Log(1 + shape.P*math.Pi)
	omega := make([]complex128, n)
	for k, xk := range x {
		y := (a/2)*xk - a/2
		phi := (math.Exp(y) - 1) / shape.P
		omega[k] = complex(r0, 0) + complex(r, 0)*cmplx.Exp(complex(0, phi))
	}
	return Path{Omega: omega}
}

// Simpson integrates a complex-valued sample sequence f, sampled at the
// (possibly unequally spaced, possibly complex) abscissae x, using
// composite Simpson's rule with three-point coefficients derived from
// consecutive spacings — the same formula as gonum's integrate.Simpsons,
// generalized from real to complex x and f since the real-only
// implementation cannot consume a semicircular contour (see DESIGN.md).
func Simpson(x, f []complex128) (complex128, error) {
	n := len(x)
	if len(f) != n {
		return 0, fmt.Errorf("contour: len(x)=%d != len(f)=%d: %w", n, len(f), ErrShapeMismatch)
	}
	if n < 3 {
		return 0, fmt.Errorf("contour: need at least 3 points, got %d: %w", n, ErrShapeMismatch)
	}

	var integral complex128
	for i := 1; i < n-1; i += 2 {
		h0 := x[i] - x[i-1]
		h1 := x[i+1] - x[i]
		h0p2 := h0 * h0
		h0p3 := h0p2 * h0
		h1p2 := h1 * h1
		h1p3 := h1p2 * h1
		hph := h0 + h1

		a0 := (2*h0p3 - h1p3 + 3*h1*h0p2) / (6 * h0 * hph)
		a1 := (h0p3 + h1p3 + 3*h0*h1*hph) / (6 * h0 * h1)
		a2 := (-h0p3 + 2*h1p3 + 3*h0*h1p2) / (6 * h1 * hph)
		integral += a0*f[i-1] + a1*f[i] + a2*f[i+1]
	}

	if n%2 == 0 {
		h0 := x[n-2] - x[n-3]
		h1 := x[n-1] - x[n-2]
		h1p2 := h1 * h1
		h1p3 := h1p2 * h1
		hph := h0 + h1

		a0 := -h1p3 / (6 * h0 * hph)
		a1 := (h1p2 + 3*h0*h1) / (6 * h0)
		a2 := (2*h1p2 + 3*h0*h1) / (6 * hph)
		integral += a0*f[n-3] + a1*f[n-2] + a2*f[n-1]
	}
	return integral, nil
}
