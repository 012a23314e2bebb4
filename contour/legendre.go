// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package contour builds the complex-plane quadrature nodes used by the
// Green's-function energy integral (spec.md §4.4): a semicircular
// contour in the upper half-plane, parameterized by Gauss-Legendre nodes
// with logarithmic packing near the real axis, plus a composite-Simpson
// integrator generalized to complex abscissae and samples.
package contour

import "math"

// legendreNodes returns the n Gauss-Legendre nodes and weights on
// [-1, 1], found by Newton iteration on the Legendre recurrence, in the
// node-generator idiom of gonum's quad.Hermite (a small struct/function
// that fills x and weight slices for a fixed order) — gonum ships no
// Gauss-Legendre generator itself, so this one is written from scratch.
func legendreNodes(n int) (x, w []float64) {
	if n <= 0 {
		panic("contour: non-positive Gauss-Legendre order")
	}
	x = make([]float64, n)
	w = make([]float64, n)

	m := (n + 1) / 2
	for i := 0; i < m; i++ {
		// Initial guess from the asymptotic root distribution.
		z := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		var pp float64
		for iter := 0; iter < 100; iter++ {
			p0, p1 := 1.0, z
			for k := 2; k <= n; k++ {
				p0, p1 = p1, ((2*float64(k)-1)*z*p1-(float64(k)-1)*p0)/float64(k)
			}
			// p1 = P_n(z); derivative from the standard recurrence.
			pp = float64(n) * (z*p1 - p0) / (z*z - 1)
			dz := p1 / pp
			z -= dz
			if math.Abs(dz) < 1e-15 {
				break
			}
		}
		x[i] = -z
		x[n-1-i] = z
		w[i] = 2 / ((1 - z*z) * pp * pp)
		w[n-1-i] = w[i]
	}
	return x, w
}
