// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contour

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemicircleUpperHalfPlaneAndDistance(t *testing.T) {
	wh, emax := -10.0, 0.1
	path := Semicircle(wh, 21, emax, DefaultShape())
	r0 := (emax + wh) / 2
	r := (emax - wh) / 2
	for _, w := range path.Omega {
		assert.Greater(t, imag(w), 0.0)
		dist := cmplx.Abs(w - complex(r0, 0))
		assert.InDelta(t, r, dist, 1e-9)
	}
}

func TestSimpsonExactOnLowDegreePolynomials(t *testing.T) {
	for _, n := range []int{5, 6} { // odd and even point counts
		x := make([]complex128, n)
		f := make([]complex128, n)
		for i := 0; i < n; i++ {
			xi := complex(float64(i), 0)
			x[i] = xi
			// f(x) = 1 + 2x + 3x^2
			f[i] = 1 + 2*xi + 3*xi*xi
		}
		got, err := Simpson(x, f)
		require.NoError(t, err)

		b := float64(n - 1)
		want := b + b*b + b*b*b // integral of 1+2x+3x^2 from 0 to b
		assert.InDelta(t, want, real(got), 1e-8)
		assert.InDelta(t, 0, imag(got), 1e-8)
	}
}

func TestSimpsonShapeMismatch(t *testing.T) {
	_, err := Simpson([]complex128{0, 1, 2}, []complex128{0, 1})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSimpsonTooFewPoints(t *testing.T) {
	_, err := Simpson([]complex128{0, 1}, []complex128{0, 1})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestLegendreNodesSymmetricAndBounded(t *testing.T) {
	x, w := legendreNodes(8)
	var sumW float64
	for i, xi := range x {
		assert.GreaterOrEqual(t, xi, -1.0)
		assert.LessOrEqual(t, xi, 1.0)
		// nodes come in +/- pairs for even order.
		assert.InDelta(t, -x[len(x)-1-i], xi, 1e-9)
		sumW += w[i]
	}
	assert.InDelta(t, 2.0, sumW, 1e-9) // weights sum to the interval length
}
