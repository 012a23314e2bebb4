// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomHermitian(layout Layout, n int) *SpinBlockMatrix {
	m := New(layout, n)
	dim := m.Dim()
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			v := complex(float64(i+1), float64(j-i))
			if i == j {
				v = complex(real(v), 0)
			}
			m.Set(i, j, v)
			if i != j {
				m.Set(j, i, complex(real(v), -imag(v)))
			}
		}
	}
	return m
}

func TestAdjointInvolution(t *testing.T) {
	for _, layout := range []Layout{Collinear, NonCollinear} {
		m := randomHermitian(layout, 3)
		once := New(layout, 3)
		twice := New(layout, 3)
		require.NoError(t, AdjointInto(once, m))
		require.NoError(t, AdjointInto(twice, once))

		dim := m.Dim()
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				assert.InDelta(t, real(m.At(i, j)), real(twice.At(i, j)), 1e-12)
				assert.InDelta(t, imag(m.At(i, j)), imag(twice.At(i, j)), 1e-12)
			}
		}
	}
}

func TestMultiplyNonCollinearIdentity(t *testing.T) {
	n := 2
	id := New(NonCollinear, n)
	for i := 0; i < 2*n; i++ {
		id.Set(i, i, 1)
	}
	a := randomHermitian(NonCollinear, n)
	dst := New(NonCollinear, n)
	require.NoError(t, Multiply(dst, a, id))
	for i := 0; i < 2*n; i++ {
		for j := 0; j < 2*n; j++ {
			assert.Equal(t, a.At(i, j), dst.At(i, j))
		}
	}
}

func TestMultiplyCollinearBlocksIndependent(t *testing.T) {
	n := 2
	a := New(Collinear, n)
	b := New(Collinear, n)
	a.AddUU(0, 0, 2)
	a.AddDD(0, 0, 3)
	b.AddUU(0, 0, 5)
	b.AddDD(0, 0, 7)

	dst := New(Collinear, n)
	require.NoError(t, Multiply(dst, a, b))
	assert.Equal(t, complex128(10), dst.At(0, 0))
	assert.Equal(t, complex128(21), dst.At(n, n))
}

func TestMultiplyLayoutMismatch(t *testing.T) {
	a := New(Collinear, 2)
	b := New(NonCollinear, 2)
	dst := New(Collinear, 2)
	err := Multiply(dst, a, b)
	require.ErrorIs(t, err, ErrLayoutMismatch)
}

func TestAddSubScale(t *testing.T) {
	a := New(NonCollinear, 1)
	b := New(NonCollinear, 1)
	a.Set(0, 0, 2)
	b.Set(0, 0, 3)

	sum := New(NonCollinear, 1)
	require.NoError(t, Add(sum, a, b))
	assert.Equal(t, complex128(5), sum.At(0, 0))

	diff := New(NonCollinear, 1)
	require.NoError(t, Sub(diff, a, b))
	assert.Equal(t, complex128(-1), diff.At(0, 0))

	scaled := New(NonCollinear, 1)
	require.NoError(t, Scale(scaled, complex(2, 0), a))
	assert.Equal(t, complex128(4), scaled.At(0, 0))
}
