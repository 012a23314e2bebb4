// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kgrid builds uniform shifted k-grids in fractional reciprocal
// coordinates (spec.md §4.3).
package kgrid

import "github.com/wannier-exchange/lkag/lattice"

// UniformShiftedGrid returns a flat, lexicographically ordered (x
// fastest) list of nx*ny*nz fractional k-points:
//
//	k = ((i,j,l) + 1/2) / (nx,ny,nz) - 1/2
//
// When gammaCentered is true, each axis gets an additional half-cell
// correction shift = 0.5*((n+1) mod 2)/n, which is zero for odd n (the
// unshifted grid already lands on Gamma) and pulls the grid onto a
// Gamma-symmetric placement for even n; the result is wrapped back into
// [-1/2, 1/2) since the correction can otherwise land a component
// exactly on the excluded upper boundary.
func UniformShiftedGrid(nx, ny, nz int, gammaCentered bool) []lattice.KPoint {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		panic("kgrid: grid dimensions must be positive")
	}
	shiftX := axisShift(nx, gammaCentered)
	shiftY := axisShift(ny, gammaCentered)
	shiftZ := axisShift(nz, gammaCentered)

	pts := make([]lattice.KPoint, 0, nx*ny*nz)
	for l := 0; l < nz; l++ {
		kz := wrapHalf((float64(l)+0.5)/float64(nz) - 0.5 + shiftZ)
		for j := 0; j < ny; j++ {
			ky := wrapHalf((float64(j)+0.5)/float64(ny) - 0.5 + shiftY)
			for i := 0; i < nx; i++ {
				kx := wrapHalf((float64(i)+0.5)/float64(nx) - 0.5 + shiftX)
				pts = append(pts, lattice.KPoint{kx, ky, kz})
			}
		}
	}
	return pts
}

func axisShift(n int, gammaCentered bool) float64 {
	if !gammaCentered {
		return 0
	}
	return 0.5 * float64((n+1)%2) / float64(n)
}

// wrapHalf maps a component that has drifted onto the excluded upper
// boundary (k == 0.5) back to -0.5, keeping the invariant that every
// component lies in [-1/2, 1/2) (spec.md §4.3).
func wrapHalf(k float64) float64 {
	if k >= 0.5 {
		return k - 1
	}
	return k
}
