// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exchange orchestrates the full magnetic-exchange pipeline and
// evaluates the Lichtenstein (LKAG) formula for the requested atom pairs
// (spec.md §4.7).
package exchange

import (
	"errors"
	"fmt"

	"github.com/wannier-exchange/lkag/contour"
	"github.com/wannier-exchange/lkag/lattice"
)

// ErrInvalidOptions is returned by Options.Validate when a field is out
// of range; it is wrapped with the offending field's name.
var ErrInvalidOptions = errors.New("exchange: invalid options")

// Options carries every tunable of calc_exchanges (spec.md §4.7). The
// spec's separate "order" argument to calc_exchanges is folded into NWh,
// since both name the same quantity: the number of contour quadrature
// points.
type Options struct {
	// NK is the k-grid dimension (nx, ny, nz).
	NK [3]int
	// R displaces atom b by this many unit cells before evaluating each
	// pair's exchange.
	R lattice.Vector
	// Wh is the lower real-axis bound of the semicircular contour.
	Wh float64
	// NWh is the number of contour quadrature points.
	NWh int
	// Emax is the upper real-axis bound of the semicircular contour.
	Emax float64
	// SiteDiagonal restricts each pair's J matrix to its orbital
	// diagonal (min(n_i, n_j) entries), leaving the rest zero.
	SiteDiagonal bool
	// ContourShape carries the semicircle's logarithmic-packing
	// constant (spec.md §9's p=13 magic number).
	ContourShape contour.Shape
	// Workers bounds the k- and omega-loop worker pools; <= 0 picks a
	// default (GOMAXPROCS).
	Workers int
	// GammaCentered shifts the k-grid onto (or symmetric about) Gamma.
	GammaCentered bool
}

// DefaultOptions returns the upstream defaults from spec.md §4.7.
func DefaultOptions() Options {
	return Options{
		NK:           [3]int{10, 10, 10},
		R:            lattice.Vector{0, 0, 0},
		Wh:           -30.0,
		NWh:          100,
		Emax:         0.001,
		ContourShape: contour.DefaultShape(),
	}
}

// Validate checks that every field is in a usable range, returning
// ErrInvalidOptions wrapped with the offending field on failure.
func (o Options) Validate() error {
	for axis, n := range o.NK {
		if n <= 0 {
			return fmt.Errorf("exchange: NK[%d]=%d must be positive: %w", axis, n, ErrInvalidOptions)
		}
	}
	if o.NWh < 3 {
		return fmt.Errorf("exchange: NWh=%d must be at least 3 (Simpson's rule): %w", o.NWh, ErrInvalidOptions)
	}
	if o.Emax <= o.Wh {
		return fmt.Errorf("exchange: Emax=%g must exceed Wh=%g: %w", o.Emax, o.Wh, ErrInvalidOptions)
	}
	if o.ContourShape.P <= 0 {
		return fmt.Errorf("exchange: ContourShape.P=%g must be positive: %w", o.ContourShape.P, ErrInvalidOptions)
	}
	return nil
}
