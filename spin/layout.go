// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spin implements the two-layout spin-block complex matrix used
// throughout the exchange pipeline (SpinBlockMatrix in spec.md §4.1),
// together with the per-layout Hermitian eigensolver scratch (§4.2).
package spin

import (
	"errors"
	"strconv"

	"github.com/wannier-exchange/lkag/lattice"
)

// ErrShapeMismatch is returned when a matrix construction or atom-range
// lookup would violate the declared dimension.
var ErrShapeMismatch = errors.New("spin: shape mismatch")

// ErrLayoutMismatch is returned when an operation combines two
// SpinBlockMatrix values of different layouts.
var ErrLayoutMismatch = errors.New("spin: layout mismatch")

// ErrEigenFailed is the sentinel wrapped by EigenError; use errors.Is
// against it to detect any solver failure regardless of the info code.
var ErrEigenFailed = errors.New("spin: eigensolver failed to converge")

// EigenError reports a non-zero LAPACK-style diagnostic code from the
// Hermitian eigensolver (spec.md's LapackError{info}).
type EigenError struct {
	Info int
}

func (e *EigenError) Error() string {
	return "spin: eigensolver failed to converge (info=" + strconv.Itoa(e.Info) + ")"
}

// Unwrap lets errors.Is(err, ErrEigenFailed) match any EigenError.
func (e *EigenError) Unwrap() error { return ErrEigenFailed }

// Layout selects one of the two physical storage schemes for a
// SpinBlockMatrix. It is an alias of lattice.Layout so a TBOperator's
// layout tag can be passed directly wherever a SpinBlockMatrix layout is
// required, with no conversion at the package boundary.
type Layout = lattice.Layout

const (
	// Collinear stores only the up-up and down-down N×N blocks, packed
	// side by side as an N×2N buffer; the up-down and down-up blocks are
	// implicitly zero.
	Collinear = lattice.Collinear
	// NonCollinear stores the full 2N×2N spinor matrix.
	NonCollinear = lattice.NonCollinear
)

// SpinSel selects a spin sub-block when indexing a SpinBlockMatrix by
// atom. It mirrors the multiple-dispatch tag markers of the upstream
// source (spec.md §9) as a plain enum.
type SpinSel int

const (
	UU SpinSel = iota
	DD
	UD
	DU
	Up
	Down
	All
)
