// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package weighting

import "errors"

var (
	// ErrInvalidShape is returned when the matrix is nil or has no rows.
	ErrInvalidShape = errors.New("weighting: matrix must have at least one row")

	// ErrInvalidInput is returned when the matrix makes a formula undefined,
	// such as BM25 over a matrix with no mass (zero average row length).
	ErrInvalidInput = errors.New("weighting: degenerate input")

	// ErrInvalidArgument is returned for out-of-range tuning parameters.
	ErrInvalidArgument = errors.New("weighting: invalid argument")

	// ErrUnknownScheme is returned by ParseScheme for unrecognised names.
	ErrUnknownScheme = errors.New("weighting: unknown scheme")
)
