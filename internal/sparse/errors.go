// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package sparse

import "errors"

// Sentinel errors returned by matrix construction. Callers match them with
// errors.Is; positional detail is added with fmt.Errorf("...: %w").
var (
	// ErrInvalidShape is returned when a declared dimension is negative.
	ErrInvalidShape = errors.New("sparse: invalid shape")

	// ErrLengthMismatch is returned when the row, column and value slices
	// have different lengths.
	ErrLengthMismatch = errors.New("sparse: index and value lengths differ")

	// ErrIndexOutOfRange is returned when a row or column index falls
	// outside the declared shape.
	ErrIndexOutOfRange = errors.New("sparse: index out of range")
)
