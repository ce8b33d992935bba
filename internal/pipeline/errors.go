// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package pipeline

import (
	"context"
	"errors"
	"os"

	"github.com/tomtom215/playweight/internal/neighbours"
	"github.com/tomtom215/playweight/internal/source"
	"github.com/tomtom215/playweight/internal/topn"
	"github.com/tomtom215/playweight/internal/weighting"
)

// errorKind maps an error to a low-cardinality metric label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, weighting.ErrInvalidShape):
		return "invalid_shape"
	case errors.Is(err, weighting.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, weighting.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, weighting.ErrUnknownScheme):
		return "unknown_scheme"
	case errors.Is(err, topn.ErrLengthMismatch):
		return "length_mismatch"
	case errors.Is(err, source.ErrMalformedRecord):
		return "malformed_record"
	case errors.Is(err, source.ErrNegativeValue):
		return "negative_value"
	case errors.Is(err, neighbours.ErrNilSearcher):
		return "nil_searcher"
	case errors.Is(err, os.ErrNotExist):
		return "not_found"
	default:
		return "other"
	}
}
