// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package weighting

import (
	"fmt"
	"strings"

	"github.com/tomtom215/playweight/internal/sparse"
)

// Scheme names a reweighting transform.
type Scheme string

const (
	// SchemeNone passes the matrix through unchanged.
	SchemeNone Scheme = "none"
	// SchemeIDF applies IDF.
	SchemeIDF Scheme = "idf"
	// SchemeBM25 applies BM25WithConfig.
	SchemeBM25 Scheme = "bm25"
)

// String returns the scheme name.
func (s Scheme) String() string {
	return string(s)
}

// ParseScheme converts a case-insensitive name to a Scheme. "tfidf" is
// accepted as an alias for idf.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return SchemeNone, nil
	case "idf", "tfidf":
		return SchemeIDF, nil
	case "bm25":
		return SchemeBM25, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}

// Apply runs the transform named by scheme. BM25 parameters come from cfg;
// the other schemes ignore it. SchemeNone returns a clone so the result never
// aliases the input.
func Apply(m *sparse.Matrix, scheme Scheme, cfg BM25Config) (*sparse.Matrix, error) {
	switch scheme {
	case SchemeNone:
		if m == nil {
			return nil, ErrInvalidShape
		}
		return m.Clone(), nil
	case SchemeIDF:
		return IDF(m)
	case SchemeBM25:
		return BM25WithConfig(m, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, string(scheme))
	}
}
