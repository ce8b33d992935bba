// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package weighting

import (
	"fmt"

	"github.com/tomtom215/playweight/internal/sparse"
)

// BM25Config holds the BM25 tuning parameters.
type BM25Config struct {
	// K1 is the saturation constant. As a raw value grows, its factor
	// approaches K1 + 1. Must be > 0.
	// Default: 100
	K1 float64 `json:"k1"`

	// B blends length normalization in: 0 disables it, 1 normalizes fully.
	// Must be in [0, 1].
	// Default: 0.8
	B float64 `json:"b"`
}

// DefaultBM25Config returns K1=100, B=0.8. The large K1 suits play counts,
// which run much higher than term frequencies.
func DefaultBM25Config() BM25Config {
	return BM25Config{
		K1: 100,
		B:  0.8,
	}
}

// Validate checks the parameter ranges.
func (c BM25Config) Validate() error {
	// Negated comparisons also reject NaN.
	if !(c.K1 > 0) {
		return fmt.Errorf("%w: k1 must be positive, got %f", ErrInvalidArgument, c.K1)
	}
	if !(c.B >= 0 && c.B <= 1) {
		return fmt.Errorf("%w: b must be in [0, 1], got %f", ErrInvalidArgument, c.B)
	}
	return nil
}

// BM25 reweights m with the given saturation constant and length-norm blend.
func BM25(m *sparse.Matrix, k1, b float64) (*sparse.Matrix, error) {
	return BM25WithConfig(m, BM25Config{K1: k1, B: b})
}

// BM25WithConfig reweights every entry v in row r and column c to
//
//	v * (K1 + 1) / (K1 * norm[r] + v) * idf[c]
//
// with norm[r] = (1 - B) + B * rowSum[r] / avgLength. The average runs over
// all declared rows, including empty ones.
func BM25WithConfig(m *sparse.Matrix, cfg BM25Config) (*sparse.Matrix, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	idf, err := InverseDocumentFrequency(m)
	if err != nil {
		return nil, err
	}

	rowSums := m.RowSums()
	var total float64
	for _, s := range rowSums {
		total += s
	}
	avgLength := total / float64(len(rowSums))
	if avgLength == 0 {
		return nil, fmt.Errorf("%w: average row length is zero", ErrInvalidInput)
	}

	lengthNorm := make([]float64, len(rowSums))
	for r, s := range rowSums {
		lengthNorm[r] = (1 - cfg.B) + cfg.B*s/avgLength
	}

	data := make([]float64, m.NNZ())
	for i := range data {
		r, c, v := m.At(i)
		data[i] = bm25Term(v, cfg.K1, lengthNorm[r], idf[c])
	}

	out, err := m.WithData(data)
	if err != nil {
		return nil, fmt.Errorf("apply bm25: %w", err)
	}
	return out, nil
}

// bm25Term is the per-entry weight. For idf > 0 it increases with v and
// stays below (k1 + 1) * idf.
func bm25Term(v, k1, lengthNorm, idf float64) float64 {
	// Explicitly stored zeros stay zero; with B=1 an all-zero row has a
	// zero norm and the formula would be 0/0.
	if v == 0 {
		return 0
	}
	return v * (k1 + 1) / (k1*lengthNorm + v) * idf
}
