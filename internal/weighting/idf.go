// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package weighting

import (
	"fmt"
	"math"

	"github.com/tomtom215/playweight/internal/sparse"
)

// InverseDocumentFrequency returns idf[c] = ln(R / (1 + df[c])) for every
// declared column, where df[c] counts the rows with an entry in column c.
// The +1 smoothing keeps columns with no entries finite.
func InverseDocumentFrequency(m *sparse.Matrix) ([]float64, error) {
	if m == nil || m.NumRows() == 0 {
		return nil, ErrInvalidShape
	}

	n := float64(m.NumRows())
	df := m.ColumnCounts()

	idf := make([]float64, len(df))
	for c, count := range df {
		idf[c] = math.Log(n / (1 + float64(count)))
	}
	return idf, nil
}

// IDF reweights every entry v in column c to sqrt(v) * idf[c].
func IDF(m *sparse.Matrix) (*sparse.Matrix, error) {
	idf, err := InverseDocumentFrequency(m)
	if err != nil {
		return nil, err
	}

	data := make([]float64, m.NNZ())
	for i := range data {
		_, c, v := m.At(i)
		data[i] = math.Sqrt(v) * idf[c]
	}

	out, err := m.WithData(data)
	if err != nil {
		return nil, fmt.Errorf("apply idf: %w", err)
	}
	return out, nil
}
