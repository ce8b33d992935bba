// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

// Package neighbours defines the contract for nearest-neighbour search over
// reweighted rows. No index is implemented here; callers plug in their own.
package neighbours

import (
	"context"
	"errors"

	"github.com/tomtom215/playweight/internal/sparse"
	"github.com/tomtom215/playweight/internal/topn"
)

// ErrNilSearcher is returned when a search is requested without a Searcher.
var ErrNilSearcher = errors.New("neighbours: searcher is nil")

// Neighbour is one row similar to the query row.
type Neighbour struct {
	Row   int     `json:"row"`
	Score float64 `json:"score"`
}

// Searcher finds up to k rows of m most similar to row. Implementations may
// return more than k results or in any order; Bound normalizes them.
type Searcher interface {
	Search(ctx context.Context, m *sparse.Matrix, row, k int) ([]Neighbour, error)
}

// SearcherFunc adapts a plain function to Searcher.
type SearcherFunc func(ctx context.Context, m *sparse.Matrix, row, k int) ([]Neighbour, error)

// Search calls f.
func (f SearcherFunc) Search(ctx context.Context, m *sparse.Matrix, row, k int) ([]Neighbour, error) {
	return f(ctx, m, row, k)
}

// Bound keeps the n best results by score, ordered by score descending and
// then row ascending.
func Bound(results []Neighbour, n int) []Neighbour {
	scores := make([]float64, len(results))
	rows := make([]int, len(results))
	for i, r := range results {
		scores[i] = r.Score
		rows[i] = r.Row
	}

	// Lengths always match, so Largest cannot fail.
	best, _ := topn.Largest(scores, rows, n) //nolint:errcheck // lengths match by construction

	out := make([]Neighbour, len(best))
	for i, e := range best {
		out[i] = Neighbour{Row: e.Index, Score: e.Value}
	}
	return out
}
