// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

// Package topn extracts the N largest entries of a sparse row without
// sorting the whole row.
//
// Entries are ranked by value descending. Exact ties are broken by index
// ascending, and the same order drives both the selection and the final
// sort, so the result is fully deterministic even when ties straddle the
// N-th position. NaN values rank below every number.
//
// A non-positive N selects nothing and returns an empty result rather than
// an error.
package topn

import (
	"cmp"
	"errors"
	"fmt"
	"math/bits"
	"slices"

	"github.com/tomtom215/playweight/internal/sparse"
)

// DefaultN is the number of entries returned when callers have no
// preference.
const DefaultN = 10

// ErrLengthMismatch is returned when values and indices differ in length.
var ErrLengthMismatch = errors.New("topn: values and indices differ in length")

// Entry is one ranked (value, index) pair.
type Entry struct {
	Value float64 `json:"value"`
	Index int     `json:"index"`
}

// Largest returns the min(n, len(values)) largest entries, ordered by value
// descending and then index ascending. The inputs are not modified.
func Largest(values []float64, indices []int, n int) ([]Entry, error) {
	if len(values) != len(indices) {
		return nil, fmt.Errorf("%w: %d values, %d indices", ErrLengthMismatch, len(values), len(indices))
	}
	if n <= 0 || len(values) == 0 {
		return []Entry{}, nil
	}

	entries := make([]Entry, len(values))
	for i := range values {
		entries[i] = Entry{Value: values[i], Index: indices[i]}
	}

	if n < len(entries) {
		selectFirst(entries, n)
		entries = slices.Clip(entries[:n])
	}

	slices.SortFunc(entries, compare)
	return entries, nil
}

// LargestRow is Largest over a sparse row.
func LargestRow(row sparse.Row, n int) ([]Entry, error) {
	return Largest(row.Values, row.Indices, n)
}

// compare orders entries best-first: higher value, then lower index.
func compare(a, b Entry) int {
	if c := cmp.Compare(b.Value, a.Value); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

// selectFirst rearranges e so that e[:k] holds the k best entries in
// arbitrary order. It requires 0 < k < len(e). Quickselect with a
// median-of-three pivot runs in expected linear time; past a depth limit
// the remaining range is sorted instead.
func selectFirst(e []Entry, k int) {
	lo, hi := 0, len(e)-1
	depth := 2 * bits.Len(uint(len(e)))

	for lo < hi {
		if depth == 0 {
			slices.SortFunc(e[lo:hi+1], compare)
			return
		}
		depth--

		p := partition(e, lo, hi)
		switch {
		case p == k:
			return
		case p < k:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

// partition places a median-of-three pivot at its final position within
// e[lo:hi+1] and returns that position. Entries before it compare lower.
func partition(e []Entry, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if compare(e[mid], e[lo]) < 0 {
		e[mid], e[lo] = e[lo], e[mid]
	}
	if compare(e[hi], e[lo]) < 0 {
		e[hi], e[lo] = e[lo], e[hi]
	}
	if compare(e[hi], e[mid]) < 0 {
		e[hi], e[mid] = e[mid], e[hi]
	}

	e[mid], e[hi] = e[hi], e[mid]
	pivot := e[hi]

	i := lo
	for j := lo; j < hi; j++ {
		if compare(e[j], pivot) < 0 {
			e[i], e[j] = e[j], e[i]
			i++
		}
	}
	e[i], e[hi] = e[hi], e[i]
	return i
}
