// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package topn

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/tomtom215/playweight/internal/sparse"
)

func TestLargest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  []float64
		indices []int
		n       int
		want    []Entry
	}{
		{
			name:    "picks the two largest",
			values:  []float64{5, 1, 9, 3},
			indices: []int{10, 11, 12, 13},
			n:       2,
			want:    []Entry{{9, 12}, {5, 10}},
		},
		{
			name:    "n at least nnz sorts everything",
			values:  []float64{5, 1, 9, 3},
			indices: []int{10, 11, 12, 13},
			n:       10,
			want:    []Entry{{9, 12}, {5, 10}, {3, 13}, {1, 11}},
		},
		{
			name:    "n equal to nnz",
			values:  []float64{2, 4},
			indices: []int{0, 1},
			n:       2,
			want:    []Entry{{4, 1}, {2, 0}},
		},
		{
			name:    "empty row",
			values:  []float64{},
			indices: []int{},
			n:       5,
			want:    []Entry{},
		},
		{
			name:    "zero n",
			values:  []float64{1, 2},
			indices: []int{0, 1},
			n:       0,
			want:    []Entry{},
		},
		{
			name:    "negative n",
			values:  []float64{1, 2},
			indices: []int{0, 1},
			n:       -3,
			want:    []Entry{},
		},
		{
			name:    "negative values",
			values:  []float64{-5, -1, -9, -3},
			indices: []int{0, 1, 2, 3},
			n:       3,
			want:    []Entry{{-1, 1}, {-3, 3}, {-5, 0}},
		},
		{
			name:    "ties break by ascending index across the boundary",
			values:  []float64{1, 3, 3, 2, 3},
			indices: []int{9, 5, 1, 7, 3},
			n:       2,
			want:    []Entry{{3, 1}, {3, 3}},
		},
		{
			name:    "NaN ranks last",
			values:  []float64{math.NaN(), 2, 1},
			indices: []int{0, 1, 2},
			n:       2,
			want:    []Entry{{2, 1}, {1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Largest(tt.values, tt.indices, tt.n)
			if err != nil {
				t.Fatalf("Largest() error = %v", err)
			}
			if got == nil {
				t.Fatal("Largest() returned nil, want empty slice")
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Largest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLargest_LengthMismatch(t *testing.T) {
	t.Parallel()

	_, err := Largest([]float64{1, 2}, []int{0}, 1)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Largest() error = %v, want ErrLengthMismatch", err)
	}
}

func TestLargest_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	values := []float64{4, 8, 1, 7, 3, 9, 2}
	indices := []int{0, 1, 2, 3, 4, 5, 6}
	origValues := slices.Clone(values)
	origIndices := slices.Clone(indices)

	if _, err := Largest(values, indices, 3); err != nil {
		t.Fatalf("Largest() error = %v", err)
	}
	if !slices.Equal(values, origValues) || !slices.Equal(indices, origIndices) {
		t.Errorf("input changed: values %v indices %v", values, indices)
	}
}

// bruteForce ranks the whole row with a full sort.
func bruteForce(values []float64, indices []int, n int) []Entry {
	all := make([]Entry, len(values))
	for i := range values {
		all[i] = Entry{values[i], indices[i]}
	}
	slices.SortFunc(all, compare)
	if n < len(all) {
		all = all[:n]
	}
	return all
}

func TestLargest_MatchesFullSort(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42)) //nolint:gosec // deterministic test data

	for trial := 0; trial < 200; trial++ {
		nnz := rng.Intn(300)
		values := make([]float64, nnz)
		indices := make([]int, nnz)
		for i := range values {
			// Small value range forces plenty of ties.
			values[i] = float64(rng.Intn(20) - 5)
			indices[i] = rng.Intn(10000)
		}
		n := rng.Intn(nnz+5) + 1

		got, err := Largest(values, indices, n)
		if err != nil {
			t.Fatalf("trial %d: Largest() error = %v", trial, err)
		}

		want := bruteForce(values, indices, n)
		if len(got) != min(n, nnz) {
			t.Fatalf("trial %d: len = %d, want %d", trial, len(got), min(n, nnz))
		}
		if !slices.Equal(got, want) {
			t.Fatalf("trial %d (nnz=%d n=%d): got %v, want %v", trial, nnz, n, got, want)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Value > got[i-1].Value {
				t.Fatalf("trial %d: not non-increasing at %d: %v", trial, i, got)
			}
		}
	}
}

func TestLargest_AllEqualValues(t *testing.T) {
	t.Parallel()

	const nnz = 5000
	values := make([]float64, nnz)
	indices := make([]int, nnz)
	for i := range values {
		values[i] = 1
		indices[i] = nnz - i
	}

	got, err := Largest(values, indices, 4)
	if err != nil {
		t.Fatalf("Largest() error = %v", err)
	}
	want := []Entry{{1, 1}, {1, 2}, {1, 3}, {1, 4}}
	if !slices.Equal(got, want) {
		t.Errorf("Largest() = %v, want %v", got, want)
	}
}

func TestLargestRow(t *testing.T) {
	t.Parallel()

	row := sparse.Row{
		Values:  []float64{5, 1, 9, 3},
		Indices: []int{10, 11, 12, 13},
	}
	got, err := LargestRow(row, DefaultN)
	if err != nil {
		t.Fatalf("LargestRow() error = %v", err)
	}
	if len(got) != 4 || got[0] != (Entry{9, 12}) {
		t.Errorf("LargestRow() = %v", got)
	}
}

func BenchmarkLargest(b *testing.B) {
	rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic benchmark data
	values := make([]float64, 100000)
	indices := make([]int, len(values))
	for i := range values {
		values[i] = rng.Float64()
		indices[i] = i
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Largest(values, indices, DefaultN); err != nil {
			b.Fatal(err)
		}
	}
}
