// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package weighting

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestDefaultBM25Config(t *testing.T) {
	t.Parallel()

	cfg := DefaultBM25Config()
	if cfg.K1 != 100 {
		t.Errorf("K1 = %v, want 100", cfg.K1)
	}
	if cfg.B != 0.8 {
		t.Errorf("B = %v, want 0.8", cfg.B)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestBM25Config_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     BM25Config
		wantErr bool
	}{
		{"defaults", BM25Config{K1: 100, B: 0.8}, false},
		{"b zero", BM25Config{K1: 1.2, B: 0}, false},
		{"b one", BM25Config{K1: 1.2, B: 1}, false},
		{"k1 zero", BM25Config{K1: 0, B: 0.5}, true},
		{"k1 negative", BM25Config{K1: -1, B: 0.5}, true},
		{"k1 NaN", BM25Config{K1: math.NaN(), B: 0.5}, true},
		{"b negative", BM25Config{K1: 1, B: -0.1}, true},
		{"b above one", BM25Config{K1: 1, B: 1.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Validate() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestBM25_ScenarioA(t *testing.T) {
	t.Parallel()

	m := scenarioA(t)
	out, err := BM25(m, 100, 0.8)
	if err != nil {
		t.Fatalf("BM25() error = %v", err)
	}

	// Row sums [5, 4], average 4.5.
	idf0 := math.Log(2.0 / 3.0)
	norm0 := 0.2 + 0.8*5/4.5
	norm1 := 0.2 + 0.8*4/4.5
	want := []float64{
		2 * 101 / (100*norm0 + 2) * idf0,
		0,
		4 * 101 / (100*norm1 + 4) * idf0,
	}

	got := out.Data()
	for i := range want {
		if !almostEqual(got[i], want[i], tolerance) {
			t.Errorf("data[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if !almostEqual(got[0], -0.7386, 1e-3) {
		t.Errorf("data[0] = %.5f, want about -0.7386", got[0])
	}

	assertSamePattern(t, m, out)
	if !slices.Equal(m.Data(), []float64{2, 3, 4}) {
		t.Errorf("BM25() mutated its input: %v", m.Data())
	}
}

func TestBM25_NoLengthNormalization(t *testing.T) {
	t.Parallel()

	// With B=0 every row norm is 1 regardless of row length.
	m := mustMatrix(t, 4, 3, []int{0, 1, 1, 1}, []int{0, 1, 0, 2}, []float64{3, 50, 3, 7})
	out, err := BM25(m, 10, 0)
	if err != nil {
		t.Fatalf("BM25() error = %v", err)
	}

	idf, err := InverseDocumentFrequency(m)
	if err != nil {
		t.Fatalf("InverseDocumentFrequency() error = %v", err)
	}

	got := out.Data()
	// Entries 0 and 2 share a value and column but sit in rows of very
	// different length.
	if !almostEqual(got[0], got[2], tolerance) {
		t.Errorf("B=0 gave different weights for equal entries: %v vs %v", got[0], got[2])
	}
	want := 3 * 11 / (10 + 3.0) * idf[0]
	if !almostEqual(got[0], want, tolerance) {
		t.Errorf("data[0] = %v, want %v", got[0], want)
	}
}

func TestBM25_SaturationBound(t *testing.T) {
	t.Parallel()

	const (
		k1   = 100.0
		norm = 1.3
		idf  = 2.0
	)
	bound := (k1 + 1) * idf

	prev := 0.0
	for _, v := range []float64{1, 10, 100, 1e3, 1e4, 1e6, 1e9} {
		w := bm25Term(v, k1, norm, idf)
		if w > bound {
			t.Errorf("bm25Term(%g) = %v exceeds bound %v", v, w, bound)
		}
		if w <= prev {
			t.Errorf("bm25Term(%g) = %v not increasing (previous %v)", v, w, prev)
		}
		prev = w
	}

	if w := bm25Term(1e15, k1, norm, idf); !almostEqual(w, bound, 1e-9*bound) {
		t.Errorf("bm25Term(1e15) = %v, want convergence to %v", w, bound)
	}
}

func TestBM25_OutputsWithinBound(t *testing.T) {
	t.Parallel()

	// Ten rows, columns with low document frequency so every idf is positive.
	m := mustMatrix(t, 10, 3,
		[]int{0, 1, 2, 3, 5},
		[]int{0, 0, 1, 2, 2},
		[]float64{1, 5000, 40, 1e6, 2},
	)
	cfg := BM25Config{K1: 1.2, B: 0.75}

	out, err := BM25WithConfig(m, cfg)
	if err != nil {
		t.Fatalf("BM25WithConfig() error = %v", err)
	}
	idf, err := InverseDocumentFrequency(m)
	if err != nil {
		t.Fatalf("InverseDocumentFrequency() error = %v", err)
	}

	for i := 0; i < out.NNZ(); i++ {
		_, c, w := out.At(i)
		if idf[c] <= 0 {
			t.Fatalf("test setup: idf[%d] = %v, want positive", c, idf[c])
		}
		if bound := (cfg.K1 + 1) * idf[c]; w > bound {
			t.Errorf("entry %d weight %v exceeds bound %v", i, w, bound)
		}
	}
}

func TestBM25_StoredZeroStaysZero(t *testing.T) {
	t.Parallel()

	// Row 1 holds only an explicit zero, so with B=1 its norm is zero.
	m := mustMatrix(t, 3, 2, []int{0, 1}, []int{0, 1}, []float64{4, 0})
	out, err := BM25(m, 100, 1)
	if err != nil {
		t.Fatalf("BM25() error = %v", err)
	}
	if _, _, v := out.At(1); v != 0 || math.IsNaN(v) {
		t.Errorf("stored zero became %v", v)
	}
}

func TestBM25_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name: "nil matrix",
			run: func() error {
				_, err := BM25(nil, 100, 0.8)
				return err
			},
			wantErr: ErrInvalidShape,
		},
		{
			name: "zero rows",
			run: func() error {
				_, err := BM25(mustMatrix(t, 0, 2, nil, nil, nil), 100, 0.8)
				return err
			},
			wantErr: ErrInvalidShape,
		},
		{
			name: "empty matrix has zero average length",
			run: func() error {
				_, err := BM25(mustMatrix(t, 3, 2, nil, nil, nil), 100, 0.8)
				return err
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "all stored values zero",
			run: func() error {
				_, err := BM25(mustMatrix(t, 2, 2, []int{0}, []int{1}, []float64{0}), 100, 0.8)
				return err
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "bad k1",
			run: func() error {
				_, err := BM25(scenarioA(t), 0, 0.8)
				return err
			},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "bad b",
			run: func() error {
				_, err := BM25(scenarioA(t), 100, 2)
				return err
			},
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
