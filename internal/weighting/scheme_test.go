// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package weighting

import (
	"errors"
	"slices"
	"testing"
)

func TestParseScheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Scheme
		wantErr bool
	}{
		{"idf", SchemeIDF, false},
		{"TFIDF", SchemeIDF, false},
		{"bm25", SchemeBM25, false},
		{" BM25 ", SchemeBM25, false},
		{"none", SchemeNone, false},
		{"", SchemeNone, false},
		{"okapi", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseScheme(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownScheme) {
					t.Errorf("ParseScheme(%q) error = %v, want ErrUnknownScheme", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScheme(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseScheme(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	m := scenarioA(t)
	cfg := DefaultBM25Config()

	idfOut, err := Apply(m, SchemeIDF, cfg)
	if err != nil {
		t.Fatalf("Apply(idf) error = %v", err)
	}
	direct, _ := IDF(m)
	if !slices.Equal(idfOut.Data(), direct.Data()) {
		t.Errorf("Apply(idf) = %v, want %v", idfOut.Data(), direct.Data())
	}

	bmOut, err := Apply(m, SchemeBM25, cfg)
	if err != nil {
		t.Fatalf("Apply(bm25) error = %v", err)
	}
	directBM, _ := BM25WithConfig(m, cfg)
	if !slices.Equal(bmOut.Data(), directBM.Data()) {
		t.Errorf("Apply(bm25) = %v, want %v", bmOut.Data(), directBM.Data())
	}

	none, err := Apply(m, SchemeNone, cfg)
	if err != nil {
		t.Fatalf("Apply(none) error = %v", err)
	}
	if none == m {
		t.Error("Apply(none) returned its input instead of a copy")
	}
	if !slices.Equal(none.Data(), m.Data()) {
		t.Errorf("Apply(none) = %v, want %v", none.Data(), m.Data())
	}

	if _, err := Apply(m, Scheme("bogus"), cfg); !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("Apply(bogus) error = %v, want ErrUnknownScheme", err)
	}
	if _, err := Apply(nil, SchemeNone, cfg); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Apply(nil, none) error = %v, want ErrInvalidShape", err)
	}
}
