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

	"github.com/tomtom215/playweight/internal/sparse"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func mustMatrix(t *testing.T, numRows, numCols int, rows, cols []int, data []float64) *sparse.Matrix {
	t.Helper()
	m, err := sparse.New(numRows, numCols, rows, cols, data)
	if err != nil {
		t.Fatalf("sparse.New() error = %v", err)
	}
	return m
}

// scenarioA is the 2x2 matrix rows=[0,0,1], cols=[0,1,0], data=[2,3,4].
func scenarioA(t *testing.T) *sparse.Matrix {
	t.Helper()
	return mustMatrix(t, 2, 2, []int{0, 0, 1}, []int{0, 1, 0}, []float64{2, 3, 4})
}

func TestInverseDocumentFrequency_ScenarioA(t *testing.T) {
	t.Parallel()

	idf, err := InverseDocumentFrequency(scenarioA(t))
	if err != nil {
		t.Fatalf("InverseDocumentFrequency() error = %v", err)
	}

	want := []float64{math.Log(2.0 / 3.0), 0}
	for c := range want {
		if !almostEqual(idf[c], want[c], tolerance) {
			t.Errorf("idf[%d] = %v, want %v", c, idf[c], want[c])
		}
	}
	if !almostEqual(idf[0], -0.405, 1e-3) {
		t.Errorf("idf[0] = %v, want about -0.405", idf[0])
	}
}

func TestIDF_ScenarioA(t *testing.T) {
	t.Parallel()

	m := scenarioA(t)
	out, err := IDF(m)
	if err != nil {
		t.Fatalf("IDF() error = %v", err)
	}

	idf0 := math.Log(2.0 / 3.0)
	want := []float64{math.Sqrt(2) * idf0, 0, 2 * idf0}
	got := out.Data()
	for i := range want {
		if !almostEqual(got[i], want[i], tolerance) {
			t.Errorf("data[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	approx := []float64{-0.573, 0.0, -0.811}
	for i := range approx {
		if !almostEqual(got[i], approx[i], 1e-3) {
			t.Errorf("data[%d] = %.4f, want about %.3f", i, got[i], approx[i])
		}
	}

	if !slices.Equal(m.Data(), []float64{2, 3, 4}) {
		t.Errorf("IDF() mutated its input: %v", m.Data())
	}
}

func TestIDF_PreservesShapeAndPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    *sparse.Matrix
	}{
		{"scenario A", scenarioA(t)},
		{"empty rows and unused columns", mustMatrix(t, 5, 7, []int{0, 3, 3, 4}, []int{6, 0, 2, 6}, []float64{1, 9, 2, 5})},
		{"no entries", mustMatrix(t, 3, 3, nil, nil, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := IDF(tt.m)
			if err != nil {
				t.Fatalf("IDF() error = %v", err)
			}
			assertSamePattern(t, tt.m, out)
		})
	}
}

func TestIDF_Monotonicity(t *testing.T) {
	t.Parallel()

	// Column 0 appears in one row, column 1 in three, column 2 in five.
	m := mustMatrix(t, 6, 3,
		[]int{0, 0, 1, 2, 0, 1, 2, 3, 4},
		[]int{0, 1, 1, 1, 2, 2, 2, 2, 2},
		[]float64{1, 1, 1, 1, 1, 1, 1, 1, 1},
	)

	idf, err := InverseDocumentFrequency(m)
	if err != nil {
		t.Fatalf("InverseDocumentFrequency() error = %v", err)
	}
	if !(idf[0] > idf[1] && idf[1] > idf[2]) {
		t.Errorf("idf not decreasing in document frequency: %v", idf)
	}
}

func TestIDF_Errors(t *testing.T) {
	t.Parallel()

	if _, err := IDF(nil); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("IDF(nil) error = %v, want ErrInvalidShape", err)
	}

	zeroRows := mustMatrix(t, 0, 4, nil, nil, nil)
	if _, err := IDF(zeroRows); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("IDF(0 rows) error = %v, want ErrInvalidShape", err)
	}
}

func assertSamePattern(t *testing.T, in, out *sparse.Matrix) {
	t.Helper()

	inRows, inCols := in.Shape()
	outRows, outCols := out.Shape()
	if inRows != outRows || inCols != outCols {
		t.Errorf("shape changed from %dx%d to %dx%d", inRows, inCols, outRows, outCols)
	}
	if !slices.Equal(in.RowIndices(), out.RowIndices()) {
		t.Errorf("row indices changed: %v -> %v", in.RowIndices(), out.RowIndices())
	}
	if !slices.Equal(in.ColIndices(), out.ColIndices()) {
		t.Errorf("column indices changed: %v -> %v", in.ColIndices(), out.ColIndices())
	}
}
