// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package sparse

import (
	"fmt"
	"slices"
)

// Matrix is an immutable sparse matrix in coordinate format.
type Matrix struct {
	numRows int
	numCols int
	rows    []int
	cols    []int
	data    []float64
}

// Row is one row's stored entries as parallel slices, ordered by column.
type Row struct {
	Values  []float64
	Indices []int
}

// NNZ returns the number of stored entries in the row.
func (r Row) NNZ() int {
	return len(r.Values)
}

// New validates the triples against the declared shape and returns a Matrix
// holding copies of the given slices.
func New(numRows, numCols int, rows, cols []int, data []float64) (*Matrix, error) {
	if numRows < 0 || numCols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, numRows, numCols)
	}
	if len(rows) != len(cols) || len(rows) != len(data) {
		return nil, fmt.Errorf("%w: rows=%d cols=%d data=%d", ErrLengthMismatch, len(rows), len(cols), len(data))
	}

	for i := range rows {
		if rows[i] < 0 || rows[i] >= numRows {
			return nil, fmt.Errorf("%w: entry %d has row %d, shape %dx%d", ErrIndexOutOfRange, i, rows[i], numRows, numCols)
		}
		if cols[i] < 0 || cols[i] >= numCols {
			return nil, fmt.Errorf("%w: entry %d has column %d, shape %dx%d", ErrIndexOutOfRange, i, cols[i], numRows, numCols)
		}
	}

	return &Matrix{
		numRows: numRows,
		numCols: numCols,
		rows:    slices.Clone(rows),
		cols:    slices.Clone(cols),
		data:    slices.Clone(data),
	}, nil
}

// Shape returns the declared number of rows and columns.
func (m *Matrix) Shape() (rows, cols int) {
	return m.numRows, m.numCols
}

// NumRows returns the declared number of rows.
func (m *Matrix) NumRows() int {
	return m.numRows
}

// NumCols returns the declared number of columns.
func (m *Matrix) NumCols() int {
	return m.numCols
}

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int {
	return len(m.data)
}

// At returns the i-th stored entry.
func (m *Matrix) At(i int) (row, col int, value float64) {
	return m.rows[i], m.cols[i], m.data[i]
}

// RowIndices returns a copy of the row index of every stored entry.
func (m *Matrix) RowIndices() []int {
	return slices.Clone(m.rows)
}

// ColIndices returns a copy of the column index of every stored entry.
func (m *Matrix) ColIndices() []int {
	return slices.Clone(m.cols)
}

// Data returns a copy of the stored values.
func (m *Matrix) Data() []float64 {
	return slices.Clone(m.data)
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{
		numRows: m.numRows,
		numCols: m.numCols,
		rows:    slices.Clone(m.rows),
		cols:    slices.Clone(m.cols),
		data:    slices.Clone(m.data),
	}
}

// WithData returns a new matrix with the receiver's shape and sparsity
// pattern and the given values. The data slice is adopted, not copied, so
// callers must not retain it.
func (m *Matrix) WithData(data []float64) (*Matrix, error) {
	if len(data) != len(m.data) {
		return nil, fmt.Errorf("%w: pattern has %d entries, got %d values", ErrLengthMismatch, len(m.data), len(data))
	}
	return &Matrix{
		numRows: m.numRows,
		numCols: m.numCols,
		rows:    slices.Clone(m.rows),
		cols:    slices.Clone(m.cols),
		data:    data,
	}, nil
}

// ColumnCounts returns the number of stored entries in each column, sized to
// the declared column count. For coalesced input this is the number of
// distinct rows touching each column.
func (m *Matrix) ColumnCounts() []int {
	counts := make([]int, m.numCols)
	for _, c := range m.cols {
		counts[c]++
	}
	return counts
}

// RowSums returns the sum of stored values in each row, sized to the
// declared row count. Rows without entries sum to zero.
func (m *Matrix) RowSums() []float64 {
	sums := make([]float64, m.numRows)
	for i, r := range m.rows {
		sums[r] += m.data[i]
	}
	return sums
}

// Row returns the stored entries of row r ordered by column. It scans every
// entry; use Rows when all rows are needed.
func (m *Matrix) Row(r int) Row {
	var row Row
	if r < 0 || r >= m.numRows {
		return row
	}

	for i, ri := range m.rows {
		if ri == r {
			row.Values = append(row.Values, m.data[i])
			row.Indices = append(row.Indices, m.cols[i])
		}
	}
	sortRow(&row)
	return row
}

// Rows returns every row's stored entries in a single pass over the matrix.
// The result has NumRows elements; empty rows have nil slices.
func (m *Matrix) Rows() []Row {
	counts := make([]int, m.numRows)
	for _, r := range m.rows {
		counts[r]++
	}

	out := make([]Row, m.numRows)
	for r, n := range counts {
		if n > 0 {
			out[r] = Row{
				Values:  make([]float64, 0, n),
				Indices: make([]int, 0, n),
			}
		}
	}

	for i, r := range m.rows {
		out[r].Values = append(out[r].Values, m.data[i])
		out[r].Indices = append(out[r].Indices, m.cols[i])
	}

	for r := range out {
		sortRow(&out[r])
	}
	return out
}

// sortRow orders a row's parallel slices by column index.
func sortRow(row *Row) {
	if slices.IsSorted(row.Indices) {
		return
	}

	order := make([]int, len(row.Indices))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return row.Indices[a] - row.Indices[b]
	})

	values := make([]float64, len(order))
	indices := make([]int, len(order))
	for i, j := range order {
		values[i] = row.Values[j]
		indices[i] = row.Indices[j]
	}
	row.Values = values
	row.Indices = indices
}
