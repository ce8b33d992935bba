// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package sparse

// Index maps external keys to dense matrix indices in first-seen order.
type Index struct {
	byKey map[string]int
	keys  []string
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		byKey: make(map[string]int),
	}
}

// Intern returns the index for key, assigning the next free index if the key
// has not been seen.
func (ix *Index) Intern(key string) int {
	if i, ok := ix.byKey[key]; ok {
		return i
	}
	i := len(ix.keys)
	ix.byKey[key] = i
	ix.keys = append(ix.keys, key)
	return i
}

// Lookup returns the index assigned to key.
func (ix *Index) Lookup(key string) (int, bool) {
	i, ok := ix.byKey[key]
	return i, ok
}

// Key returns the key assigned to index i, or "" if i is out of range.
func (ix *Index) Key(i int) string {
	if i < 0 || i >= len(ix.keys) {
		return ""
	}
	return ix.keys[i]
}

// Len returns the number of distinct keys.
func (ix *Index) Len() int {
	return len(ix.keys)
}

// cell identifies a (row, column) position.
type cell struct {
	row int
	col int
}

// Builder accumulates keyed interactions and produces a coalesced Matrix.
// Repeated (row, column) pairs are summed. A Builder is not safe for
// concurrent use.
type Builder struct {
	rowIndex *Index
	colIndex *Index
	position map[cell]int
	rows     []int
	cols     []int
	data     []float64
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		rowIndex: NewIndex(),
		colIndex: NewIndex(),
		position: make(map[cell]int),
	}
}

// Add records value at (rowKey, colKey), summing with any earlier value at
// the same position.
func (b *Builder) Add(rowKey, colKey string, value float64) {
	c := cell{
		row: b.rowIndex.Intern(rowKey),
		col: b.colIndex.Intern(colKey),
	}

	if i, ok := b.position[c]; ok {
		b.data[i] += value
		return
	}

	b.position[c] = len(b.data)
	b.rows = append(b.rows, c.row)
	b.cols = append(b.cols, c.col)
	b.data = append(b.data, value)
}

// NNZ returns the number of distinct positions recorded so far.
func (b *Builder) NNZ() int {
	return len(b.data)
}

// RowIndex returns the row key index.
func (b *Builder) RowIndex() *Index {
	return b.rowIndex
}

// ColIndex returns the column key index.
func (b *Builder) ColIndex() *Index {
	return b.colIndex
}

// Build returns the accumulated matrix, shaped by the number of distinct
// row and column keys.
func (b *Builder) Build() (*Matrix, error) {
	return New(b.rowIndex.Len(), b.colIndex.Len(), b.rows, b.cols, b.data)
}
