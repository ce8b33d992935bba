// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

// Package source loads keyed interaction triples (row key, column key,
// value) into a sparse matrix.
//
// Two loaders are provided: TSV reads delimited text such as the lastfm
// play-count dumps, and DuckDB runs a SQL query against a DuckDB database,
// which also covers CSV and Parquet files through DuckDB's table functions.
// Repeated (row, column) pairs are summed. Zero values are dropped, and
// negative values are rejected because interaction counts cannot be
// negative.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/playweight/internal/sparse"
)

var (
	// ErrMalformedRecord is returned when a record has too few fields or an
	// unparseable value.
	ErrMalformedRecord = errors.New("source: malformed record")

	// ErrNegativeValue is returned for a negative interaction value.
	ErrNegativeValue = errors.New("source: negative value")
)

// Loader produces a Dataset.
type Loader interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Dataset is a loaded interaction matrix plus the key indices that map its
// row and column positions back to the original identifiers.
type Dataset struct {
	Matrix   *sparse.Matrix
	RowIndex *sparse.Index
	ColIndex *sparse.Index
}

// RowKey returns the identifier of matrix row r.
func (d *Dataset) RowKey(r int) string {
	return d.RowIndex.Key(r)
}

// ColKey returns the identifier of matrix column c.
func (d *Dataset) ColKey(c int) string {
	return d.ColIndex.Key(c)
}

// collector feeds validated records into a Builder.
type collector struct {
	builder *sparse.Builder
	records int
	skipped int
}

func newCollector() *collector {
	return &collector{builder: sparse.NewBuilder()}
}

// add records one triple. where describes the record's location for errors.
func (c *collector) add(rowKey, colKey string, value float64, where string) error {
	c.records++
	if value < 0 {
		return fmt.Errorf("%w at %s: %g", ErrNegativeValue, where, value)
	}
	if value == 0 {
		c.skipped++
		return nil
	}
	c.builder.Add(rowKey, colKey, value)
	return nil
}

func (c *collector) dataset() (*Dataset, error) {
	m, err := c.builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build matrix: %w", err)
	}
	return &Dataset{
		Matrix:   m,
		RowIndex: c.builder.RowIndex(),
		ColIndex: c.builder.ColIndex(),
	}, nil
}
