// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

// Package sparse provides the coordinate-format (COO) interaction matrix
// consumed and produced by the weighting package.
//
// A Matrix stores (row, column, value) triples over a declared R x C grid.
// Entries are expected to be coalesced, meaning at most one entry per
// (row, column) pair. The Builder coalesces duplicates by summing and maps
// arbitrary string keys (user names, artist IDs, document paths) to dense
// indices.
//
// # Immutability
//
// A Matrix is never modified after construction. Accessors that expose the
// stored slices return copies, and WithData produces a new Matrix that
// shares nothing with its receiver. This lets a single Matrix be read from
// many goroutines without locking.
//
// # Usage
//
//	b := sparse.NewBuilder()
//	b.Add("alice", "radiohead", 12)
//	b.Add("alice", "portishead", 3)
//	b.Add("bob", "radiohead", 40)
//
//	m, err := b.Build()
//	if err != nil {
//	    return err
//	}
//
//	df := m.ColumnCounts()   // document frequency per column
//	sums := m.RowSums()      // total mass per row
//	row := m.Row(0)          // alice's nonzero entries
package sparse
