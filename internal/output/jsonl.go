// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

// Package output writes rankings as JSON lines, one object per matrix row:
//
//	{"row":"alice","items":[{"col":"radiohead","score":3.1},...]}
//
// Rows appear in matrix order. Rows with no entries are written with an
// empty items array. Non-finite scores are written as null since JSON has
// no encoding for them.
package output

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/playweight/internal/pipeline"
	"github.com/tomtom215/playweight/internal/source"
)

// Stdout is the path that selects standard output.
const Stdout = "-"

// Item is one ranked column of a row.
type Item struct {
	Col   string   `json:"col"`
	Score *float64 `json:"score"`
}

// Record is one output line.
type Record struct {
	Row   string `json:"row"`
	Items []Item `json:"items"`
}

// JSONLines is a pipeline.Sink that writes to a file or stdout.
type JSONLines struct {
	path string
	w    io.Writer
}

var _ pipeline.Sink = (*JSONLines)(nil)

// NewJSONLines writes to path. An empty path or "-" means stdout.
// The file is created (or truncated) when rankings are written.
func NewJSONLines(path string) *JSONLines {
	return &JSONLines{path: path}
}

// NewJSONLinesWriter writes to w.
func NewJSONLinesWriter(w io.Writer) *JSONLines {
	return &JSONLines{w: w}
}

// WriteRankings implements pipeline.Sink.
func (j *JSONLines) WriteRankings(ctx context.Context, ds *source.Dataset, rankings []pipeline.RowRanking) (err error) {
	w := j.w
	if w == nil {
		if j.path == "" || j.path == Stdout {
			w = os.Stdout
		} else {
			f, createErr := os.Create(j.path)
			if createErr != nil {
				return fmt.Errorf("failed to create output file: %w", createErr)
			}
			defer func() {
				if closeErr := f.Close(); closeErr != nil && err == nil {
					err = fmt.Errorf("failed to close output file: %w", closeErr)
				}
			}()
			w = f
		}
	}

	return Write(ctx, w, ds, rankings)
}

// Write encodes rankings to w as JSON lines, resolving row and column
// positions through ds.
func Write(ctx context.Context, w io.Writer, ds *source.Dataset, rankings []pipeline.RowRanking) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)

	for i, rr := range rankings {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := enc.Encode(toRecord(ds, rr)); err != nil {
			return fmt.Errorf("encode row %d: %w", rr.Row, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

func toRecord(ds *source.Dataset, rr pipeline.RowRanking) Record {
	items := make([]Item, len(rr.Items))
	for i, e := range rr.Items {
		items[i] = Item{Col: ds.ColKey(e.Index), Score: finite(e.Value)}
	}
	return Record{Row: ds.RowKey(rr.Row), Items: items}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
