// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

// Package pipeline runs a batch: load interactions, reweight them, rank
// every row and hand the rankings to a sink. Each stage is also usable on
// its own.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/playweight/internal/logging"
	"github.com/tomtom215/playweight/internal/metrics"
	"github.com/tomtom215/playweight/internal/neighbours"
	"github.com/tomtom215/playweight/internal/source"
	"github.com/tomtom215/playweight/internal/sparse"
	"github.com/tomtom215/playweight/internal/topn"
	"github.com/tomtom215/playweight/internal/weighting"
)

// component tags every log line written by this package.
const component = "pipeline"

// Stage labels for error metrics.
const (
	stageLoad     = "load"
	stageReweight = "reweight"
	stageRank     = "rank"
	stageSearch   = "search"
	stageWrite    = "write"
)

// RowRanking is the top-N entries of one matrix row.
type RowRanking struct {
	Row   int
	Items []topn.Entry
}

// Sink receives a finished run.
type Sink interface {
	WriteRankings(ctx context.Context, ds *source.Dataset, rankings []RowRanking) error
}

// Summary describes a completed run.
type Summary struct {
	RunID    string
	Rows     int
	Cols     int
	NNZ      int
	Ranked   int
	Duration time.Duration
}

// Pipeline reweights and ranks interaction matrices. It logs through the
// logger and run ID carried by each call's context.
type Pipeline struct {
	cfg *Config
}

// New creates a pipeline. A nil cfg uses DefaultConfig.
func New(cfg *Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Pipeline{cfg: cfg}, nil
}

// Reweight applies the configured scheme to m.
func (p *Pipeline) Reweight(ctx context.Context, m *sparse.Matrix) (*sparse.Matrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scheme, err := weighting.ParseScheme(string(p.cfg.Scheme))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := weighting.Apply(m, scheme, p.cfg.BM25)
	if err != nil {
		metrics.RecordError(stageReweight, errorKind(err))
		return nil, fmt.Errorf("reweight %s: %w", scheme, err)
	}
	elapsed := time.Since(start)
	metrics.RecordReweight(string(scheme), out.NNZ(), elapsed)

	logging.Ctx(ctx).Debug().
		Str("component", component).
		Str("scheme", string(scheme)).
		Int("nnz", out.NNZ()).
		Dur("duration", elapsed).
		Msg("matrix reweighted")

	return out, nil
}

// Rank returns the top-N entries of every row of m, indexed by row.
// Empty rows yield empty rankings.
func (p *Pipeline) Rank(ctx context.Context, m *sparse.Matrix) ([]RowRanking, error) {
	if m == nil {
		return nil, fmt.Errorf("rank: %w", weighting.ErrInvalidShape)
	}

	rows := m.Rows()
	out := make([]RowRanking, len(rows))

	err := p.forEachRow(ctx, len(rows), func(_ context.Context, r int) error {
		items, err := topn.LargestRow(rows[r], p.cfg.N)
		if err != nil {
			return fmt.Errorf("rank row %d: %w", r, err)
		}
		out[r] = RowRanking{Row: r, Items: items}
		metrics.RecordRowRanked(len(items))
		return nil
	})
	if err != nil {
		metrics.RecordError(stageRank, errorKind(err))
		return nil, err
	}

	return out, nil
}

// Neighbours asks searcher for the k rows most similar to each row of m and
// bounds each answer to k entries ordered by score. The searcher is called
// concurrently and must be safe for that.
func (p *Pipeline) Neighbours(ctx context.Context, m *sparse.Matrix, searcher neighbours.Searcher, k int) ([][]neighbours.Neighbour, error) {
	if searcher == nil {
		return nil, neighbours.ErrNilSearcher
	}
	if m == nil {
		return nil, fmt.Errorf("neighbours: %w", weighting.ErrInvalidShape)
	}

	out := make([][]neighbours.Neighbour, m.NumRows())
	err := p.forEachRow(ctx, m.NumRows(), func(ctx context.Context, r int) error {
		found, err := searcher.Search(ctx, m, r, k)
		if err != nil {
			return fmt.Errorf("search row %d: %w", r, err)
		}
		out[r] = neighbours.Bound(found, k)
		return nil
	})
	if err != nil {
		metrics.RecordError(stageSearch, errorKind(err))
		return nil, err
	}

	return out, nil
}

// Run executes a full batch: load, reweight, rank, write. The context gets
// a run ID if it has none.
func (p *Pipeline) Run(ctx context.Context, loader source.Loader, sink Sink) (*Summary, error) {
	if logging.RunIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewRunID(ctx)
	}
	logger := logging.Ctx(ctx).With().Str("component", component).Logger()
	start := time.Now()

	kind := loaderKind(loader)
	ds, err := loader.Load(ctx)
	if err != nil {
		metrics.RecordError(stageLoad, errorKind(err))
		return nil, fmt.Errorf("load interactions: %w", err)
	}
	metrics.RecordLoad(kind, ds.Matrix.NNZ(), time.Since(start))

	rows, cols := ds.Matrix.Shape()
	logger.Info().
		Str("source", kind).
		Int("rows", rows).
		Int("cols", cols).
		Int("nnz", ds.Matrix.NNZ()).
		Msg("interactions loaded")

	weighted, err := p.Reweight(ctx, ds.Matrix)
	if err != nil {
		return nil, err
	}

	rankings, err := p.Rank(ctx, weighted)
	if err != nil {
		return nil, err
	}

	if err := sink.WriteRankings(ctx, ds, rankings); err != nil {
		metrics.RecordError(stageWrite, errorKind(err))
		return nil, fmt.Errorf("write rankings: %w", err)
	}

	summary := &Summary{
		RunID:    logging.RunIDFromContext(ctx),
		Rows:     rows,
		Cols:     cols,
		NNZ:      ds.Matrix.NNZ(),
		Ranked:   len(rankings),
		Duration: time.Since(start),
	}
	metrics.RecordRunSuccess()

	logger.Info().
		Str("scheme", string(p.cfg.Scheme)).
		Int("ranked_rows", summary.Ranked).
		Dur("duration", summary.Duration).
		Msg("run complete")

	return summary, nil
}

// loaderKind labels a loader for metrics and logs.
func loaderKind(l source.Loader) string {
	switch l.(type) {
	case *source.TSV:
		return "tsv"
	case *source.DuckDB:
		return "duckdb"
	default:
		return "custom"
	}
}
