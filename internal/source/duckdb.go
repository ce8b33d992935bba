// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package source

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver

	"github.com/tomtom215/playweight/internal/logging"
)

// DuckDBConfig configures the DuckDB loader.
type DuckDBConfig struct {
	// Path is the database file. Empty opens an in-memory database, which
	// suits queries over files such as read_csv('plays.tsv').
	Path string

	// Query must return (row_key, col_key, value) columns. Keys may be any
	// type convertible to a string. DECIMAL values need a ::DOUBLE cast.
	Query string

	// MaxMemory caps DuckDB memory, e.g. "2GB". Default: 1GB.
	MaxMemory string

	// Threads sets DuckDB worker threads. 0 uses runtime.NumCPU().
	Threads int

	// Timeout bounds the query. Default: 5 minutes.
	Timeout time.Duration
}

// DuckDB loads interactions with a SQL query.
type DuckDB struct {
	cfg DuckDBConfig
}

// NewDuckDB creates a DuckDB loader, filling defaults.
func NewDuckDB(cfg DuckDBConfig) *DuckDB {
	if cfg.MaxMemory == "" {
		cfg.MaxMemory = "1GB"
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &DuckDB{cfg: cfg}
}

// connString builds the DSN with tuning options. Extension auto-install is
// disabled so a query never triggers a network download.
func (d *DuckDB) connString() string {
	path := d.cfg.Path
	if path == "" {
		path = ":memory:"
	}
	return fmt.Sprintf("%s?threads=%d&max_memory=%s&autoinstall_known_extensions=false",
		path, d.cfg.Threads, d.cfg.MaxMemory)
}

// Load opens the database, runs the query and closes the connection.
func (d *DuckDB) Load(ctx context.Context) (*Dataset, error) {
	conn, err := sql.Open("duckdb", d.connString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer conn.Close()

	return QueryInteractions(ctx, conn, d.cfg.Query, d.cfg.Timeout)
}

// QueryInteractions runs query on an open connection and collects its
// (row_key, col_key, value) rows. Rows with a NULL in any column are
// skipped.
func QueryInteractions(ctx context.Context, conn *sql.DB, query string, timeout time.Duration) (*Dataset, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	if len(columns) != 3 {
		return nil, fmt.Errorf("%w: query returned %d columns, want 3 (row_key, col_key, value)",
			ErrMalformedRecord, len(columns))
	}

	c := newCollector()
	nulls := 0
	rowNo := 0
	for rows.Next() {
		rowNo++
		if rowNo%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		var (
			rowKey sql.NullString
			colKey sql.NullString
			value  sql.NullFloat64
		)
		if err := rows.Scan(&rowKey, &colKey, &value); err != nil {
			return nil, fmt.Errorf("scan interaction %d: %w", rowNo, err)
		}
		if !rowKey.Valid || !colKey.Valid || !value.Valid {
			nulls++
			continue
		}
		if math.IsNaN(value.Float64) || math.IsInf(value.Float64, 0) {
			return nil, fmt.Errorf("%w at result row %d: bad value %v",
				ErrMalformedRecord, rowNo, value.Float64)
		}

		if err := c.add(rowKey.String, colKey.String, value.Float64, fmt.Sprintf("result row %d", rowNo)); err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}

	logging.Ctx(ctx).Debug().
		Int("records", c.records).
		Int("zero_values", c.skipped).
		Int("null_rows", nulls).
		Msg("DuckDB interactions queried")

	return c.dataset()
}
