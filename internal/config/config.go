// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package config

import (
	"fmt"

	"github.com/tomtom215/playweight/internal/logging"
	"github.com/tomtom215/playweight/internal/validation"
	"github.com/tomtom215/playweight/internal/weighting"
)

// Config holds all settings for a Playweight run.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config File: optional YAML file
//  3. Environment Variables: PLAYWEIGHT_* overrides
//  4. Overrides: explicit values from the command line
//
// Config is immutable after loading and safe for concurrent reads.
type Config struct {
	Logging   LoggingConfig   `koanf:"logging"`
	Weighting WeightingConfig `koanf:"weighting"`
	TopN      TopNConfig      `koanf:"topn"`
	Source    SourceConfig    `koanf:"source"`
	Output    OutputConfig    `koanf:"output"`
}

// LoggingConfig holds logging settings for zerolog.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// WeightingConfig selects and tunes the reweighting scheme.
type WeightingConfig struct {
	// Scheme is none, idf (alias tfidf) or bm25.
	// Default: bm25
	Scheme string `koanf:"scheme" validate:"oneof=none idf tfidf bm25"`

	// K1 is the BM25 saturation constant.
	// Default: 100
	K1 float64 `koanf:"k1" validate:"finite,gt=0"`

	// B is the BM25 length-normalization blend.
	// Default: 0.8
	B float64 `koanf:"b" validate:"finite,gte=0,lte=1"`
}

// TopNConfig controls per-row ranking.
type TopNConfig struct {
	// N is the number of entries kept per row.
	// Default: 10
	N int `koanf:"n" validate:"min=1"`

	// Workers bounds concurrent row ranking. 0 uses runtime.NumCPU().
	// Default: 0
	Workers int `koanf:"workers" validate:"min=0,max=256"`
}

// SourceConfig describes where interactions are read from.
type SourceConfig struct {
	// Kind is tsv or duckdb.
	// Default: tsv
	Kind string `koanf:"kind" validate:"oneof=tsv duckdb"`

	// Path is the TSV file, or the DuckDB database file. An empty DuckDB
	// path opens an in-memory database.
	Path string `koanf:"path" validate:"required_if=Kind tsv"`

	// Delimiter separates TSV fields.
	// Default: tab
	Delimiter string `koanf:"delimiter" validate:"len=1"`

	// RowColumn, ColColumn and ValueColumn are zero-based TSV field positions.
	// Defaults: 0, 1, 2
	RowColumn   int `koanf:"row_column" validate:"min=0"`
	ColColumn   int `koanf:"col_column" validate:"min=0"`
	ValueColumn int `koanf:"value_column" validate:"min=0"`

	// SkipHeader drops the first TSV line.
	// Default: false
	SkipHeader bool `koanf:"skip_header"`

	// Query returns (row_key, col_key, value) rows for the duckdb source.
	Query string `koanf:"query" validate:"required_if=Kind duckdb"`

	// MaxMemory caps DuckDB memory, e.g. "2GB".
	// Default: 1GB
	MaxMemory string `koanf:"max_memory"`

	// Threads sets DuckDB worker threads. 0 uses runtime.NumCPU().
	// Default: 0
	Threads int `koanf:"threads" validate:"min=0"`
}

// OutputConfig controls where rankings and metrics are written.
type OutputConfig struct {
	// Path receives JSON-lines rankings. Empty or "-" writes to stdout.
	Path string `koanf:"path"`

	// MetricsFile, when set, receives Prometheus text-format metrics at
	// the end of the run.
	MetricsFile string `koanf:"metrics_file"`
}

// Validate checks every field and the cross-field constraints struct tags
// cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if c.Source.Kind == "tsv" {
		s := c.Source
		if s.RowColumn == s.ColColumn || s.RowColumn == s.ValueColumn || s.ColColumn == s.ValueColumn {
			return fmt.Errorf("source columns must be distinct, got row=%d col=%d value=%d",
				s.RowColumn, s.ColColumn, s.ValueColumn)
		}
	}

	return nil
}

// LoggingOptions converts the logging section for logging.Init.
func (c *Config) LoggingOptions() logging.Config {
	opts := logging.DefaultConfig()
	opts.Level = c.Logging.Level
	opts.Format = c.Logging.Format
	opts.Caller = c.Logging.Caller
	return opts
}

// BM25 returns the BM25 parameters.
func (c *Config) BM25() weighting.BM25Config {
	return weighting.BM25Config{K1: c.Weighting.K1, B: c.Weighting.B}
}
