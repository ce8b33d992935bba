// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

// Command playweight reweights a user/item interaction matrix and writes the
// top-N entries of every row as JSON lines.
//
// Interactions come from a delimited text file (row key, column key, value)
// or from a DuckDB query returning the same three columns. The matrix is
// reweighted with IDF or BM25 and each row's strongest entries are written
// to stdout or --output.
//
// # Configuration
//
// Settings are layered, highest priority last:
//   - Built-in defaults
//   - Config file (--config, $PLAYWEIGHT_CONFIG, ./playweight.yaml)
//   - PLAYWEIGHT_* environment variables
//   - Command-line flags
//
// # Example Usage
//
//	playweight --input plays.tsv --scheme bm25 -n 20 > top.jsonl
//	playweight --source duckdb --query "SELECT user, artist, plays FROM 'plays.parquet'"
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/tomtom215/playweight/internal/config"
	"github.com/tomtom215/playweight/internal/logging"
	"github.com/tomtom215/playweight/internal/metrics"
	"github.com/tomtom215/playweight/internal/output"
	"github.com/tomtom215/playweight/internal/pipeline"
	"github.com/tomtom215/playweight/internal/source"
	"github.com/tomtom215/playweight/internal/validation"
	"github.com/tomtom215/playweight/internal/weighting"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		reportError(os.Stderr, err)
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// flagKeys maps flag names to the configuration keys they override.
var flagKeys = map[string]string{
	"scheme":       "weighting.scheme",
	"k1":           "weighting.k1",
	"b":            "weighting.b",
	"top":          "topn.n",
	"workers":      "topn.workers",
	"source":       "source.kind",
	"input":        "source.path",
	"delimiter":    "source.delimiter",
	"skip-header":  "source.skip_header",
	"query":        "source.query",
	"output":       "output.path",
	"metrics-file": "output.metrics_file",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("playweight", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	fs.String("config", "", "path to a YAML config file")
	fs.String("scheme", "", "reweighting scheme: none, idf, tfidf, bm25")
	fs.Float64("k1", 0, "BM25 saturation constant")
	fs.Float64("b", 0, "BM25 length normalization, between 0 and 1")
	fs.IntP("top", "n", 0, "entries kept per row")
	fs.Int("workers", 0, "concurrent ranking workers (0 = number of CPUs)")
	fs.String("source", "", "interaction source: tsv or duckdb")
	fs.StringP("input", "i", "", "interaction file (tsv) or database file (duckdb)")
	fs.String("delimiter", "", "field delimiter for tsv input")
	fs.Bool("skip-header", false, "skip the first line of tsv input")
	fs.String("query", "", "DuckDB query returning (row_key, col_key, value)")
	fs.StringP("output", "o", "", "rankings file, or - for stdout")
	fs.String("metrics-file", "", "write Prometheus metrics to this file after the run")
	fs.String("log-level", "", "log level: trace, debug, info, warn, error")
	fs.String("log-format", "", "log format: json or console")
	fs.Bool("version", false, "print version and exit")
	fs.BoolP("help", "h", false, "show help")

	return fs
}

// overrides collects the flags set on the command line, keyed by their
// configuration path.
func overrides(fs *pflag.FlagSet) map[string]interface{} {
	out := make(map[string]interface{})
	fs.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			out[key] = f.Value.String()
		}
	})
	return out
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if help, _ := fs.GetBool("help"); help {
		printHelp(stderr, fs)
		return nil
	}
	if v, _ := fs.GetBool("version"); v {
		fmt.Fprintf(stdout, "playweight %s\n", version)
		return nil
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	configPath, _ := fs.GetString("config")
	cfg, err := config.Load(configPath, overrides(fs))
	if err != nil {
		return err
	}

	logOpts := cfg.LoggingOptions()
	logOpts.Output = stderr
	if err := logging.Init(logOpts); err != nil {
		return err
	}

	// Every component logs through the context, so each line carries the
	// build version and run ID.
	ctx = logging.ContextWithLogger(ctx, logging.Logger().With().Str("version", version).Logger())
	ctx = logging.ContextWithNewRunID(ctx)
	logger := logging.Ctx(ctx).With().Str("component", "cli").Logger()
	logger.Info().
		Str("source", cfg.Source.Kind).
		Str("scheme", cfg.Weighting.Scheme).
		Int("n", cfg.TopN.N).
		Msg("starting run")

	p, err := pipeline.New(pipelineConfig(cfg))
	if err != nil {
		return err
	}

	sink := output.NewJSONLines(cfg.Output.Path)
	if cfg.Output.Path == "" || cfg.Output.Path == output.Stdout {
		sink = output.NewJSONLinesWriter(stdout)
	}

	summary, runErr := p.Run(ctx, newLoader(cfg), sink)

	// Metrics are exported even for failed runs so the error counters
	// are visible.
	if cfg.Output.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			logger.Error().Err(err).Str("path", cfg.Output.MetricsFile).Msg("failed to write metrics")
			if runErr == nil {
				runErr = err
			}
		}
	}

	if runErr != nil {
		logger.Error().Err(runErr).Msg("run failed")
		return runErr
	}

	logger.Info().
		Int("rows", summary.Rows).
		Int("cols", summary.Cols).
		Int("nnz", summary.NNZ).
		Dur("duration", summary.Duration).
		Msg("rankings written")
	return nil
}

// reportError prints err and, for configuration validation failures, one
// line per offending key with the value that was rejected.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)

	var verr *validation.Errors
	if !errors.As(err, &verr) {
		return
	}
	fields := verr.Fields()
	for i := range fields {
		fe := &fields[i]
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fmt.Fprintf(w, "  %s = %v (rule %s)\n", fe.Field(), fe.Value(), rule)
	}
}

func pipelineConfig(cfg *config.Config) *pipeline.Config {
	return &pipeline.Config{
		Scheme:  weighting.Scheme(cfg.Weighting.Scheme),
		BM25:    cfg.BM25(),
		N:       cfg.TopN.N,
		Workers: cfg.TopN.Workers,
	}
}

func newLoader(cfg *config.Config) source.Loader {
	s := cfg.Source
	if s.Kind == "duckdb" {
		return source.NewDuckDB(source.DuckDBConfig{
			Path:      s.Path,
			Query:     s.Query,
			MaxMemory: s.MaxMemory,
			Threads:   s.Threads,
		})
	}
	return source.NewTSV(source.TSVConfig{
		Path:        s.Path,
		Delimiter:   s.Delimiter,
		RowColumn:   s.RowColumn,
		ColColumn:   s.ColColumn,
		ValueColumn: s.ValueColumn,
		SkipHeader:  s.SkipHeader,
	})
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `playweight reweights an interaction matrix and writes each row's top entries.

Usage:
  playweight [flags]

Flags:
%s
Environment variables use the PLAYWEIGHT_ prefix, e.g. PLAYWEIGHT_WEIGHTING_K1.
`, fs.FlagUsages())
}
