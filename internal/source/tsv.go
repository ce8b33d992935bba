// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/playweight/internal/logging"
)

// maxLineBytes bounds a single TSV line.
const maxLineBytes = 1 << 20

// cancelCheckInterval is how many lines are read between context checks.
const cancelCheckInterval = 4096

// TSVConfig configures the delimited-text loader.
type TSVConfig struct {
	// Path is the file to read.
	Path string

	// Delimiter separates fields. Default: tab.
	Delimiter string

	// RowColumn, ColColumn and ValueColumn are zero-based field positions.
	RowColumn   int
	ColColumn   int
	ValueColumn int

	// SkipHeader drops the first line.
	SkipHeader bool
}

// DefaultTSVConfig reads user<TAB>item<TAB>count lines from path.
func DefaultTSVConfig(path string) TSVConfig {
	return TSVConfig{
		Path:        path,
		Delimiter:   "\t",
		RowColumn:   0,
		ColColumn:   1,
		ValueColumn: 2,
	}
}

// TSV loads interactions from a delimited text file.
type TSV struct {
	cfg TSVConfig
}

// NewTSV creates a TSV loader.
func NewTSV(cfg TSVConfig) *TSV {
	if cfg.Delimiter == "" {
		cfg.Delimiter = "\t"
	}
	return &TSV{cfg: cfg}
}

// Load reads the configured file.
func (t *TSV) Load(ctx context.Context) (*Dataset, error) {
	f, err := os.Open(t.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", t.cfg.Path, err)
	}
	defer f.Close()

	ds, err := ReadTSV(ctx, f, t.cfg)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.cfg.Path, err)
	}
	return ds, nil
}

// ReadTSV parses delimited interactions from r. Blank lines are ignored.
// Fields are split literally; quotes have no special meaning, since
// free-text keys such as artist names often contain unbalanced quotes.
func ReadTSV(ctx context.Context, r io.Reader, cfg TSVConfig) (*Dataset, error) {
	if cfg.Delimiter == "" {
		cfg.Delimiter = "\t"
	}
	width := max(cfg.RowColumn, cfg.ColColumn, cfg.ValueColumn) + 1

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	c := newCollector()
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if lineNo == 1 && cfg.SkipHeader {
			continue
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, cfg.Delimiter)
		where := fmt.Sprintf("line %d", lineNo)
		if len(fields) < width {
			return nil, fmt.Errorf("%w at %s: want at least %d fields, got %d",
				ErrMalformedRecord, where, width, len(fields))
		}

		raw := strings.TrimSpace(fields[cfg.ValueColumn])
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%w at %s: bad value %q", ErrMalformedRecord, where, raw)
		}

		if err := c.add(fields[cfg.RowColumn], fields[cfg.ColColumn], value, where); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan line %d: %w", lineNo+1, err)
	}

	logging.Ctx(ctx).Debug().
		Int("lines", lineNo).
		Int("records", c.records).
		Int("zero_values", c.skipped).
		Msg("TSV interactions parsed")

	return c.dataset()
}
