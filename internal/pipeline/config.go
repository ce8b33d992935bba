// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package pipeline

import (
	"fmt"

	"github.com/tomtom215/playweight/internal/topn"
	"github.com/tomtom215/playweight/internal/weighting"
)

// Config tunes a Pipeline.
type Config struct {
	// Scheme selects the reweighting applied before ranking.
	// Default: bm25
	Scheme weighting.Scheme

	// BM25 holds the BM25 parameters; ignored by other schemes.
	BM25 weighting.BM25Config

	// N is the number of entries kept per ranked row.
	// Default: 10
	N int

	// Workers bounds concurrent row processing. 0 uses runtime.NumCPU().
	// Default: 0
	Workers int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		Scheme:  weighting.SchemeBM25,
		BM25:    weighting.DefaultBM25Config(),
		N:       topn.DefaultN,
		Workers: 0,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	scheme, err := weighting.ParseScheme(string(c.Scheme))
	if err != nil {
		return err
	}
	if scheme == weighting.SchemeBM25 {
		if err := c.BM25.Validate(); err != nil {
			return err
		}
	}
	if c.N < 1 {
		return fmt.Errorf("n must be at least 1, got %d", c.N)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return nil
}
