// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"playweight.yaml",
	"playweight.yml",
	"/etc/playweight/config.yaml",
	"/etc/playweight/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "PLAYWEIGHT_CONFIG"

// envPrefix limits which environment variables are considered.
const envPrefix = "PLAYWEIGHT_"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Weighting: WeightingConfig{
			Scheme: "bm25",
			K1:     100,
			B:      0.8,
		},
		TopN: TopNConfig{
			N:       10,
			Workers: 0, // 0 = runtime.NumCPU()
		},
		Source: SourceConfig{
			Kind:        "tsv",
			Delimiter:   "\t",
			RowColumn:   0,
			ColColumn:   1,
			ValueColumn: 2,
			MaxMemory:   "1GB",
			Threads:     0,
		},
		Output: OutputConfig{
			Path: "-",
		},
	}
}

// Load reads configuration from defaults, the config file at path (or the
// first discovered file when path is empty), PLAYWEIGHT_* environment
// variables, and finally overrides. Override keys are koanf paths such as
// "weighting.k1".
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional unless named explicitly)
	configPath := path
	if configPath == "" {
		configPath = findConfigFile()
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables
	// PLAYWEIGHT_WEIGHTING_K1 -> weighting.k1
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Layer 4: Explicit overrides (highest priority)
	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply override %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "" if none exists.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lower-cased variable names, without the PLAYWEIGHT_
// prefix, to koanf paths.
var envMappings = map[string]string{
	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Weighting
	"scheme":           "weighting.scheme",
	"weighting_scheme": "weighting.scheme",
	"weighting_k1":     "weighting.k1",
	"weighting_b":      "weighting.b",
	"bm25_k1":          "weighting.k1",
	"bm25_b":           "weighting.b",

	// Ranking
	"topn_n":       "topn.n",
	"topn_workers": "topn.workers",
	"workers":      "topn.workers",

	// Source
	"source_kind":         "source.kind",
	"source_path":         "source.path",
	"source_delimiter":    "source.delimiter",
	"source_row_column":   "source.row_column",
	"source_col_column":   "source.col_column",
	"source_value_column": "source.value_column",
	"source_skip_header":  "source.skip_header",
	"source_query":        "source.query",
	"duckdb_max_memory":   "source.max_memory",
	"duckdb_threads":      "source.threads",

	// Output
	"output_path":  "output.path",
	"metrics_file": "output.metrics_file",
}

// envTransformFunc converts PLAYWEIGHT_* variable names to koanf paths.
// Unknown variables map to "" and are ignored, which keeps
// PLAYWEIGHT_CONFIG out of the tree.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	return envMappings[key]
}
