// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

// Package config loads Playweight run configuration with Koanf v2.
//
// Values are layered, later layers winning:
//
//  1. Built-in defaults
//  2. A YAML file: the path given to Load, else $PLAYWEIGHT_CONFIG, else
//     the first of DefaultConfigPaths that exists
//  3. PLAYWEIGHT_* environment variables
//  4. Command-line overrides
//
// # Example File
//
//	logging:
//	  level: info
//	  format: console
//	weighting:
//	  scheme: bm25
//	  k1: 100
//	  b: 0.8
//	topn:
//	  n: 10
//	source:
//	  kind: duckdb
//	  query: SELECT user_id, artist, plays FROM read_csv('plays.tsv')
//	output:
//	  path: rankings.jsonl
//
// # Environment Variables
//
//	PLAYWEIGHT_LOG_LEVEL        logging.level
//	PLAYWEIGHT_WEIGHTING_SCHEME weighting.scheme
//	PLAYWEIGHT_WEIGHTING_K1     weighting.k1
//	PLAYWEIGHT_WEIGHTING_B      weighting.b
//	PLAYWEIGHT_TOPN_N           topn.n
//	PLAYWEIGHT_SOURCE_PATH      source.path
//	PLAYWEIGHT_OUTPUT_PATH      output.path
//
// See envMappings for the full list.
package config
