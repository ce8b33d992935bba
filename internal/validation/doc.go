// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata after first use. Field names in messages come from koanf tags, so
// a failure on Config.Weighting.K1 is reported as "weighting.k1".
//
// Besides the built-in tags, the validator registers:
//
//   - finite: float fields must not be NaN or ±Inf
//
// # Quick Start
//
//	type WeightingConfig struct {
//	    K1 float64 `koanf:"k1" validate:"finite,gt=0"`
//	    B  float64 `koanf:"b" validate:"finite,gte=0,lte=1"`
//	}
//
//	if verr := validation.ValidateStruct(&cfg); verr != nil {
//	    return fmt.Errorf("invalid configuration: %w", verr)
//	}
package validation
