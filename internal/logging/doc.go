// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

// Package logging provides the zerolog-based structured logger shared by
// every Playweight component.
//
// JSON output is the default; console output is available for interactive
// use. Each batch run carries a short run ID in its context so that log lines
// from loading, reweighting and ranking can be correlated.
//
// # Quick Start
//
//	if err := logging.Init(logging.Config{Level: "info", Format: "json"}); err != nil {
//		return err
//	}
//
//	ctx = logging.ContextWithLogger(ctx, logging.Logger().With().Str("component", "cli").Logger())
//	ctx = logging.ContextWithNewRunID(ctx)
//	logging.Ctx(ctx).Info().Int("rows", n).Msg("Matrix loaded")
//
// Components log through Ctx so that the logger and run ID travel with the
// context instead of being threaded through constructors.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
