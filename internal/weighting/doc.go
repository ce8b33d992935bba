// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

// Package weighting rescales the entries of a sparse interaction matrix so
// that raw counts become informativeness scores.
//
// Two schemes are provided:
//
//   - IDF: each entry v in column c becomes sqrt(v) * idf[c], where
//     idf[c] = ln(R / (1 + df[c])) and df[c] is the number of rows with an
//     entry in column c.
//   - BM25: each entry v in row r and column c becomes
//     v * (K1 + 1) / (K1 * norm[r] + v) * idf[c], where
//     norm[r] = (1 - B) + B * rowSum[r] / mean(rowSum).
//
// Note that idf[c] is negative for columns present in more than R-1 rows
// and exactly zero when df[c] = R-1. This matches the reference behaviour
// and is not clamped.
//
// # Purity
//
// Every function returns a freshly allocated matrix with the input's shape
// and sparsity pattern. Inputs are never modified and no package state is
// kept, so calls may run concurrently on shared matrices.
//
// # Errors
//
// All failures are reported immediately with sentinel errors (ErrInvalidShape,
// ErrInvalidInput, ErrInvalidArgument) that callers match with errors.Is.
// Negative counts are not validated; their result is undefined.
package weighting
