// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

/*
Package metrics provides Prometheus instrumentation for Playweight runs.

Playweight is a batch tool, so nothing is served over HTTP. Metrics are
registered on the default registry and, when a metrics file is configured,
written once at the end of a run with WriteTextfile for a node_exporter
textfile collector to pick up.

# Available Metrics

Source:
  - playweight_source_load_duration_seconds (histogram, labels: kind)
  - playweight_source_entries_total (counter, labels: kind)

Weighting:
  - playweight_reweight_duration_seconds (histogram, labels: scheme)
  - playweight_reweight_entries_total (counter, labels: scheme)

Ranking:
  - playweight_rows_ranked_total (counter)
  - playweight_topn_result_size (histogram)

Run:
  - playweight_errors_total (counter, labels: stage, kind)
  - playweight_run_last_success_timestamp_seconds (gauge)

# Usage

	start := time.Now()
	out, err := weighting.Apply(m, scheme, cfg)
	if err != nil {
	    metrics.RecordError("reweight", "invalid_input")
	    return err
	}
	metrics.RecordReweight(string(scheme), out.NNZ(), time.Since(start))
*/
package metrics
