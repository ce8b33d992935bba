// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Source Metrics
	SourceLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playweight_source_load_duration_seconds",
			Help:    "Duration of interaction loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"}, // "tsv", "duckdb"
	)

	SourceEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playweight_source_entries_total",
			Help: "Total number of non-zero entries loaded",
		},
		[]string{"kind"},
	)

	// Weighting Metrics
	ReweightDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playweight_reweight_duration_seconds",
			Help:    "Duration of matrix reweighting in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
		},
		[]string{"scheme"}, // "none", "idf", "bm25"
	)

	ReweightEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playweight_reweight_entries_total",
			Help: "Total number of matrix entries reweighted",
		},
		[]string{"scheme"},
	)

	// Ranking Metrics
	RowsRanked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playweight_rows_ranked_total",
			Help: "Total number of rows passed through top-N selection",
		},
	)

	TopNResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playweight_topn_result_size",
			Help:    "Number of entries returned per ranked row",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 500},
		},
	)

	// Run Metrics
	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playweight_errors_total",
			Help: "Total number of failed operations",
		},
		[]string{"stage", "kind"}, // stage: "load", "reweight", "rank", "write"
	)

	RunLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "playweight_run_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful run",
		},
	)
)

// RecordLoad records a completed interaction load.
func RecordLoad(kind string, entries int, duration time.Duration) {
	SourceLoadDuration.WithLabelValues(kind).Observe(duration.Seconds())
	SourceEntries.WithLabelValues(kind).Add(float64(entries))
}

// RecordReweight records a completed reweighting pass.
func RecordReweight(scheme string, entries int, duration time.Duration) {
	ReweightDuration.WithLabelValues(scheme).Observe(duration.Seconds())
	ReweightEntries.WithLabelValues(scheme).Add(float64(entries))
}

// RecordRowRanked records one top-N selection returning size entries.
func RecordRowRanked(size int) {
	RowsRanked.Inc()
	TopNResultSize.Observe(float64(size))
}

// RecordError records a failure in the given pipeline stage.
func RecordError(stage, kind string) {
	Errors.WithLabelValues(stage, kind).Inc()
}

// RecordRunSuccess stamps the last successful run time.
func RecordRunSuccess() {
	RunLastSuccess.SetToCurrentTime()
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for pickup by a node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
