// Package metrics provides Prometheus metrics for the acquisition pipeline.
// It exports three metrics for tracking data source health:
//   - acquisition_fetch_duration_seconds: Histogram with a source label
//   - acquisition_fetch_failures_total: Counter with source and kind labels
//   - acquisition_rows_written_total: Counter with a theme label
//
// All metrics are automatically registered with the Prometheus default
// registry during package initialization. The pipeline is a run-once batch,
// so exposition happens through WriteTextfile instead of an HTTP endpoint.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "acquisition_fetch_duration_seconds",
			Help:    "Data source fetch latency",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"source"},
	)

	FetchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "acquisition_fetch_failures_total",
			Help: "Failed data source fetches by kind (transport or schema)",
		},
		[]string{"source", "kind"},
	)

	RowsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "acquisition_rows_written_total",
			Help: "CSV rows persisted by theme",
		},
		[]string{"theme"},
	)
)

func init() {
	prometheus.MustRegister(FetchDuration)
	prometheus.MustRegister(FetchFailures)
	prometheus.MustRegister(RowsWritten)
}

// WriteTextfile dumps the default registry to path in the text exposition
// format, for the node_exporter textfile collector to pick up.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
