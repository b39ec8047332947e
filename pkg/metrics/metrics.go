// Package metrics provides Prometheus metrics for the digest service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChannelOutcomes counts processed channels by outcome
	// ("summarized", "empty_channel", "upstream_error", "parse_error", "store_error").
	ChannelOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "digest",
			Name:      "scan_channel_outcomes_total",
			Help:      "Channels processed by the scan pipeline, by outcome",
		},
		[]string{"outcome"},
	)

	// ScansTotal counts scan runs by trigger ("manual", "cron").
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "digest",
			Name:      "scans_total",
			Help:      "Total number of scan runs",
		},
		[]string{"trigger", "status"},
	)

	ScanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "digest",
			Name:      "scan_duration_seconds",
			Help:      "Duration of scan runs in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"trigger"},
	)

	// AICompletions counts language model requests by provider and status.
	AICompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "digest",
			Name:      "ai_completions_total",
			Help:      "Total number of language model completion requests",
		},
		[]string{"provider", "status"},
	)
)

func RecordChannelOutcome(outcome string) {
	ChannelOutcomes.WithLabelValues(outcome).Inc()
}

func RecordScan(trigger, status string, seconds float64) {
	ScansTotal.WithLabelValues(trigger, status).Inc()
	ScanDuration.WithLabelValues(trigger).Observe(seconds)
}

func RecordCompletion(provider string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	AICompletions.WithLabelValues(provider, status).Inc()
}
