// Package metrics holds the Prometheus collectors shared by the story
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plotlines_ai_requests_total",
			Help: "Total number of story generation requests sent to the text provider.",
		},
		[]string{"provider", "status"}, // status: success, error, empty, structure
	)
	AIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plotlines_ai_request_duration_seconds",
			Help:    "Histogram of text provider request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
	AIPromptTokens = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plotlines_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 15), // 100, 200, ..., 1500
		},
	)
	IllustrationLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plotlines_illustration_lookups_total",
			Help: "Image provider lookups by outcome.",
		},
		[]string{"provider", "result"}, // result: hit, miss, error
	)
)
