// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MatchQueries counts match queries by source (adhoc or saved) and result.
	MatchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talent_match_queries_total",
		Help: "Total candidate match queries by source and result",
	}, []string{"source", "result"})

	// MatchCandidatesScored tracks how many candidates were scored per query.
	MatchCandidatesScored = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "talent_match_candidates_scored",
		Help:    "Number of candidates scored per match query",
		Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000},
	})

	// MatchDuration tracks end-to-end match latency including repository reads.
	MatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "talent_match_duration_seconds",
		Help:    "Match query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	})

	// FriendTransitions counts friend state machine operations by outcome.
	FriendTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talent_friend_transitions_total",
		Help: "Friend relationship operations by operation and result",
	}, []string{"operation", "result"})

	// RealtimeFailures counts swallowed realtime side-channel failures.
	RealtimeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talent_realtime_failures_total",
		Help: "Realtime projection and notification failures by operation",
	}, []string{"operation"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
