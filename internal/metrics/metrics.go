// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "festival_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	CacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festival_response_cache_total",
			Help: "Response cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "festival_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// Recommender
	RecommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "festival_recommendations_total",
			Help: "Recommendation requests served",
		},
	)

	RecommendationSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "festival_recommendation_size",
			Help:    "Number of showings in each recommendation",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 8, 12, 20},
		},
	)

	// Program snapshot
	SnapshotReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festival_snapshot_reloads_total",
			Help: "Program snapshot reloads by outcome (ok, error)",
		},
		[]string{"outcome"},
	)

	UnmatchedTitles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "festival_unmatched_titles",
			Help: "Distinct schedule titles without a catalog film in the current snapshot",
		},
	)

	// Watchlist
	WatchlistOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festival_watchlist_operations_total",
			Help: "Watchlist operations by kind and outcome",
		},
		[]string{"op", "outcome"},
	)

	// Refresh
	RefreshRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festival_refresh_runs_total",
			Help: "Incremental refresh runs by outcome",
		},
		[]string{"outcome"},
	)

	RefreshChangedDays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "festival_refresh_changed_days_total",
			Help: "Schedule days imported because their digest changed",
		},
	)

	// Queue
	QueueEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festival_queue_events_total",
			Help: "schedule.updated events by direction and outcome",
		},
		[]string{"direction", "outcome"},
	)
)
