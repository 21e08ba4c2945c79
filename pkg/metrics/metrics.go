package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RemindersGenerated counts reminder candidates emitted by strategy type.
	RemindersGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitalog_reminders_generated_total",
			Help: "Total number of reminder candidates generated",
		},
		[]string{"type"},
	)

	// RemindersSuppressed counts candidates dropped by the deduplication cache.
	RemindersSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitalog_reminders_suppressed_total",
			Help: "Total number of reminder candidates suppressed as duplicates",
		},
		[]string{"type"},
	)

	// StrategyFailures counts evaluation failures by strategy.
	StrategyFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitalog_strategy_failures_total",
			Help: "Total number of strategy evaluation failures",
		},
		[]string{"strategy"},
	)

	// Dispatches counts channel delivery attempts by channel and result (ok|error).
	Dispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitalog_dispatches_total",
			Help: "Total number of channel delivery attempts",
		},
		[]string{"channel", "result"},
	)

	// TickDuration measures how long a full scheduler sweep takes.
	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vitalog_scheduler_tick_seconds",
			Help:    "Duration of scheduler ticks across all users",
			Buckets: prometheus.DefBuckets,
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vitalog_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
