package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridgehead_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bridgehead_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// InteractionToggles counts ledger toggles by interaction type and resulting state.
	InteractionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridgehead_interaction_toggles_total",
		Help: "Total number of like/repost toggles by type and resulting state",
	}, []string{"type", "state"})

	// PostsCreated counts community posts created, by topic.
	PostsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridgehead_posts_created_total",
		Help: "Total number of community posts created",
	}, []string{"topic"})

	// RepliesCreated counts replies created.
	RepliesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridgehead_replies_created_total",
		Help: "Total number of replies created",
	})

	// FeedPagesServed counts feed pages served, split by whether the caller was authenticated.
	FeedPagesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridgehead_feed_pages_served_total",
		Help: "Total number of feed pages served",
	}, []string{"authenticated"})

	// CountersReconciled counts posts whose counters were corrected by reconciliation.
	CountersReconciled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridgehead_counters_reconciled_total",
		Help: "Total number of posts whose denormalized counters were corrected",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
