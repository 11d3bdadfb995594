// Package metrics defines and registers the custom Prometheus metrics of the
// expense tracker API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry on package init via promauto;
// HTTP request metrics come from the echoprometheus middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "expense"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "inactive", "deleted"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RefreshTotal counts refresh-token rotations.
// Label:
//   - result: "rotated", "invalid", "reused" (verified but no longer the stored token)
var RefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_total",
		Help:      "Total number of refresh-token requests, by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter, by path.",
	},
	[]string{"path"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditRecordedTotal counts audit entries written.
// Labels:
//   - action: CREATE, UPDATE, DELETE, LOGIN, LOGOUT, EXPORT
//   - entity: USER, CATEGORY, EXPENSE, INCOME
var AuditRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_recorded_total",
		Help:      "Total number of audit entries persisted.",
	},
	[]string{"action", "entity"},
)

// AuditWriteFailuresTotal counts audit entries that could not be persisted.
// The triggering operation still succeeds.
var AuditWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of audit entries that failed to persist.",
	},
)

// AuditPublishTotal counts fan-out publish outcomes.
// Label:
//   - result: "published", "failed", "dropped" (worker queue full)
var AuditPublishTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_publish_total",
		Help:      "Total number of audit fan-out publish attempts, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks entries waiting in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Analytics metrics ─────────────────────────────────────────────────────────

// AnalyticsCacheTotal counts analytics cache lookups.
// Label:
//   - result: "hit", "miss", "error"
var AnalyticsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analytics_cache_total",
		Help:      "Total number of analytics cache lookups, by result.",
	},
	[]string{"result"},
)

// AnalyticsDuration measures how long the aggregation pipelines take.
var AnalyticsDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analytics_duration_seconds",
		Help:      "Duration of the analytics aggregation.",
		Buckets:   prometheus.DefBuckets,
	},
)
