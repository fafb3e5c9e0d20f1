// Package metrics defines and registers all custom Prometheus metrics for the
// newsdesk web client. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on import; the HTTP
// request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newsdesk"

// ── Backend gateway ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the news backend.
// Labels:
//   - endpoint: the route template, e.g. "/api/articles/get-single-article/:slug"
//   - status: the normalised status code, "503" for network failures
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the news backend.",
	},
	[]string{"endpoint", "status"},
)

// BackendRequestDuration measures backend round trips.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the news backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ── Guards ────────────────────────────────────────────────────────────────────

// GuardRedirectsTotal counts visitors turned away by a route guard.
// Labels:
//   - guard: "auth" or "role"
//   - reason: "no_session", "expired", "unauthorized", "role"
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of guard redirects, by guard and reason.",
	},
	[]string{"guard", "reason"},
)

// ProfileRefreshTotal counts profile refreshes done by the auth guard.
// Label:
//   - result: "ok", "unauthorized" or "error"
var ProfileRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_refresh_total",
		Help:      "Total number of profile refreshes, by result.",
	},
	[]string{"result"},
)

// ── Lists ─────────────────────────────────────────────────────────────────────

// ListCacheTotal counts collection cache lookups.
// Label:
//   - result: "hit" or "miss"
var ListCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_cache_total",
		Help:      "Total number of list cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ListStaleResponsesTotal counts fetched collections discarded because a
// newer refresh started while they were in flight.
var ListStaleResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_stale_responses_total",
		Help:      "Total number of list responses discarded as stale.",
	},
	[]string{"screen"},
)

// ── Staff actions ─────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid", "rate_limited", "unknown_role", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of staff login attempts, by result.",
	},
	[]string{"result"},
)

// ArticlesSubmittedTotal counts article form submissions.
// Labels:
//   - mode: "create" or "edit"
//   - result: "ok", "invalid", "locked", "error"
var ArticlesSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_submitted_total",
		Help:      "Total number of article submissions, by mode and result.",
	},
	[]string{"mode", "result"},
)

// RateLimitedTotal counts requests rejected by a rate limit bucket.
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by rate limiting.",
	},
	[]string{"bucket"},
)

// ── Audit ─────────────────────────────────────────────────────────────────────

// AuditQueueDepth tracks entries waiting in each audit worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// AuditErrorsTotal counts audit entries that could not be persisted or queued.
// Label:
//   - reason: "insert_failed" or "queue_full"
var AuditErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit entries dropped, by reason.",
	},
	[]string{"reason"},
)
