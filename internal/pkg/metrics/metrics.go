// Package metrics defines and registers all custom Prometheus metrics for the
// petcare client. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and served by the companion server at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "petcare"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionOperationsTotal counts session operations by outcome.
// Labels:
//   - operation: "initialize", "login", "logout", "register", "update_profile", "change_password"
//   - result: "success" or the error kind ("validation", "authentication", "network", "precondition");
//     for "initialize" the resulting status ("authenticated", "anonymous")
var SessionOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_operations_total",
		Help:      "Total number of session operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// SessionExpirationsTotal counts forced local logouts caused by the backend
// rejecting the token.
var SessionExpirationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expirations_total",
		Help:      "Total number of sessions cleared because the backend rejected the token.",
	},
)

// SessionAuthenticated is 1 while a user is signed in, 0 otherwise.
var SessionAuthenticated = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_authenticated",
		Help:      "Whether the client currently holds an authenticated session.",
	},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestDuration measures round trips to the REST backend.
// Labels:
//   - method: HTTP method
//   - endpoint: the endpoint template (e.g. "pets/{id}/")
//   - code: status class ("2xx", "4xx", "5xx") or "error" when no response arrived
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests sent to the REST backend.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"method", "endpoint", "code"},
)

// ── Route guard metrics ───────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Labels:
//   - guard: "session" or "role"
//   - decision: "allow", "loading", "login", "fallback"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by guard and decision.",
	},
	[]string{"guard", "decision"},
)
