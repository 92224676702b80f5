// Package metrics defines and registers all custom Prometheus metrics for the
// todo API. It is the single source of truth for metric names, labels, and
// help strings. Registration happens at import time via promauto; the router
// exposes the default registry on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todoapi"

// AuthFailuresTotal counts rejected requests on protected routes.
// Label:
//   - reason: "missing_token", "bad_signature", "wrong_purpose", "revoked"
//
// All four reasons surface to the client as the same 401; the split exists
// only here, for operators.
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of authentication failures, by internal reason.",
	},
	[]string{"reason"},
)

// TokenCacheTotal counts token-cache lookups.
// Label:
//   - result: "hit" (store lookup skipped) or "miss" (resolved from store)
var TokenCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_cache_total",
		Help:      "Total number of token cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// SessionsIssuedTotal counts tokens minted on register and login.
// Label:
//   - via: "register" or "login"
var SessionsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of auth tokens issued, by originating endpoint.",
	},
	[]string{"via"},
)

// TodosCreatedTotal counts successfully created todos.
var TodosCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_created_total",
		Help:      "Total number of todos created.",
	},
)

// TodosCompletedTotal counts todo transitions to the completed state.
var TodosCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_completed_total",
		Help:      "Total number of todos marked completed.",
	},
)

// TodosDeletedTotal counts successfully deleted todos.
var TodosDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_deleted_total",
		Help:      "Total number of todos deleted.",
	},
)
