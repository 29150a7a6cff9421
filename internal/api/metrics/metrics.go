// Package metrics defines and registers the custom Prometheus metrics of the
// CRM API. HTTP request metrics come from the echoprometheus middleware; the
// counters here track domain activity.
//
// All metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts authentication requests.
// Labels:
//   - action: "login", "register" or "logout"
//   - result: "success", "rejected" (service refused) or "invalid" (bad payload)
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication requests, by action and result.",
	},
	[]string{"action", "result"},
)

// RevokedTokensTotal counts tokens rejected because they were logged out.
var RevokedTokensTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revoked_tokens_rejected_total",
		Help:      "Total number of requests carrying a revoked token.",
	},
)

// ── Client metrics ────────────────────────────────────────────────────────────

// ClientMutationsTotal counts successful client writes.
// Label:
//   - operation: "create", "update", "comment", "action_status" or "delete"
var ClientMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_mutations_total",
		Help:      "Total number of successful client mutations, by operation.",
	},
	[]string{"operation"},
)

// ── Taxonomy metrics ──────────────────────────────────────────────────────────

// TaxonomyChangesTotal counts status type catalog writes.
// Labels:
//   - catalog: "client_status" or "action_status"
//   - operation: "create", "update" or "delete"
var TaxonomyChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "taxonomy_changes_total",
		Help:      "Total number of status type catalog changes, by catalog and operation.",
	},
	[]string{"catalog", "operation"},
)
