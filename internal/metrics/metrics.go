// Package metrics defines and registers all custom Prometheus metrics for the
// fieldgate service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fieldgate"

// ── Credential metrics ────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created", "duplicate_email", "weak_password", "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected" (deliberately coarse; the rejection cause is
//     never broken out so the metric cannot become an enumeration side channel)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordHashDuration measures a single bcrypt computation.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt password hash computations.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// IdentityResolutionsTotal counts per-request identity resolutions.
// Label:
//   - result: "authenticated" or "anonymous"
var IdentityResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_resolutions_total",
		Help:      "Total number of request identity resolutions, by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts authorization decisions on protected fields.
// Labels:
//   - field: the protected field name
//   - result: "allow" or "deny"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of field authorization decisions, by field and result.",
	},
	[]string{"field", "result"},
)
