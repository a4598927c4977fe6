// Package metrics defines the custom Prometheus metrics of the visitation
// API. HTTP request metrics come from the echoprometheus middleware; the
// counters here track call lifecycle outcomes.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

const namespace = "visitation"

// ── Call metrics ──────────────────────────────────────────────────────────────

// CallsCreatedTotal counts scheduled calls.
// Label:
//   - recording: "true" when recording was effectively enabled
var CallsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calls_created_total",
		Help:      "Total number of video calls scheduled.",
	},
	[]string{"recording"},
)

// CallJoinsTotal counts successful joins by the joining user's role.
var CallJoinsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "call_joins_total",
		Help:      "Total number of successful call joins, by role.",
	},
	[]string{"role"},
)

// TokensIssuedTotal counts provider tokens handed out.
// Label:
//   - operation: "create", "join" or "token"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of video provider tokens issued.",
	},
	[]string{"operation"},
)

// CallErrorsTotal counts failed call operations.
// Labels:
//   - operation: "create", "join", "token" or "list"
//   - reason: see Reason
var CallErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "call_errors_total",
		Help:      "Total number of failed call operations.",
	},
	[]string{"operation", "reason"},
)

// ── Registration metrics ──────────────────────────────────────────────────────

var RegistrationsStartedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_started_total",
		Help:      "Total number of sign-up wizards started, by user type.",
	},
	[]string{"user_type"},
)

// Reason turns a call error into a low-cardinality label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidParticipants):
		return "invalid_participants"
	case errors.Is(err, domain.ErrCallNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidCallState):
		return "invalid_state"
	default:
		return "internal"
	}
}
