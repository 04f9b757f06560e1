// Package metrics defines and registers the Prometheus metrics for the course
// platform. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cursos"

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts accounts created through self-service registration.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created via self-service registration.",
	},
)

// EnrollmentsTotal counts enroll requests.
// Label:
//   - result: "enrolled" (new row) or "already_enrolled" (idempotent repeat)
var EnrollmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_total",
		Help:      "Total number of enroll requests, labelled by result.",
	},
	[]string{"result"},
)

// ResetTokensIssuedTotal counts password reset tokens issued.
var ResetTokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_tokens_issued_total",
		Help:      "Total number of password reset tokens issued.",
	},
)

// ResetRedemptionsTotal counts reset token redemption attempts.
// Label:
//   - result: "success" or "invalid" (unknown or expired token)
var ResetRedemptionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_redemptions_total",
		Help:      "Total number of reset token redemption attempts, labelled by result.",
	},
	[]string{"result"},
)
