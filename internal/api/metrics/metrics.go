// Package metrics defines and registers all custom Prometheus metrics for the
// rzdmap API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry when the package
// is initialised.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rzdmap"

// ── Identity metrics ──────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login requests.
// Label:
//   - result: "success", "rejected" (bad request or credentials) or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login requests, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration requests.
// Label:
//   - result: "success", "rejected" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration requests, by result.",
	},
	[]string{"result"},
)

// ── Sign-in audit metrics ─────────────────────────────────────────────────────

// AuditEventsProcessedTotal counts sign-in events written to the audit trail.
// Label:
//   - outcome: "success", "bad_password" or "locked_out"
var AuditEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_processed_total",
		Help:      "Total number of sign-in events persisted.",
	},
	[]string{"outcome"},
)

// AuditEventsErrorsTotal counts sign-in events that could not be persisted.
var AuditEventsErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_errors_total",
		Help:      "Total number of sign-in events that failed to persist.",
	},
)

// AuditEventsDroppedTotal counts events discarded because a worker buffer was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of sign-in events dropped on a full queue.",
	},
)

// AuditQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of sign-in events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditProcessingDuration measures how long a single event takes to persist.
var AuditProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_processing_duration_seconds",
		Help:      "Duration of sign-in event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Map line metrics ──────────────────────────────────────────────────────────

// MapLinesCreatedTotal counts newly created map lines.
var MapLinesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "map_lines_created_total",
		Help:      "Total number of map lines created.",
	},
)
