// Package metrics defines and registers the custom Prometheus metrics of the
// clinic booking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinic"

// Notification results used as the "result" label of NotificationsTotal.
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationDropped = "dropped"
	NotificationSkipped = "skipped"
)

// ── Appointment metrics ───────────────────────────────────────────────────────

// AppointmentsCreatedTotal counts appointments persisted successfully.
var AppointmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_created_total",
		Help:      "Total number of appointments stored.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts admin notifications by outcome.
// Label:
//   - result: "sent", "failed", "dropped" (queue full or closed) or "skipped" (mail not configured)
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of admin notifications, labelled by result.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks the number of notifications waiting for a worker.
var NotificationQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in the dispatcher queue.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts admin login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of admin login attempts, labelled by result.",
	},
	[]string{"result"},
)
