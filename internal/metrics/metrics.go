// Package metrics defines and registers all custom Prometheus metrics for the
// portal gateway. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Proxy metrics ─────────────────────────────────────────────────────────────

// ProxyRequestsTotal counts requests relayed to the backend.
// Labels:
//   - route: the proxy route name (e.g. "jobs", "tenant_users")
//   - status: the status returned to the client, or "transport_error"
var ProxyRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proxy_requests_total",
		Help:      "Total number of requests relayed to the backend API.",
	},
	[]string{"route", "status"},
)

// ProxyRequestDuration measures the backend round trip of a relayed request.
var ProxyRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "proxy_request_duration_seconds",
		Help:      "Duration of backend round trips made by proxy routes.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)

// ── Access metrics ────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Labels:
//   - section: the guarded section (e.g. "admin")
//   - outcome: "render", "redirect" or "pending"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by section and outcome.",
	},
	[]string{"section", "outcome"},
)

// ── Socket metrics ────────────────────────────────────────────────────────────

// SocketConnectionsActive tracks live upstream socket connections.
var SocketConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "socket_connections_active",
		Help:      "Current number of live upstream socket connections.",
	},
)

// SocketConnectAttemptsTotal counts handshake attempts.
// Label:
//   - result: "ok" or "error"
var SocketConnectAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "socket_connect_attempts_total",
		Help:      "Total number of upstream socket handshake attempts, by result.",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDispatchedTotal counts notifications fanned out to clients.
// Label:
//   - type: info, success, warning or error
var NotificationsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dispatched_total",
		Help:      "Total number of notifications dispatched, by type.",
	},
	[]string{"type"},
)

// NotificationsDiscardedTotal counts payloads that arrived for a client
// whose session had already ended.
var NotificationsDiscardedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_discarded_total",
		Help:      "Total number of notifications discarded because the session ended.",
	},
)

// ToastsEmittedTotal counts toasts handed to live subscribers.
var ToastsEmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "toasts_emitted_total",
		Help:      "Total number of toasts delivered to live stream subscribers.",
	},
)

// DeliveryQueueDepth tracks pending socket payloads per delivery worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var DeliveryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "delivery_queue_depth",
		Help:      "Current number of socket payloads pending in each delivery worker channel.",
	},
	[]string{"worker_id"},
)
