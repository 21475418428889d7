// Package metrics defines the Prometheus collectors of both binaries.
// All methods are safe to call on a nil receiver so components can run without metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "solar"

// Server holds the backoffice API collectors.
type Server struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	txRetries     prometheus.Counter
	txOutcomes    *prometheus.CounterVec
	auditFailures *prometheus.CounterVec
	syncInbox     *prometheus.CounterVec
}

// NewServer registers the API collectors on reg.
func NewServer(reg prometheus.Registerer) *Server {
	f := promauto.With(reg)
	return &Server{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		txRetries: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "tx_retries_total",
			Help:      "Serializable transactions retried after a serialization failure or deadlock.",
		}),
		txOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "tx_total",
			Help:      "Ledger transactions by outcome.",
		}, []string{"outcome"}),
		auditFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "write_failures_total",
			Help:      "Audit records that could not be written, by handling mode.",
		}, []string{"mode"}),
		syncInbox: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "inbox_total",
			Help:      "Offline mutations received, by entity and result.",
		}, []string{"entity", "result"}),
	}
}

func (m *Server) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *Server) TxRetried() {
	if m == nil {
		return
	}
	m.txRetries.Inc()
}

func (m *Server) TxFinished(outcome string) {
	if m == nil {
		return
	}
	m.txOutcomes.WithLabelValues(outcome).Inc()
}

// AuditFailed counts a failed audit write; mode is "escalated" or "suppressed".
func (m *Server) AuditFailed(mode string) {
	if m == nil {
		return
	}
	m.auditFailures.WithLabelValues(mode).Inc()
}

func (m *Server) SyncReceived(entity, result string) {
	if m == nil {
		return
	}
	m.syncInbox.WithLabelValues(entity, result).Inc()
}

// Sync holds the field agent collectors.
type Sync struct {
	queueDepth *prometheus.GaugeVec
	attempts   *prometheus.CounterVec
	evictions  *prometheus.CounterVec
	passes     *prometheus.CounterVec
}

// NewSync registers the offline queue collectors on reg.
func NewSync(reg prometheus.Registerer) *Sync {
	f := promauto.With(reg)
	return &Sync{
		queueDepth: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "pending_items",
			Help:      "Pending offline mutations by entity.",
		}, []string{"entity"}),
		attempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "sync_attempts_total",
			Help:      "Delivery attempts by entity and result.",
		}, []string{"entity", "result"}),
		evictions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "evictions_total",
			Help:      "Items dropped after exhausting their retries.",
		}, []string{"entity"}),
		passes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "drain_passes_total",
			Help:      "Drain passes by status.",
		}, []string{"status"}),
	}
}

// SetDepth replaces the per-entity pending gauges.
func (m *Sync) SetDepth(byEntity map[string]int) {
	if m == nil {
		return
	}
	m.queueDepth.Reset()
	for entity, n := range byEntity {
		m.queueDepth.WithLabelValues(entity).Set(float64(n))
	}
}

func (m *Sync) Attempt(entity, result string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(entity, result).Inc()
}

func (m *Sync) Evicted(entity string) {
	if m == nil {
		return
	}
	m.evictions.WithLabelValues(entity).Inc()
}

func (m *Sync) Pass(status string) {
	if m == nil {
		return
	}
	m.passes.WithLabelValues(status).Inc()
}
