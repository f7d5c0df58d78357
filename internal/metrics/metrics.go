package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReconMetrics records reconciler activity. A nil *ReconMetrics is a valid no-op.
type ReconMetrics struct {
	generations   *prometheus.CounterVec
	edits         *prometheus.CounterVec
	syncWarnings  *prometheus.CounterVec
	auditFailures prometheus.Counter
	httpDuration  *prometheus.HistogramVec
}

// NewReconMetrics registers the reconciler metrics on the provided registerer.
func NewReconMetrics(reg prometheus.Registerer) *ReconMetrics {
	if reg == nil {
		return &ReconMetrics{}
	}
	generations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recon_line_generations_total",
		Help: "Line generation attempts by reference kind and outcome.",
	}, []string{"kind", "outcome"})
	edits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recon_entry_edits_total",
		Help: "Ledger edit attempts by outcome.",
	}, []string{"outcome"})
	syncWarnings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recon_sync_warnings_total",
		Help: "Source document writes that failed after a ledger edit.",
	}, []string{"kind", "target"})
	auditFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recon_audit_failures_total",
		Help: "Audit records that could not be appended.",
	})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recon_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(generations, edits, syncWarnings, auditFailures, httpDuration)
	return &ReconMetrics{
		generations:   generations,
		edits:         edits,
		syncWarnings:  syncWarnings,
		auditFailures: auditFailures,
		httpDuration:  httpDuration,
	}
}

// IncGeneration counts a GenerateLines call.
func (m *ReconMetrics) IncGeneration(kind, outcome string) {
	if m == nil || m.generations == nil {
		return
	}
	m.generations.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Inc()
}

// IncEdit counts a SaveEdit call.
func (m *ReconMetrics) IncEdit(outcome string) {
	if m == nil || m.edits == nil {
		return
	}
	m.edits.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncSyncWarning counts a failed source document write.
func (m *ReconMetrics) IncSyncWarning(kind, target string) {
	if m == nil || m.syncWarnings == nil {
		return
	}
	m.syncWarnings.WithLabelValues(normalizeLabel(kind), normalizeLabel(target)).Inc()
}

// IncAuditFailure counts an audit record that could not be appended.
func (m *ReconMetrics) IncAuditFailure() {
	if m == nil || m.auditFailures == nil {
		return
	}
	m.auditFailures.Inc()
}

// ObserveHTTP records the latency of a handled request.
func (m *ReconMetrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil || m.httpDuration == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, normalizeLabel(route), status).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
