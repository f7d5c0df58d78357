package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReconMetrics(reg)

	m.IncGeneration("invoice", "created")
	m.IncGeneration("invoice", "created")
	m.IncEdit("committed")
	m.IncSyncWarning("customer_payment", "invoice")
	m.IncAuditFailure()
	m.ObserveHTTP("PUT", "/api/v1/companies/:company_id/journal-entries/:entry_id", "200", 15*time.Millisecond)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := counterValue(mfs, "recon_line_generations_total", map[string]string{"kind": "invoice", "outcome": "created"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)

	got, err = counterValue(mfs, "recon_entry_edits_total", map[string]string{"outcome": "committed"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = counterValue(mfs, "recon_sync_warnings_total", map[string]string{"kind": "customer_payment", "target": "invoice"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = counterValue(mfs, "recon_audit_failures_total", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	mf := findMetricFamily(mfs, "recon_http_request_duration_seconds")
	require.NotNil(t, mf)
	require.Len(t, mf.GetMetric(), 1)
	assert.Equal(t, uint64(1), mf.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestReconMetricsEmptyLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReconMetrics(reg)
	m.IncGeneration("", "noop")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	got, err := counterValue(mfs, "recon_line_generations_total", map[string]string{"kind": "unknown", "outcome": "noop"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestNilReconMetricsIsNoop(t *testing.T) {
	var m *ReconMetrics
	assert.NotPanics(t, func() {
		m.IncGeneration("bill", "created")
		m.IncEdit("rejected")
		m.IncSyncWarning("bill", "bill")
		m.IncAuditFailure()
		m.ObserveHTTP("GET", "/health", "200", time.Millisecond)
	})
	assert.NotPanics(t, func() { NewReconMetrics(nil).IncAuditFailure() })
}

func counterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok {
			if v != pair.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(want)
}
