package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findMetric(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m, labels) {
				return m
			}
		}
	}
	return nil
}

func matchLabels(m *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, lp := range m.GetLabel() {
		if v, ok := labels[lp.GetName()]; ok && v == lp.GetValue() {
			matched++
		}
	}
	return matched == len(labels)
}

func TestRecordOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordOperation("list_books", 10*time.Millisecond, nil)
	c.RecordOperation("list_books", 20*time.Millisecond, nil)
	c.RecordOperation("add_book", 5*time.Millisecond, errors.New("boom"))

	success := findMetric(t, reg, "librarydesk_store_operations_total", map[string]string{"operation": "list_books", "result": ResultSuccess})
	require.NotNil(t, success)
	assert.Equal(t, float64(2), success.GetCounter().GetValue())

	failure := findMetric(t, reg, "librarydesk_store_operations_total", map[string]string{"operation": "add_book", "result": ResultError})
	require.NotNil(t, failure)
	assert.Equal(t, float64(1), failure.GetCounter().GetValue())

	latency := findMetric(t, reg, "librarydesk_store_operation_duration_seconds", map[string]string{"operation": "list_books"})
	require.NotNil(t, latency)
	assert.Equal(t, uint64(2), latency.GetHistogram().GetSampleCount())
}

func TestRecordHTTPStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(http.MethodPost, http.StatusBadRequest)

	m := findMetric(t, reg, "librarydesk_http_responses_total", map[string]string{"method": "POST", "status_code": "400"})
	require.NotNil(t, m)
	assert.Equal(t, float64(1), m.GetCounter().GetValue())
}

func TestRecordOverdue(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordOverdue(3)
	c.RecordOverdue(1)

	m := findMetric(t, reg, "librarydesk_overdue_transactions", nil)
	require.NotNil(t, m)
	assert.Equal(t, float64(1), m.GetGauge().GetValue())
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordOperation("list_members", time.Millisecond, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Result().Body)
	assert.Contains(t, string(body), "librarydesk_store_operations_total")
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	r.RecordOperation("list_books", time.Millisecond, nil)
	r.RecordOverdue(2)
}
