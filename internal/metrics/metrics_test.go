package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Registration(t *testing.T) {
	m := New()

	m.Registration(OutcomeCreated)
	m.Registration(OutcomeCreated)
	m.Registration(OutcomeCategoryMissing)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.registrationsTotal.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrationsTotal.WithLabelValues(OutcomeCategoryMissing)))
}

func TestMetrics_Requests(t *testing.T) {
	m := New()

	done := m.RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInflight))
	done(http.MethodGet, "/athletes", http.StatusOK)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInflight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/athletes", "200")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RateLimited()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "workout_rate_limited_requests_total 1")
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.Registration(OutcomeCreated)
		m.RateLimited()
		m.Notification("sent")
		m.RequestStarted()(http.MethodGet, "/", http.StatusOK)
	})
	assert.Nil(t, m.Registry())
}
