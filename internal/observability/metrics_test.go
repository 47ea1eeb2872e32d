package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/proclubs-fantasy/internal/platform/resilience"
)

func TestMetrics_ObserveHTTPRequest(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveHTTPRequest("GET /v1/formations", http.MethodGet, http.StatusOK, 12*time.Millisecond)
	m.ObserveHTTPRequest("GET /v1/formations", http.MethodGet, http.StatusOK, 8*time.Millisecond)
	m.ObserveHTTPRequest("", http.MethodGet, http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET /v1/formations", http.MethodGet, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("unmatched", http.MethodGet, "404")))
}

func TestMetrics_LineupOutcomes(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveLineupEvaluation(LineupOutcomeValid)
	m.ObserveLineupEvaluation(LineupOutcomeOverBudget)
	m.ObserveLineupEvaluation(LineupOutcomeValid)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.lineupOutcomes.WithLabelValues(LineupOutcomeValid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lineupOutcomes.WithLabelValues(LineupOutcomeOverBudget)))
}

func TestMetrics_TrackCircuitBreaker(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	breaker := resilience.NewCircuitBreakerFromConfig("leaderboard-redis", resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})
	m.TrackCircuitBreaker(breaker)

	gauge := m.circuitState.WithLabelValues("leaderboard-redis")
	require.Equal(t, 0.0, testutil.ToFloat64(gauge))

	breaker.RecordFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(gauge))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.circuitTransitions.WithLabelValues("leaderboard-redis", string(resilience.CircuitStateOpen))))
}

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveLineupEvaluation(LineupOutcomeIncomplete)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `proclubs_fantasy_lineup_evaluations_total{outcome="incomplete"} 1`), body)
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET /healthz", http.MethodGet, http.StatusOK, time.Millisecond)
		m.ObserveLineupEvaluation(LineupOutcomeValid)
		m.TrackCircuitBreaker(nil)
	})
}
