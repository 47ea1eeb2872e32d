package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskibarqy/proclubs-fantasy/internal/platform/resilience"
)

const metricsNamespace = "proclubs_fantasy"

// Metrics holds the service collectors. Each instance owns its registry so tests can
// build as many as they need.
type Metrics struct {
	registry           *prometheus.Registry
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	lineupOutcomes     *prometheus.CounterVec
	circuitState       *prometheus.GaugeVec
	circuitTransitions *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		lineupOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "lineup_evaluations_total",
			Help:      "Lineup evaluations by outcome.",
		}, []string{"outcome"}),
		circuitState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state: 0 closed, 1 half-open, 2 open.",
		}, []string{"breaker"}),
		circuitTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "circuit_breaker_transitions_total",
			Help:      "Circuit breaker state transitions by target state.",
		}, []string{"breaker", "state"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Lineup evaluation outcomes.
const (
	LineupOutcomeValid      = "valid"
	LineupOutcomeIncomplete = "incomplete"
	LineupOutcomeOverBudget = "over_budget"
)

func (m *Metrics) ObserveLineupEvaluation(outcome string) {
	if m == nil {
		return
	}
	m.lineupOutcomes.WithLabelValues(outcome).Inc()
}

// TrackCircuitBreaker exports the breaker's state and counts its transitions.
func (m *Metrics) TrackCircuitBreaker(breaker *resilience.CircuitBreaker) {
	if m == nil || breaker == nil {
		return
	}

	name := breaker.Name()
	m.circuitState.WithLabelValues(name).Set(circuitStateValue(breaker.State()))
	breaker.OnStateChange(func(_ string, _, to resilience.CircuitState) {
		m.circuitState.WithLabelValues(name).Set(circuitStateValue(to))
		m.circuitTransitions.WithLabelValues(name, string(to)).Inc()
	})
}

func circuitStateValue(state resilience.CircuitState) float64 {
	switch state {
	case resilience.CircuitStateHalfOpen:
		return 1
	case resilience.CircuitStateOpen:
		return 2
	default:
		return 0
	}
}
