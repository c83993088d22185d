// Package metrics métricas Prometheus del servicio. Todos los métodos aceptan
// receptor nil, de modo que los componentes funcionan sin métricas.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/painel-vendas/internal/application/ports"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/analyticsapi"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/cache"
)

var (
	_ ports.DashboardObserver = (*Metrics)(nil)
	_ analyticsapi.Observer   = (*Metrics)(nil)
	_ cache.Observer          = (*Metrics)(nil)
)

const namespace = "painel"

// Metrics registro propio (no el global) con los colectores del servicio.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	widgetDuration  *prometheus.HistogramVec
	slotAdvances    prometheus.Counter
	upstreamCalls   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	cacheResults    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New crea el registro y registra los colectores.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		widgetDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "widget_load_duration_seconds",
			Help:      "Duración de la carga de cada widget del dashboard.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"widget", "status"}),
		slotAdvances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sequencer_slot_advances_total",
			Help:      "Avances del contador de turnos del dashboard.",
		}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Llamadas a la API de analítica por endpoint y resultado.",
		}, []string{"endpoint", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latencia de la API de analítica por endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		cacheResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reference_cache_results_total",
			Help:      "Lecturas de la caché de referencia por catálogo y resultado.",
		}, []string{"kind", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por ruta, método y estado.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP por ruta.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	registry.MustRegister(
		m.widgetDuration, m.slotAdvances,
		m.upstreamCalls, m.upstreamLatency,
		m.cacheResults,
		m.httpRequests, m.httpDuration,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler http.Handler para /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry expone el registro (tests y colectores adicionales).
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveWidget registra la duración de un widget con su estado final.
func (m *Metrics) ObserveWidget(widgetID, status string, took time.Duration) {
	if m == nil {
		return
	}
	m.widgetDuration.WithLabelValues(widgetID, status).Observe(took.Seconds())
}

// SlotAdvanced cuenta un avance del Sequencer.
func (m *Metrics) SlotAdvanced(int) {
	if m == nil {
		return
	}
	m.slotAdvances.Inc()
}

// ObserveUpstream registra una llamada a la API de analítica.
func (m *Metrics) ObserveUpstream(endpoint, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.upstreamCalls.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamLatency.WithLabelValues(endpoint).Observe(took.Seconds())
}

// ObserveCache registra hit, miss o error de la caché de referencia.
func (m *Metrics) ObserveCache(kind, result string) {
	if m == nil {
		return
	}
	m.cacheResults.WithLabelValues(kind, result).Inc()
}

// ObserveHTTP registra una petición atendida.
func (m *Metrics) ObserveHTTP(route, method string, code int, took time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(took.Seconds())
}
