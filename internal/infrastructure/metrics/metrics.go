// Package metrics expone las métricas Prometheus del servicio sobre un registro propio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ordering"

// Metrics agrupa los collectors del servicio. Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	Registry *prometheus.Registry

	// Peticiones HTTP por método, ruta y status
	HTTPRequests *prometheus.CounterVec

	// Latencia HTTP por método y ruta
	HTTPDuration *prometheus.HistogramVec

	// Transiciones de pedido completadas por estado destino
	OrderTransitions *prometheus.CounterVec

	// Rechazos de autorización por acción y motivo (unauthenticated | forbidden)
	AuthorizationDenials *prometheus.CounterVec
}

// New crea un registro nuevo con todos los collectors del servicio y los de runtime de Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),

		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms a ~4s
		}, []string{"method", "route"}),

		OrderTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "transitions_total",
			Help:      "Transiciones de pedido completadas por estado destino.",
		}, []string{"to"}),

		AuthorizationDenials: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "authz",
			Name:      "denials_total",
			Help:      "Peticiones rechazadas por el motor de autorización.",
		}, []string{"action", "reason"}),
	}
}

// ObserveRequest registra una petición HTTP terminada.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncOrderTransition registra una transición exitosa hacia el estado indicado.
func (m *Metrics) IncOrderTransition(to string) {
	if m != nil {
		m.OrderTransitions.WithLabelValues(to).Inc()
	}
}

// IncAuthorizationDenial registra un rechazo de autorización.
func (m *Metrics) IncAuthorizationDenial(action, reason string) {
	if m != nil {
		m.AuthorizationDenials.WithLabelValues(action, reason).Inc()
	}
}

// Handler devuelve el handler HTTP de exposición (/metrics) para este registro.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
