package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerMetrics contadores e histogramas expuestos en /metrics.
type ServerMetrics struct {
	Requests     *prometheus.CounterVec
	LatencyMS    *prometheus.HistogramVec
	SalesCreated prometheus.Counter
	AlertsRaised *prometheus.CounterVec

	handler http.Handler
}

// NewServerMetrics registra las métricas del servicio en un registry propio.
func NewServerMetrics(service string) *ServerMetrics {
	reg := prometheus.NewRegistry()

	m := &ServerMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total de requests HTTP por ruta, método y código.",
			ConstLabels: prometheus.Labels{"service": service},
		}, []string{"route", "method", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_ms",
			Help:        "Latencia de requests HTTP en milisegundos.",
			ConstLabels: prometheus.Labels{"service": service},
			Buckets:     []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"route", "method"}),
		SalesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "sales_created_total",
			Help:        "Ventas registradas con éxito (directas y por fórmula médica).",
			ConstLabels: prometheus.Labels{"service": service},
		}),
		AlertsRaised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "alerts_raised_total",
			Help:        "Alertas generadas por tipo (STOCK, EXPIRY).",
			ConstLabels: prometheus.Labels{"service": service},
		}, []string{"type"}),
	}

	reg.MustRegister(m.Requests, m.LatencyMS, m.SalesCreated, m.AlertsRaised)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// Handler devuelve el http.Handler de promhttp para montar en /metrics.
func (m *ServerMetrics) Handler() http.Handler { return m.handler }
