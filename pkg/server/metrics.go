package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// serverMetrics holds the inspector's own series. A nil *serverMetrics
// records nothing.
type serverMetrics struct {
	requests *prometheus.CounterVec
	clients  prometheus.Gauge
}

func newServerMetrics(reg prometheus.Registerer, namespace string) *serverMetrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)
	return &serverMetrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "server",
				Name:      "requests_total",
				Help:      "HTTP requests served, by route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		clients: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "server",
				Name:      "websocket_clients",
				Help:      "Connected change stream clients.",
			},
		),
	}
}

func (m *serverMetrics) observeRequest(method, route, code string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, code).Inc()
}

func (m *serverMetrics) setClients(n int) {
	if m == nil {
		return
	}
	m.clients.Set(float64(n))
}
