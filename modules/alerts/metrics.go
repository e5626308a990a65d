package alerts

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the relay's operational counters. A Metrics built with a
// nil registerer collects nothing and registers nowhere, which keeps tests
// free of global registry state.
type Metrics struct {
	published   *prometheus.CounterVec
	subscribers *prometheus.GaugeVec
}

// NewMetrics creates and, when reg is non-nil, registers the collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		published: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_alerts_published_total",
			Help: "Alerts accepted and published, per group.",
		}, []string{"group"}),
		subscribers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "relay_alert_subscribers",
			Help: "Currently connected stream subscribers, per group.",
		}, []string{"group"}),
	}
}

func (m *Metrics) alertPublished(group string) {
	if m == nil {
		return
	}
	m.published.WithLabelValues(group).Inc()
}

func (m *Metrics) subscriberConnected(group string) {
	if m == nil {
		return
	}
	m.subscribers.WithLabelValues(group).Inc()
}

func (m *Metrics) subscriberDisconnected(group string) {
	if m == nil {
		return
	}
	m.subscribers.WithLabelValues(group).Dec()
}
