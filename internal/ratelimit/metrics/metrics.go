package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeAllowed  = "allowed"
	OutcomeLimited  = "limited"
	OutcomeError    = "error"
	OutcomeFallback = "fallback"
)

type Metrics struct {
	Decisions *prometheus.CounterVec
	Degraded  prometheus.Gauge
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "travelpoints_ratelimit_decisions_total",
			Help: "Rate limit checks by scope and outcome",
		}, []string{"scope", "outcome"}),
		Degraded: f.NewGauge(prometheus.GaugeOpts{
			Name: "travelpoints_ratelimit_degraded",
			Help: "1 while the shared limiter is bypassed for the in-process fallback",
		}),
	}
}

func (m *Metrics) ObserveDecision(scope, outcome string) {
	if m != nil {
		m.Decisions.WithLabelValues(scope, outcome).Inc()
	}
}

func (m *Metrics) SetDegraded(degraded bool) {
	if m == nil {
		return
	}
	if degraded {
		m.Degraded.Set(1)
		return
	}
	m.Degraded.Set(0)
}
