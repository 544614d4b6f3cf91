package revocation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics times revocation lookups on the request path.
type Metrics struct {
	LookupDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		LookupDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "travelpoints_token_revocation_lookup_duration_ms",
			Help:    "Latency of token revocation checks in milliseconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		}),
	}
}

func (m *Metrics) observe(start time.Time) {
	if m == nil {
		return
	}
	m.LookupDuration.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
}
