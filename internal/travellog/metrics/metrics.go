package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	KindCountry = "country"
	KindCity    = "city"
)

type Metrics struct {
	ScoresComputed prometheus.Counter
	ScoreDuration  prometheus.Histogram
	VisitsLogged   *prometheus.CounterVec
	VisitsRemoved  *prometheus.CounterVec
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ScoresComputed: f.NewCounter(prometheus.CounterOpts{
			Name: "travelpoints_scores_computed_total",
			Help: "Total number of travel scores computed",
		}),
		ScoreDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "travelpoints_score_duration_seconds",
			Help:    "Time to load a travel log and score it",
			Buckets: prometheus.DefBuckets,
		}),
		VisitsLogged: f.NewCounterVec(prometheus.CounterOpts{
			Name: "travelpoints_visits_logged_total",
			Help: "Visits added to travel logs by kind (country, city)",
		}, []string{"kind"}),
		VisitsRemoved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "travelpoints_visits_removed_total",
			Help: "Visits removed from travel logs by kind (country, city)",
		}, []string{"kind"}),
	}
}

func (m *Metrics) ObserveScore(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ScoresComputed.Inc()
	m.ScoreDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) IncrementVisitLogged(kind string) {
	if m != nil {
		m.VisitsLogged.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncrementVisitRemoved(kind string) {
	if m != nil {
		m.VisitsRemoved.WithLabelValues(kind).Inc()
	}
}
