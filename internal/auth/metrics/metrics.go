package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	UsersCreated prometheus.Counter
	Logins       *prometheus.CounterVec
	Logouts      prometheus.Counter
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UsersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "travelpoints_users_created_total",
			Help: "Total number of registered users",
		}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "travelpoints_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		Logouts: f.NewCounter(prometheus.CounterOpts{
			Name: "travelpoints_logouts_total",
			Help: "Access tokens revoked by logout",
		}),
	}
}

func (m *Metrics) IncrementUsersCreated() {
	if m != nil {
		m.UsersCreated.Inc()
	}
}

func (m *Metrics) IncrementLogin(outcome string) {
	if m != nil {
		m.Logins.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementLogout() {
	if m != nil {
		m.Logouts.Inc()
	}
}
