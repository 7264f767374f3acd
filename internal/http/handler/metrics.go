package handler

import "github.com/prometheus/client_golang/prometheus"

// Исходы POST /api/contact
const (
	OutcomeStored      = "stored"
	OutcomeInvalid     = "invalid"
	OutcomeError       = "error"
	OutcomeRateLimited = "rate_limited"
)

// Metrics — счётчики заявок по исходу
type Metrics struct {
	submissions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact form submissions by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.submissions)
	return m
}

func (m *Metrics) Observe(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}
