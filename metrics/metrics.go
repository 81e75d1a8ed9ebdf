package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SubmissionsAccepted prometheus.Counter
	SubmissionsRejected *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		SubmissionsAccepted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "survey_submissions_accepted_total",
			Help: "Total number of submissions validated and appended to the log",
		}),
		SubmissionsRejected: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "survey_submissions_rejected_total",
			Help: "Total number of rejected submissions, by reason",
		}, []string{"reason"}),
	}
}

func (m *Metrics) Accepted() {
	m.SubmissionsAccepted.Inc()
}

func (m *Metrics) Rejected(reason string) {
	m.SubmissionsRejected.WithLabelValues(reason).Inc()
}
