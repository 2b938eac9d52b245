package application

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the RED metrics recorded around each use case invocation.
type Metrics struct {
	Requests  *prometheus.CounterVec
	Durations *prometheus.HistogramVec
}

// NewMetrics registers the use-case metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "usecase_requests_total",
				Help: "Total number of use case invocations.",
			},
			[]string{"use_case", "outcome"},
		),
		Durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "usecase_duration_seconds",
				Help:    "Duration of use case execution in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"use_case"},
		),
	}
	reg.MustRegister(m.Requests, m.Durations)
	return m
}

func (m *Metrics) observe(useCase, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(useCase, outcome).Inc()
	m.Durations.WithLabelValues(useCase).Observe(seconds)
}
