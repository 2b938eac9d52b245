// Package httpclient contains the HTTP adapters for the stock ledger and
// payment processor collaborators. Adapters never retry: retry policy is
// the orchestrator's prerogative and the placement flow performs none.
package httpclient

import "github.com/prometheus/client_golang/prometheus"

// Metrics account for every outbound collaborator call.
type Metrics struct {
	Requests  *prometheus.CounterVec
	Durations *prometheus.HistogramVec
}

// NewMetrics registers the external-call metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_requests_total",
				Help: "Total number of outbound collaborator requests.",
			},
			[]string{"peer", "endpoint", "outcome"},
		),
		Durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_request_duration_seconds",
				Help:    "Duration of outbound collaborator requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"peer", "endpoint"},
		),
	}
	reg.MustRegister(m.Requests, m.Durations)
	return m
}

func (m *Metrics) observe(peer, endpoint, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(peer, endpoint, outcome).Inc()
	m.Durations.WithLabelValues(peer, endpoint).Observe(seconds)
}
