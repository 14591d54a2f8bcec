package search

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts provider requests by engine and outcome.
type Metrics struct {
	Requests *prometheus.CounterVec
}

// NewMetrics creates the provider counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "company_research_provider_requests_total",
				Help: "Search provider requests by engine and status.",
			},
			[]string{"engine", "status"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Requests)
	}
	return m
}

// IncRequest records one request. It is a no-op on a nil receiver.
func (m *Metrics) IncRequest(engine Engine, status string) {
	if m == nil || m.Requests == nil {
		return
	}
	m.Requests.WithLabelValues(string(engine), status).Inc()
}
