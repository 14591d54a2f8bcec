// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	ResearchRequests *prometheus.CounterVec
}

// NewMetrics creates the web counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ResearchRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "company_research_requests_total",
				Help: "Research requests served by the web UI and API, by outcome.",
			},
			[]string{"status"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.ResearchRequests)
	}
	return m
}

func (m *Metrics) IncResearch(status string) {
	if m == nil || m.ResearchRequests == nil {
		return
	}

	m.ResearchRequests.WithLabelValues(status).Inc()
}
