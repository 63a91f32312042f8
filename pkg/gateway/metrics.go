package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the request counter.
const (
	resultOK            = "ok"
	resultFallback      = "fallback"
	resultInvalidInput  = "invalid_input"
	resultConfigError   = "config_error"
	resultUpstreamError = "upstream_error"
	resultEmptyResponse = "empty_response"
	resultError         = "error"
)

// Metrics are the gateway's Prometheus collectors.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowchart",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total number of analysis requests, labeled by result.",
		}, []string{"result"}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flowchart",
			Subsystem: "gateway",
			Name:      "analysis_duration_seconds",
			Help:      "Time spent answering an analysis request, including the upstream call.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"result"}),
	}
	reg.MustRegister(m.RequestsTotal, m.AnalysisDuration)
	return m
}
