package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FetchCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockadvisor_fetch_calls_total",
			Help: "Total number of market-data provider calls",
		},
		[]string{"granularity", "status"}, // status: success|empty|error
	)

	Analyses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockadvisor_analyses_total",
			Help: "Total number of per-symbol analyses by outcome",
		},
		[]string{"outcome"}, // outcome: buy|sell|hold|download_failed|no_data|insufficient|no_bullish|malformed|error
	)

	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stockadvisor_analysis_duration_seconds",
			Help:    "Per-symbol analysis duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	WebhookRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockadvisor_webhook_requests_total",
			Help: "Total number of inbound webhook requests",
		},
		[]string{"status"}, // status: ok|invalid_signature|bad_request
	)

	KeepAlivePings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockadvisor_keepalive_pings_total",
			Help: "Total number of keep-alive pings",
		},
		[]string{"status"}, // status: success|failed
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(FetchCalls)
	prometheus.MustRegister(Analyses)
	prometheus.MustRegister(AnalysisDuration)
	prometheus.MustRegister(WebhookRequests)
	prometheus.MustRegister(KeepAlivePings)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
