package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the predict HTTP handler
	PredictLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scoring_predict_latency_seconds",
		Help:    "Latency of the credit risk prediction handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of prediction requests served
	PredictRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scoring_predict_requests_total",
		Help: "Total number of prediction requests",
	})
)

func Init() {
	prometheus.MustRegister(
		PredictLatency,
		PredictRequests,
	)
}
