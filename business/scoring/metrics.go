package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_predictions_total",
			Help: "Count of served predictions by decision tier.",
		},
		[]string{"decision"},
	)

	ImputationFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_imputation_fallback_total",
			Help: "Count of features imputed from training-time statistics, by feature.",
		},
		[]string{"feature"},
	)

	ExplanationDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scoring_explanation_degraded_total",
			Help: "Count of predictions served without attributions after explanation failure or timeout.",
		},
	)
)

func init() {
	prometheus.MustRegister(PredictionsTotal, ImputationFallbackTotal, ExplanationDegradedTotal)
}
