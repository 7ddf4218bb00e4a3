// Package predictor provides Prometheus metrics for prediction backends.
package predictor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backend labels.
const (
	backendPerturbation = "perturbation"
	backendModel        = "model"
)

var (
	// predictionsTotal tracks completed prediction runs per backend.
	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictor_runs_total",
			Help: "Total number of prediction runs completed",
		},
		[]string{"backend"},
	)

	// predictionDuration tracks prediction run latency per backend.
	predictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "predictor_run_duration_seconds",
			Help:    "Prediction run duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	// fallbacksTotal tracks entrants scored by the fallback heuristic.
	fallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "predictor_fallback_predictions_total",
			Help: "Total number of entrants scored by the fallback heuristic",
		},
	)
)
