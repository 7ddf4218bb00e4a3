package ml

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	classifierPredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "f1_predictor_classifier_predictions_total",
		Help: "Total classifier predictions served, by source and cache status",
	}, []string{"source", "cached"})

	classifierErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "f1_predictor_classifier_errors_total",
		Help: "Total classifier service errors by kind",
	}, []string{"kind"})

	classifierLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "f1_predictor_classifier_latency_seconds",
		Help:    "Classifier service request latency",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "f1_predictor_classifier_cache_hits_total",
		Help: "Total classifier cache hits",
	})

	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "f1_predictor_classifier_cache_misses_total",
		Help: "Total classifier cache misses",
	})
)
