package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	racesIngestedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "f1_predictor_races_ingested_total",
		Help: "Total race weekends persisted by the ingestion pipeline",
	})

	recordsIngestedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "f1_predictor_records_ingested_total",
		Help: "Total driver records persisted by the ingestion pipeline",
	})
)
