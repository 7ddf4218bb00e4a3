// Package logger provides prediction-specific logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// PredictionLogger provides dedicated logging for prediction operations.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: baseLogger.WithField("component", "prediction"),
	}
}

// LogPredictionRequest logs one served prediction request.
func (pl *PredictionLogger) LogPredictionRequest(backend string, fieldSize int, accuracy int, duration time.Duration) {
	pl.WithFields(logrus.Fields{
		"backend":    backend,
		"field_size": fieldSize,
		"accuracy":   accuracy,
		"latency_ms": float64(duration.Microseconds()) / 1000,
	}).Info("Prediction request completed")
}

// LogClassifierFallback logs a fall back from the classifier service to the
// heuristic predictor.
func (pl *PredictionLogger) LogClassifierFallback(driverCode string, reason string) {
	pl.WithFields(logrus.Fields{
		"driver": driverCode,
		"reason": reason,
	}).Warn("Classifier unavailable, using heuristic fallback")
}

// LogIngestionRun logs the summary of one ingestion run.
func (pl *PredictionLogger) LogIngestionRun(source string, races, records, errors int, duration time.Duration) {
	pl.WithFields(logrus.Fields{
		"source":   source,
		"races":    races,
		"records":  records,
		"errors":   errors,
		"duration": duration.String(),
	}).Info("Ingestion run completed")
}
