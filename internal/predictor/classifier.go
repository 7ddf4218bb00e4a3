package predictor

import (
	"context"
	"errors"
)

// ErrModelUnavailable is returned by classifiers that have no trained
// model to consult. The predictor treats it like any other classifier
// failure and falls back to the heuristic.
var ErrModelUnavailable = errors.New("no trained model available")

// Classifier is the capability interface for a trained position
// classifier. Predict maps a feature vector to a probability distribution
// over finishing-position buckets (index 0 = P1).
//
// Implementations must be safe for concurrent use; the predictor invokes
// one per entrant across concurrent requests.
type Classifier interface {
	Predict(ctx context.Context, features []float64) ([]float64, error)
}

// NoModel is the null classifier, standing in for "no model loaded".
// Every call reports ErrModelUnavailable, which routes all predictions
// through the fallback heuristic.
type NoModel struct{}

// Predict always fails with ErrModelUnavailable.
func (NoModel) Predict(ctx context.Context, features []float64) ([]float64, error) {
	return nil, ErrModelUnavailable
}
