package predictor

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

// stubClassifier returns a fixed distribution or error for every call.
type stubClassifier struct {
	probs []float64
	err   error
	calls int
}

func (s *stubClassifier) Predict(ctx context.Context, features []float64) ([]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.probs, nil
}

func seededPredictor(classifier Classifier, seed int64) *ModelPredictor {
	return NewModelPredictor(testGrid(), DefaultRatings(), classifier, nil).
		WithNoise(rand.New(rand.NewSource(seed)))
}

func TestPredictOneUsesArgMax(t *testing.T) {
	classifier := &stubClassifier{probs: []float64{0.1, 0.05, 0.6, 0.25}}
	p := seededPredictor(classifier, 1)

	features := BuildFeatureVector(5, "VER", DefaultRatings(), Conditions{Dry: true, TrackTempC: 24.5})
	pos, conf := p.PredictOne(context.Background(), 5, "VER", features, 20)

	assert.Equal(t, 3, pos, "arg-max index + 1")
	assert.InDelta(t, 0.6, conf, 1e-9, "confidence is the max probability")
}

func TestFallbackLogsClassifierOutage(t *testing.T) {
	logger := logrus.New()
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	classifier := &stubClassifier{err: errors.New("inference exploded")}
	p := NewModelPredictor(testGrid(), DefaultRatings(), classifier, logger).
		WithNoise(rand.New(rand.NewSource(3)))

	p.PredictOne(context.Background(), 4, "VER", nil, 20)

	assert.Contains(t, buf.String(), "heuristic fallback")
	assert.Contains(t, buf.String(), `"driver":"VER"`)
	assert.Contains(t, buf.String(), "inference exploded")
}

func TestPredictOneFallsBackOnClassifierError(t *testing.T) {
	classifier := &stubClassifier{err: errors.New("inference exploded")}
	p := seededPredictor(classifier, 2)

	pos, conf := p.PredictOne(context.Background(), 8, "HUL", nil, 20)

	require.GreaterOrEqual(t, pos, 1)
	require.LessOrEqual(t, pos, 20)
	require.GreaterOrEqual(t, conf, 0.4)
	require.LessOrEqual(t, conf, 0.9)
	assert.Equal(t, 1, classifier.calls)
}

func TestPredictOneNilClassifierBecomesNoModel(t *testing.T) {
	p := seededPredictor(nil, 3)

	pos, conf := p.PredictOne(context.Background(), 1, "VER", nil, 20)
	require.GreaterOrEqual(t, pos, 1)
	require.LessOrEqual(t, pos, 20)
	require.GreaterOrEqual(t, conf, 0.4)
	require.LessOrEqual(t, conf, 0.9)
}

func TestPredictBatchSurvivesFailingClassifier(t *testing.T) {
	// A classifier that fails on every call must yield the same shape and
	// invariants as running with no classifier at all.
	classifier := &stubClassifier{err: errors.New("always down")}
	p := seededPredictor(classifier, 4)

	entries := fullQualifying()
	summary := p.Predict(context.Background(), entries, models.DefaultWeights(), Conditions{Dry: true, TrackTempC: 22})

	require.Len(t, summary.Predictions, len(entries))
	assertPermutation(t, summary.Predictions)
	assert.Equal(t, len(entries), classifier.calls, "one classifier attempt per entrant")
	for _, rec := range summary.Predictions {
		assert.GreaterOrEqual(t, rec.Confidence, 0.4)
		assert.LessOrEqual(t, rec.Confidence, 0.9)
		assert.Equal(t, rec.Position-rec.Qualifying, rec.Change)
	}
}

func TestPredictBatchNormalizesClassifierCollisions(t *testing.T) {
	// Classifier puts everyone at P1; normalization must spread the field
	// back out by qualifying order.
	classifier := &stubClassifier{probs: []float64{0.9, 0.1}}
	p := seededPredictor(classifier, 5)

	entries := []models.QualifyingEntry{
		{Code: "VER", TimeSeconds: 78.0},
		{Code: "HAM", TimeSeconds: 78.3},
		{Code: "NOR", TimeSeconds: 78.6},
	}
	summary := p.Predict(context.Background(), entries, models.DefaultWeights(), Conditions{Dry: true})

	require.Len(t, summary.Predictions, 3)
	assertPermutation(t, summary.Predictions)
	assert.Equal(t, "VER", summary.Predictions[0].Code)
	assert.Equal(t, "HAM", summary.Predictions[1].Code)
	assert.Equal(t, "NOR", summary.Predictions[2].Code)
}

func TestPredictBatchEmptyInput(t *testing.T) {
	p := seededPredictor(nil, 6)
	summary := p.Predict(context.Background(), nil, models.DefaultWeights(), Conditions{})

	assert.Empty(t, summary.Predictions)
	assert.Equal(t, 0, summary.AvgConfidence)
}

func TestFallbackPositionWithinField(t *testing.T) {
	p := seededPredictor(nil, 7)

	for trial := 0; trial < 200; trial++ {
		pos, conf := p.fallback(1, "VER", 20)
		if pos < 1 || pos > 20 {
			t.Fatalf("fallback position %d outside field", pos)
		}
		if conf < 0.4 || conf > 0.9 {
			t.Fatalf("fallback confidence %f outside [0.4, 0.9]", conf)
		}
	}
}

func TestNoModelAlwaysErrors(t *testing.T) {
	_, err := NoModel{}.Predict(context.Background(), []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrModelUnavailable)
}
