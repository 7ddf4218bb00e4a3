package predictor

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	applogger "github.com/salsabil-cell/F1-race-predictor/internal/logger"
	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

// fallbackStdDevDefault is the Gaussian spread of the fallback heuristic.
// It models a low-overtaking circuit; tracks with more passing would tune
// it upward.
const fallbackStdDevDefault = 1.5

// Confidence bounds for the fallback heuristic.
const (
	fallbackMinConfidence = 0.4
	fallbackMaxConfidence = 0.9
)

// ModelPredictor is the model-backed prediction backend. Each entrant's
// feature vector is scored by the classifier; when the classifier is
// absent or fails, the entrant degrades to a statistical fallback without
// aborting the batch.
//
// The classifier handle and ratings tables are read-only after
// construction, so a ModelPredictor is safe for concurrent use as long as
// its noise source is.
type ModelPredictor struct {
	grid           models.Grid
	ratings        Ratings
	classifier     Classifier
	noise          NoiseSource
	fallbackStdDev float64
	logger         *logrus.Logger
	predLog        *applogger.PredictionLogger
}

// NewModelPredictor creates a predictor over the given grid and reference
// tables. A nil classifier is replaced with the NoModel null object.
func NewModelPredictor(grid models.Grid, ratings Ratings, classifier Classifier, logger *logrus.Logger) *ModelPredictor {
	if classifier == nil {
		classifier = NoModel{}
	}
	p := &ModelPredictor{
		grid:           grid,
		ratings:        ratings,
		classifier:     classifier,
		noise:          DefaultNoise(),
		fallbackStdDev: fallbackStdDevDefault,
		logger:         logger,
	}
	if logger != nil {
		p.predLog = applogger.NewPredictionLogger(logger)
	}
	return p
}

// WithNoise replaces the predictor's entropy source and returns the
// predictor. Used by tests to seed deterministic runs.
func (p *ModelPredictor) WithNoise(src NoiseSource) *ModelPredictor {
	p.noise = src
	return p
}

// WithFallbackStdDev overrides the fallback noise spread, the tunable
// circuit-characteristic constant.
func (p *ModelPredictor) WithFallbackStdDev(stddev float64) *ModelPredictor {
	if stddev > 0 {
		p.fallbackStdDev = stddev
	}
	return p
}

// PredictOne scores a single entrant. The classifier result is the arg-max
// position of its probability distribution with the max probability as
// confidence; any classifier failure downgrades to the fallback heuristic
// for this entrant only.
func (p *ModelPredictor) PredictOne(ctx context.Context, qualifyingPosition int, code string, features []float64, fieldSize int) (int, float64) {
	probs, err := p.classifier.Predict(ctx, features)
	if err != nil || len(probs) == 0 {
		if p.predLog != nil {
			reason := "empty distribution"
			if err != nil {
				reason = err.Error()
			}
			p.predLog.LogClassifierFallback(code, reason)
		}
		fallbacksTotal.Inc()
		return p.fallback(qualifyingPosition, code, fieldSize)
	}

	best := 0
	for i, prob := range probs {
		if prob > probs[best] {
			best = i
		}
	}
	return best + 1, probs[best]
}

// fallback is the statistical heuristic used when no model is available:
// a fixed per-driver skill bonus plus circuit-tuned Gaussian noise.
func (p *ModelPredictor) fallback(qualifyingPosition int, code string, fieldSize int) (int, float64) {
	change := p.ratings.SkillBonus(code) + gaussian(p.noise, p.fallbackStdDev)

	position := clampInt(int(float64(qualifyingPosition)+change), 1, fieldSize)
	confidence := clampFloat(0.7-math.Abs(change)/10, fallbackMinConfidence, fallbackMaxConfidence)
	return position, confidence
}

// Predict scores a full qualifying session through the model backend and
// returns the normalized outcome. Unknown driver codes are dropped;
// weights enter only the aggregate scalars, never the per-entrant scores.
func (p *ModelPredictor) Predict(ctx context.Context, entries []models.QualifyingEntry, weights models.FeatureWeights, cond Conditions) models.OutcomeSummary {
	start := time.Now()

	sorted := models.SortQualifying(entries)

	// Field size counts only known drivers so the clamp ceiling matches
	// the size of the returned permutation.
	fieldSize := 0
	for _, entry := range sorted {
		if _, ok := p.grid.Lookup(entry.Code); ok {
			fieldSize++
		}
	}

	records := make([]models.PredictionRecord, 0, fieldSize)
	qualiPos := 0
	for _, entry := range sorted {
		driver, ok := p.grid.Lookup(entry.Code)
		if !ok {
			continue
		}
		qualiPos++

		features := BuildFeatureVector(qualiPos, entry.Code, p.ratings, cond)
		position, confidence := p.PredictOne(ctx, qualiPos, entry.Code, features, fieldSize)

		records = append(records, models.PredictionRecord{
			Code:       driver.Code,
			Name:       driver.Name,
			Team:       driver.Team,
			Number:     driver.Number,
			Position:   position,
			Qualifying: qualiPos,
			Change:     position - qualiPos,
			Confidence: confidence,
		})
	}

	summary := summarize(Normalize(records), weights)

	predictionsTotal.WithLabelValues(backendModel).Inc()
	predictionDuration.WithLabelValues(backendModel).Observe(time.Since(start).Seconds())
	return summary
}
