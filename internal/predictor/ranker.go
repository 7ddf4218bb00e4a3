package predictor

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

// Perturbation model constants.
const (
	// baselineStdDev is the standard deviation of the zero-mean Gaussian
	// baseline applied to every driver's position delta.
	baselineStdDev = 2.0

	// reshuffleCeiling caps raw predicted positions: only the top band is
	// subject to re-shuffle. Drivers qualifying outside it are clamped
	// into the band, which deliberately piles up collisions that the
	// normalizer resolves by qualifying order.
	reshuffleCeiling = 10
)

// Symmetric perturbation intervals per weighted feature.
const (
	paceSpread     = 1.0
	tireSpread     = 0.5
	weatherSpread  = 0.3
	strategySpread = 0.8
)

// Confidence bounds for the perturbation backend.
const (
	minConfidence = 0.4
	maxConfidence = 0.95
)

// Ranker is the stochastic perturbation backend. It derives a predicted
// finishing order from a qualifying session by perturbing each driver's
// qualifying rank with weighted noise.
//
// A Ranker is safe for concurrent use as long as its noise source is;
// the default source is.
type Ranker struct {
	grid   models.Grid
	noise  NoiseSource
	logger *logrus.Logger
}

// NewRanker creates a ranker over the given driver grid.
func NewRanker(grid models.Grid, logger *logrus.Logger) *Ranker {
	return &Ranker{
		grid:   grid,
		noise:  DefaultNoise(),
		logger: logger,
	}
}

// WithNoise replaces the ranker's entropy source and returns the ranker.
// Used by tests to seed deterministic runs.
func (r *Ranker) WithNoise(src NoiseSource) *Ranker {
	r.noise = src
	return r
}

// Rank predicts a finishing order for the given qualifying session.
//
// Entries whose driver code is not on the grid are silently dropped.
// Weights outside [0, 1] are used as-is; they only scale perturbation
// magnitude. An empty session yields an empty, well-formed summary.
func (r *Ranker) Rank(entries []models.QualifyingEntry, weights models.FeatureWeights) models.OutcomeSummary {
	start := time.Now()

	sorted := models.SortQualifying(entries)
	records := make([]models.PredictionRecord, 0, len(sorted))

	qualiPos := 0
	for _, entry := range sorted {
		driver, ok := r.grid.Lookup(entry.Code)
		if !ok {
			if r.logger != nil {
				r.logger.WithField("code", entry.Code).Debug("Dropping unknown driver from ranking")
			}
			continue
		}
		qualiPos++

		delta := gaussian(r.noise, baselineStdDev) +
			weights.Pace*uniform(r.noise, -paceSpread, paceSpread) +
			weights.Tire*uniform(r.noise, -tireSpread, tireSpread) +
			weights.Weather*uniform(r.noise, -weatherSpread, weatherSpread) +
			weights.Strategy*uniform(r.noise, -strategySpread, strategySpread)

		// int() truncates toward zero, matching the raw-position contract.
		rawPos := clampInt(qualiPos+int(delta), 1, reshuffleCeiling)

		confidence := 0.5 + 0.3*(weights.Qualifying*0.5) + uniform(r.noise, 0, 0.2)
		confidence = clampFloat(confidence, minConfidence, maxConfidence)

		records = append(records, models.PredictionRecord{
			Code:       driver.Code,
			Name:       driver.Name,
			Team:       driver.Team,
			Number:     driver.Number,
			Position:   rawPos,
			Qualifying: qualiPos,
			Change:     rawPos - qualiPos,
			Confidence: confidence,
		})
	}

	summary := summarize(Normalize(records), weights)

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{
			"field_size": len(summary.Predictions),
			"dropped":    len(sorted) - len(summary.Predictions),
			"duration":   time.Since(start),
		}).Debug("Perturbation ranking complete")
	}
	predictionsTotal.WithLabelValues(backendPerturbation).Inc()
	predictionDuration.WithLabelValues(backendPerturbation).Observe(time.Since(start).Seconds())

	return summary
}
