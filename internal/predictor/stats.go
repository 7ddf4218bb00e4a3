package predictor

import (
	"math"

	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

// accuracyBaseline is the fixed model accuracy floor the qualifying weight
// builds on.
const accuracyBaseline = 68

// summarize wraps normalized records in an OutcomeSummary with the derived
// aggregate scalars. The aggregates are reporting-only; nothing here feeds
// back into ranking.
func summarize(records []models.PredictionRecord, weights models.FeatureWeights) models.OutcomeSummary {
	return models.OutcomeSummary{
		Predictions:   records,
		Accuracy:      accuracyBaseline + int(weights.Qualifying*10),
		AvgConfidence: meanConfidencePercent(records),
		Volatility:    volatility(weights),
	}
}

// meanConfidencePercent returns the arithmetic mean confidence as a whole
// percentage, and 0 for an empty field.
func meanConfidencePercent(records []models.PredictionRecord) int {
	if len(records) == 0 {
		return 0
	}
	var total float64
	for _, rec := range records {
		total += rec.Confidence
	}
	return int(total / float64(len(records)) * 100)
}

// volatility derives the expected field-wide shuffling from the qualifying
// weight alone: the more qualifying order is trusted, the less shuffling
// is expected. Rounded to one decimal.
func volatility(weights models.FeatureWeights) float64 {
	return math.Round((3.5-weights.Qualifying*2)*10) / 10
}
