package predictor

import (
	"sort"

	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

// Normalize repairs a record set carrying arbitrary, possibly colliding
// raw predicted positions into a unique, contiguous 1..N ordering.
//
// Records are sorted by raw predicted position with ties broken by
// qualifying position: when the stochastic backends collide two drivers
// onto the same slot, the better-qualified one keeps the higher place.
// Positions are then renumbered 1..N and every delta is recomputed.
//
// Normalize is the single authority for the permutation invariant. It is
// idempotent: normalizing an already-normalized set changes nothing.
func Normalize(records []models.PredictionRecord) []models.PredictionRecord {
	normalized := make([]models.PredictionRecord, len(records))
	copy(normalized, records)

	sort.SliceStable(normalized, func(i, j int) bool {
		if normalized[i].Position != normalized[j].Position {
			return normalized[i].Position < normalized[j].Position
		}
		return normalized[i].Qualifying < normalized[j].Qualifying
	})

	for i := range normalized {
		normalized[i].Position = i + 1
		normalized[i].Change = normalized[i].Position - normalized[i].Qualifying
	}
	return normalized
}
