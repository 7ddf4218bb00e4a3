package predictor

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

func testGrid() models.Grid {
	return models.DefaultGrid()
}

func seededRanker(seed int64) *Ranker {
	return NewRanker(testGrid(), nil).WithNoise(rand.New(rand.NewSource(seed)))
}

func fullQualifying() []models.QualifyingEntry {
	grid := testGrid()
	entries := make([]models.QualifyingEntry, 0, len(grid))
	base := 78.5
	for i, code := range grid.Codes() {
		entries = append(entries, models.QualifyingEntry{Code: code, TimeSeconds: base + float64(i)*0.3})
	}
	return entries
}

func assertPermutation(t *testing.T, records []models.PredictionRecord) {
	t.Helper()
	seen := make(map[int]bool, len(records))
	for _, rec := range records {
		if rec.Position < 1 || rec.Position > len(records) {
			t.Fatalf("position %d out of range 1..%d", rec.Position, len(records))
		}
		if seen[rec.Position] {
			t.Fatalf("duplicate position %d", rec.Position)
		}
		seen[rec.Position] = true
	}
}

func TestRankProducesContiguousPermutation(t *testing.T) {
	ranker := seededRanker(1)

	for trial := 0; trial < 50; trial++ {
		summary := ranker.Rank(fullQualifying(), models.DefaultWeights())
		if len(summary.Predictions) != len(testGrid()) {
			t.Fatalf("expected %d records, got %d", len(testGrid()), len(summary.Predictions))
		}
		assertPermutation(t, summary.Predictions)
	}
}

func TestRankQualifyingOrderIndependentOfWeights(t *testing.T) {
	entries := []models.QualifyingEntry{
		{Code: "VER", TimeSeconds: 78.0},
		{Code: "HAM", TimeSeconds: 78.3},
		{Code: "NOR", TimeSeconds: 78.6},
	}

	for _, weights := range []models.FeatureWeights{
		{},
		models.DefaultWeights(),
		{Qualifying: 1, Pace: 1, Tire: 1, Weather: 1, Strategy: 1},
	} {
		summary := seededRanker(7).Rank(entries, weights)
		if len(summary.Predictions) != 3 {
			t.Fatalf("expected 3 records, got %d", len(summary.Predictions))
		}
		assertPermutation(t, summary.Predictions)

		qualiByCode := map[string]int{}
		for _, rec := range summary.Predictions {
			qualiByCode[rec.Code] = rec.Qualifying
		}
		if qualiByCode["VER"] != 1 || qualiByCode["HAM"] != 2 || qualiByCode["NOR"] != 3 {
			t.Fatalf("qualifying positions depend on weights: %v", qualiByCode)
		}
	}
}

func TestRankStableSortOnEqualTimes(t *testing.T) {
	// Exact ties keep the input order of the entries slice.
	entries := []models.QualifyingEntry{
		{Code: "HAM", TimeSeconds: 78.0},
		{Code: "VER", TimeSeconds: 78.0},
		{Code: "NOR", TimeSeconds: 78.0},
	}

	summary := seededRanker(3).Rank(entries, models.DefaultWeights())
	qualiByCode := map[string]int{}
	for _, rec := range summary.Predictions {
		qualiByCode[rec.Code] = rec.Qualifying
	}
	if qualiByCode["HAM"] != 1 || qualiByCode["VER"] != 2 || qualiByCode["NOR"] != 3 {
		t.Fatalf("tie-break violated input order: %v", qualiByCode)
	}
}

func TestRankDropsUnknownCodes(t *testing.T) {
	entries := []models.QualifyingEntry{
		{Code: "VER", TimeSeconds: 78.0},
		{Code: "ZZZ", TimeSeconds: 78.1},
		{Code: "HAM", TimeSeconds: 78.2},
	}

	summary := seededRanker(5).Rank(entries, models.DefaultWeights())
	if len(summary.Predictions) != 2 {
		t.Fatalf("expected unknown code to be dropped, got %d records", len(summary.Predictions))
	}
	assertPermutation(t, summary.Predictions)
}

func TestRankEmptyInput(t *testing.T) {
	summary := seededRanker(9).Rank(nil, models.DefaultWeights())
	if len(summary.Predictions) != 0 {
		t.Fatalf("expected empty predictions, got %d", len(summary.Predictions))
	}
	if summary.AvgConfidence != 0 {
		t.Fatalf("expected zero avg confidence for empty field, got %d", summary.AvgConfidence)
	}
}

func TestRankConfidenceBounds(t *testing.T) {
	// Out-of-range weights must not break the confidence clamp.
	for _, weights := range []models.FeatureWeights{
		{Qualifying: 0},
		{Qualifying: 1},
		{Qualifying: 5, Pace: -3, Tire: 9, Weather: 2, Strategy: -7},
	} {
		summary := seededRanker(11).Rank(fullQualifying(), weights)
		for _, rec := range summary.Predictions {
			if rec.Confidence < 0.4 || rec.Confidence > 0.95 {
				t.Fatalf("confidence %f outside [0.4, 0.95] for weights %+v", rec.Confidence, weights)
			}
		}
	}
}

func TestRankDeterministicWithSeededNoise(t *testing.T) {
	entries := fullQualifying()
	first := seededRanker(42).Rank(entries, models.DefaultWeights())
	second := seededRanker(42).Rank(entries, models.DefaultWeights())

	for i := range first.Predictions {
		if first.Predictions[i] != second.Predictions[i] {
			t.Fatalf("same seed produced different outcomes at index %d", i)
		}
	}
}

// TestRankQualifyingWeightTracking checks the statistical property that a
// maximal qualifying weight keeps the predicted order closer to the
// qualifying order than a zero weight does, measured by rank correlation
// over many trials.
func TestRankQualifyingWeightTracking(t *testing.T) {
	const trials = 300

	correlation := func(weights models.FeatureWeights, seed int64) float64 {
		ranker := NewRanker(testGrid(), nil).WithNoise(rand.New(rand.NewSource(seed)))
		var quali, predicted []float64
		for trial := 0; trial < trials; trial++ {
			summary := ranker.Rank(fullQualifying(), weights)
			for _, rec := range summary.Predictions {
				quali = append(quali, float64(rec.Qualifying))
				predicted = append(predicted, float64(rec.Position))
			}
		}
		return stat.Correlation(quali, predicted, nil)
	}

	trusting := correlation(models.FeatureWeights{Qualifying: 1.0}, 101)
	chaotic := correlation(models.FeatureWeights{Qualifying: 0.0, Pace: 1, Tire: 1, Weather: 1, Strategy: 1}, 101)

	if trusting <= chaotic {
		t.Fatalf("expected quali=1.0 correlation (%f) to exceed quali=0.0 correlation (%f)", trusting, chaotic)
	}
}
