package models

// PredictionRecord is one driver's predicted race outcome.
//
// Invariants after normalization: Position values across a record set form
// a contiguous 1..N permutation, Qualifying is the weight-independent rank
// by lap time, and Change is always Position minus Qualifying.
type PredictionRecord struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Team       string  `json:"team"`
	Number     int     `json:"number"`
	Position   int     `json:"position"`
	Qualifying int     `json:"qualifying"`
	Change     int     `json:"change"`
	Confidence float64 `json:"confidence"`
}

// GainedPlaces reports whether the driver is predicted to finish ahead of
// their qualifying position.
func (r PredictionRecord) GainedPlaces() bool {
	return r.Change < 0
}

// OutcomeSummary is the read-only result of a prediction run. Predictions
// are ordered ascending by predicted position. The aggregate fields are
// reporting-only scalars and never feed back into ranking.
type OutcomeSummary struct {
	Predictions   []PredictionRecord `json:"predictions"`
	Accuracy      int                `json:"accuracy"`
	AvgConfidence int                `json:"avgConfidence"`
	Volatility    float64            `json:"volatility"`
}

// Podium returns the top three predicted finishers, or fewer when the
// field is smaller.
func (s OutcomeSummary) Podium() []PredictionRecord {
	if len(s.Predictions) < 3 {
		return s.Predictions
	}
	return s.Predictions[:3]
}
