package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGainedPlaces(t *testing.T) {
	assert.True(t, PredictionRecord{Position: 2, Qualifying: 5, Change: -3}.GainedPlaces())
	assert.False(t, PredictionRecord{Position: 5, Qualifying: 2, Change: 3}.GainedPlaces())
	assert.False(t, PredictionRecord{Position: 4, Qualifying: 4, Change: 0}.GainedPlaces())
}

func TestPodium(t *testing.T) {
	summary := OutcomeSummary{Predictions: []PredictionRecord{
		{Code: "VER", Position: 1},
		{Code: "LEC", Position: 2},
		{Code: "HAM", Position: 3},
		{Code: "NOR", Position: 4},
	}}

	podium := summary.Podium()
	assert.Len(t, podium, 3)
	assert.Equal(t, "HAM", podium[2].Code)
}

func TestPodiumSmallField(t *testing.T) {
	summary := OutcomeSummary{Predictions: []PredictionRecord{
		{Code: "VER", Position: 1},
		{Code: "LEC", Position: 2},
	}}

	assert.Len(t, summary.Podium(), 2)

	assert.Empty(t, OutcomeSummary{}.Podium())
}
