package datasource

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

func TestSyntheticFetchRace(t *testing.T) {
	grid := models.DefaultGrid()
	source := NewSyntheticSource(grid, rand.New(rand.NewSource(7)))

	race, err := source.FetchRace(context.Background(), 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, 2025, race.Year)
	assert.Equal(t, 3, race.Round)
	require.Len(t, race.Qualifying, len(grid))
	require.Len(t, race.Race, len(grid))

	for i, q := range race.Qualifying {
		_, known := grid.Lookup(q.DriverCode)
		assert.True(t, known, "driver %s not on the grid", q.DriverCode)
		require.NotNil(t, q.Position)
		assert.Equal(t, i+1, *q.Position)
		require.NotNil(t, q.Q3, "every synthetic entrant sets a Q3 lap")
	}

	winner := race.Race[0]
	assert.True(t, winner.Points.IsPositive())
	assert.Equal(t, "Finished", winner.Status)

	// Outside the top ten nobody scores.
	last := race.Race[len(race.Race)-1]
	assert.True(t, last.Points.IsZero())
}

func TestSyntheticQualifyingSessionSpread(t *testing.T) {
	source := NewSyntheticSource(models.DefaultGrid(), rand.New(rand.NewSource(42)))

	entries := source.QualifyingSession()
	require.Len(t, entries, 20)

	for i, e := range entries {
		lo := syntheticBaseLapSeconds + syntheticLapStepSeconds*float64(i)
		hi := lo + syntheticLapJitter
		assert.GreaterOrEqual(t, e.TimeSeconds, lo)
		assert.Less(t, e.TimeSeconds, hi)
	}
}

func TestSyntheticSeededDeterminism(t *testing.T) {
	a := NewSyntheticSource(models.DefaultGrid(), rand.New(rand.NewSource(11)))
	b := NewSyntheticSource(models.DefaultGrid(), rand.New(rand.NewSource(11)))

	assert.Equal(t, a.QualifyingSession(), b.QualifyingSession())
}

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{78.291, "1:18.291"},
		{70.270, "1:10.270"},
		{59.9999, "1:00.000"},
		{125.5, "2:05.500"},
		{78.5, "1:18.500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLapTime(tt.seconds), "seconds=%v", tt.seconds)
	}
}
