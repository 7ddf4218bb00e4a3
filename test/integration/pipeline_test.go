package integration

import (
	"context"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salsabil-cell/F1-race-predictor/internal/datasource"
	"github.com/salsabil-cell/F1-race-predictor/internal/models"
	"github.com/salsabil-cell/F1-race-predictor/internal/predictor"
	"github.com/salsabil-cell/F1-race-predictor/internal/repository"
	"github.com/salsabil-cell/F1-race-predictor/internal/service"
)

// Exercises the full pipeline: generated race weekend -> ingestion ->
// CSV storage -> qualifying reload -> finishing-order prediction.
func TestIngestThenPredict(t *testing.T) {
	ctx := context.Background()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	grid := models.DefaultGrid()
	source := datasource.NewSyntheticSource(grid, rand.New(rand.NewSource(42)))

	repo, err := repository.NewCSVRepository(t.TempDir())
	require.NoError(t, err)

	svc := service.NewIngestionService(
		[]datasource.DataSource{source},
		repo,
		service.NewRaceMerger(logger),
		service.NewRecordValidator(logger),
		logger,
		5,
	)

	metrics, err := svc.IngestRace(ctx, "synthetic", 2024, 8)
	require.NoError(t, err)

	snapshot := metrics.Snapshot()
	assert.Equal(t, 1, snapshot.SuccessfulRaces)
	assert.Equal(t, len(grid), snapshot.TotalRecords)

	entries, err := repository.LoadQualifying(ctx, repo, 2024, 8)
	require.NoError(t, err)
	require.Len(t, entries, len(grid))

	ranker := predictor.NewRanker(grid, logger)
	summary := ranker.Rank(entries, models.DefaultWeights())

	require.Len(t, summary.Predictions, len(grid))

	// Predicted positions form a contiguous 1..N permutation.
	seen := make(map[int]bool, len(summary.Predictions))
	for i, p := range summary.Predictions {
		assert.Equal(t, i+1, p.Position)
		assert.False(t, seen[p.Position])
		seen[p.Position] = true

		assert.Equal(t, p.Position-p.Qualifying, p.Change)
		assert.GreaterOrEqual(t, p.Confidence, 0.4)
		assert.LessOrEqual(t, p.Confidence, 0.95)
	}

	// Qualifying positions are a permutation too.
	qualiSeen := make(map[int]bool, len(summary.Predictions))
	for _, p := range summary.Predictions {
		assert.False(t, qualiSeen[p.Qualifying])
		qualiSeen[p.Qualifying] = true
	}

	assert.Equal(t, 75, summary.Accuracy)
	assert.Greater(t, summary.AvgConfidence, 0)
}
