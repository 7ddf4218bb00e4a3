package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/salsabil-cell/F1-race-predictor/internal/datasource"
	applogger "github.com/salsabil-cell/F1-race-predictor/internal/logger"
	"github.com/salsabil-cell/F1-race-predictor/internal/models"
	"github.com/salsabil-cell/F1-race-predictor/internal/repository"
)

// IngestionService handles the historical data ingestion workflow:
// fetch, merge, validate, persist.
type IngestionService struct {
	sources   []datasource.DataSource
	repo      repository.RaceRecordRepository
	merger    *RaceMerger
	validator *RecordValidator
	metrics   *IngestionMetrics
	logger    *logrus.Logger
	predLog   *applogger.PredictionLogger
	batchSize int
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	sources []datasource.DataSource,
	repo repository.RaceRecordRepository,
	merger *RaceMerger,
	validator *RecordValidator,
	logger *logrus.Logger,
	batchSize int,
) *IngestionService {
	if batchSize <= 0 {
		batchSize = 5
	}

	return &IngestionService{
		sources:   sources,
		repo:      repo,
		merger:    merger,
		validator: validator,
		metrics:   NewIngestionMetrics(),
		logger:    logger,
		predLog:   applogger.NewPredictionLogger(logger),
		batchSize: batchSize,
	}
}

// IngestSeason fetches and ingests every available race of a season from the
// named source. Failures on individual races are counted and logged but do
// not abort the run.
func (s *IngestionService) IngestSeason(ctx context.Context, sourceName string, year int) (*IngestionMetrics, error) {
	s.metrics.Reset()
	startTime := time.Now()

	s.logger.WithFields(logrus.Fields{
		"source": sourceName,
		"year":   year,
	}).Info("Starting season ingestion")

	source, err := s.findSource(sourceName)
	if err != nil {
		return nil, err
	}

	races, err := source.FetchSeason(ctx, year)
	if err != nil {
		s.metrics.RecordError()
		return s.metrics, fmt.Errorf("failed to fetch season %d: %w", year, err)
	}

	s.metrics.mu.Lock()
	s.metrics.TotalRaces = len(races)
	s.metrics.mu.Unlock()

	for i := 0; i < len(races); i += s.batchSize {
		end := i + s.batchSize
		if end > len(races) {
			end = len(races)
		}

		for _, race := range races[i:end] {
			if err := ctx.Err(); err != nil {
				return s.metrics, err
			}
			if err := s.processRace(ctx, &race); err != nil {
				s.metrics.RecordError()
				s.logger.WithFields(logrus.Fields{
					"year":  race.Year,
					"round": race.Round,
					"error": err,
				}).Error("Failed to process race")
			}
		}
	}

	s.metrics.mu.Lock()
	s.metrics.Duration = time.Since(startTime)
	s.metrics.mu.Unlock()

	snapshot := s.metrics.Snapshot()
	s.predLog.LogIngestionRun(sourceName, snapshot.SuccessfulRaces, snapshot.TotalRecords, snapshot.Errors, snapshot.Duration)
	return s.metrics, nil
}

// IngestRace fetches and ingests a single race weekend from the named source.
func (s *IngestionService) IngestRace(ctx context.Context, sourceName string, year, round int) (*IngestionMetrics, error) {
	s.metrics.Reset()
	startTime := time.Now()

	source, err := s.findSource(sourceName)
	if err != nil {
		return nil, err
	}

	race, err := source.FetchRace(ctx, year, round)
	if err != nil {
		s.metrics.RecordError()
		return s.metrics, fmt.Errorf("failed to fetch %d round %d: %w", year, round, err)
	}

	s.metrics.mu.Lock()
	s.metrics.TotalRaces = 1
	s.metrics.mu.Unlock()

	if err := s.processRace(ctx, race); err != nil {
		s.metrics.RecordError()
		return s.metrics, err
	}

	s.metrics.mu.Lock()
	s.metrics.Duration = time.Since(startTime)
	s.metrics.mu.Unlock()

	snapshot := s.metrics.Snapshot()
	s.predLog.LogIngestionRun(sourceName, snapshot.SuccessfulRaces, snapshot.TotalRecords, snapshot.Errors, snapshot.Duration)
	return s.metrics, nil
}

// processRace merges, validates and persists one race weekend
func (s *IngestionService) processRace(ctx context.Context, sourceRace *datasource.RaceData) error {
	records, err := s.merger.MergeRace(sourceRace)
	if err != nil {
		return fmt.Errorf("failed to merge race: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("race %d round %d produced no records", sourceRace.Year, sourceRace.Round)
	}

	// Skip races already persisted.
	existing, err := s.repo.GetRace(ctx, sourceRace.Year, sourceRace.Round)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check for existing race: %w", err)
	}
	if len(existing) > 0 {
		s.metrics.RecordDuplicate()
		s.logger.WithFields(logrus.Fields{
			"year":  sourceRace.Year,
			"round": sourceRace.Round,
		}).Debug("Race already ingested, skipping")
		return nil
	}

	valid := make([]*models.RaceRecord, 0, len(records))
	for _, rec := range records {
		if violations := s.validator.ValidateRecord(rec); len(violations) > 0 {
			s.metrics.RecordValidationError()
			s.logger.WithFields(logrus.Fields{
				"driver":     rec.DriverCode,
				"violations": violations,
			}).Warn("Dropping invalid record")
			continue
		}
		valid = append(valid, rec)
	}
	if len(valid) == 0 {
		return fmt.Errorf("race %d round %d: every record failed validation", sourceRace.Year, sourceRace.Round)
	}

	if violations := s.validator.ValidateRaceSet(valid); len(violations) > 0 {
		s.metrics.RecordValidationError()
		return fmt.Errorf("race %d round %d failed cross-record validation: %v", sourceRace.Year, sourceRace.Round, violations)
	}

	if err := s.repo.SaveRace(ctx, valid); err != nil {
		return fmt.Errorf("failed to persist race: %w", err)
	}

	s.metrics.RecordRace()
	s.metrics.RecordRecords(len(valid))
	recordsIngestedTotal.Add(float64(len(valid)))
	racesIngestedTotal.Inc()
	return nil
}

func (s *IngestionService) findSource(name string) (datasource.DataSource, error) {
	for _, src := range s.sources {
		if src.Name() == name {
			return src, nil
		}
	}
	return nil, fmt.Errorf("data source not found: %s", name)
}

// GetMetrics returns current ingestion metrics
func (s *IngestionService) GetMetrics() *IngestionMetrics {
	return s.metrics
}
