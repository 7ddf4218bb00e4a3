package repository

import (
	"context"

	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

// RaceRecordRepository defines the interface for race record persistence
type RaceRecordRepository interface {
	// SaveRace persists every record of one race weekend atomically
	SaveRace(ctx context.Context, records []*models.RaceRecord) error

	// GetRace returns all records of one race, models.ErrNotFound when the
	// race has not been ingested
	GetRace(ctx context.Context, year, round int) ([]*models.RaceRecord, error)

	// GetSeason returns every stored record of a season
	GetSeason(ctx context.Context, year int) ([]*models.RaceRecord, error)
}

// LoadQualifying reduces one stored race to the qualifying classification
// shape the prediction core consumes.
func LoadQualifying(ctx context.Context, repo RaceRecordRepository, year, round int) ([]models.QualifyingEntry, error) {
	records, err := repo.GetRace(ctx, year, round)
	if err != nil {
		return nil, err
	}
	return models.QualifyingEntries(records), nil
}
