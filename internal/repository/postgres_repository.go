package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/salsabil-cell/F1-race-predictor/internal/database"
	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

const raceRecordColumns = `
	id, year, round, event_name, circuit, country,
	driver_number, driver_code, driver_name, team,
	qualifying_position, grid_position,
	q1_seconds, q2_seconds, q3_seconds,
	race_position, points, status, fastest_lap, created_at
`

// PostgresRepository implements RaceRecordRepository for PostgreSQL
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a new Postgres-backed race record repository
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SaveRace inserts every record of one race weekend in a single transaction.
func (r *PostgresRepository) SaveRace(ctx context.Context, records []*models.RaceRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to save")
	}

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO race_records (` + raceRecordColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		`
		for _, rec := range records {
			_, err := tx.Exec(ctx, query,
				rec.ID, rec.Year, rec.Round, rec.EventName, rec.Circuit, rec.Country,
				rec.DriverNumber, rec.DriverCode, rec.DriverName, rec.Team,
				rec.QualifyingPosition, rec.GridPosition,
				rec.Q1Seconds, rec.Q2Seconds, rec.Q3Seconds,
				rec.RacePosition, rec.Points, rec.Status, rec.FastestLap, rec.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert record for %s: %w", rec.DriverCode, err)
			}
		}
		return nil
	})
}

// GetRace retrieves all records of one race ordered by qualifying position.
func (r *PostgresRepository) GetRace(ctx context.Context, year, round int) ([]*models.RaceRecord, error) {
	query := `
		SELECT ` + raceRecordColumns + `
		FROM race_records
		WHERE year = $1 AND round = $2
		ORDER BY qualifying_position NULLS LAST, driver_number
	`

	rows, err := r.db.GetPool().Query(ctx, query, year, round)
	if err != nil {
		return nil, fmt.Errorf("failed to query race: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, models.ErrNotFound
	}
	return records, nil
}

// GetSeason retrieves every stored record of a season ordered by round.
func (r *PostgresRepository) GetSeason(ctx context.Context, year int) ([]*models.RaceRecord, error) {
	query := `
		SELECT ` + raceRecordColumns + `
		FROM race_records
		WHERE year = $1
		ORDER BY round, qualifying_position NULLS LAST, driver_number
	`

	rows, err := r.db.GetPool().Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query season: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]*models.RaceRecord, error) {
	var records []*models.RaceRecord
	for rows.Next() {
		rec := &models.RaceRecord{}
		err := rows.Scan(
			&rec.ID, &rec.Year, &rec.Round, &rec.EventName, &rec.Circuit, &rec.Country,
			&rec.DriverNumber, &rec.DriverCode, &rec.DriverName, &rec.Team,
			&rec.QualifyingPosition, &rec.GridPosition,
			&rec.Q1Seconds, &rec.Q2Seconds, &rec.Q3Seconds,
			&rec.RacePosition, &rec.Points, &rec.Status, &rec.FastestLap, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}
