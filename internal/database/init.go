package database

import (
	"context"
	"fmt"

	"github.com/salsabil-cell/F1-race-predictor/internal/config"
)

// raceRecordsSchema holds one driver's merged qualifying and race result per
// row. Lap times and points are NUMERIC to avoid float drift.
const raceRecordsSchema = `
CREATE TABLE IF NOT EXISTS race_records (
	id UUID PRIMARY KEY,
	year INT NOT NULL,
	round INT NOT NULL,
	event_name TEXT NOT NULL,
	circuit TEXT NOT NULL DEFAULT '',
	country TEXT NOT NULL DEFAULT '',
	driver_number INT NOT NULL,
	driver_code CHAR(3) NOT NULL,
	driver_name TEXT NOT NULL DEFAULT '',
	team TEXT NOT NULL DEFAULT '',
	qualifying_position INT,
	grid_position INT,
	q1_seconds NUMERIC(9,3),
	q2_seconds NUMERIC(9,3),
	q3_seconds NUMERIC(9,3),
	race_position INT,
	points NUMERIC(5,1) NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT '',
	fastest_lap BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (year, round, driver_number)
);

CREATE INDEX IF NOT EXISTS idx_race_records_season ON race_records (year, round);
`

// Initialize creates a connection pool and ensures the schema exists.
func Initialize(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	db, err := NewDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if _, err := db.pool.Exec(ctx, raceRecordsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}
