package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RaceRecord is one driver's merged qualifying and race result for a single
// event, the flat row shape produced by historical ingestion and persisted
// to CSV, JSON or Postgres.
type RaceRecord struct {
	ID                 uuid.UUID        `db:"id" json:"id"`
	Year               int              `db:"year" json:"year"`
	Round              int              `db:"round" json:"round"`
	EventName          string           `db:"event_name" json:"event_name"`
	Circuit            string           `db:"circuit" json:"circuit"`
	Country            string           `db:"country" json:"country"`
	DriverNumber       int              `db:"driver_number" json:"driver_number"`
	DriverCode         string           `db:"driver_code" json:"driver_code"`
	DriverName         string           `db:"driver_name" json:"driver_name"`
	Team               string           `db:"team" json:"team"`
	QualifyingPosition *int             `db:"qualifying_position" json:"qualifying_position"`
	GridPosition       *int             `db:"grid_position" json:"grid_position"`
	Q1Seconds          *decimal.Decimal `db:"q1_seconds" json:"q1_seconds"`
	Q2Seconds          *decimal.Decimal `db:"q2_seconds" json:"q2_seconds"`
	Q3Seconds          *decimal.Decimal `db:"q3_seconds" json:"q3_seconds"`
	RacePosition       *int             `db:"race_position" json:"race_position"`
	Points             decimal.Decimal  `db:"points" json:"points"`
	Status             string           `db:"status" json:"status"`
	FastestLap         bool             `db:"fastest_lap" json:"fastest_lap"`
	CreatedAt          time.Time        `db:"created_at" json:"created_at"`
}

// BestQualifyingTime returns the fastest of the driver's Q1-Q3 laps, or nil
// when the driver set no time.
func (r *RaceRecord) BestQualifyingTime() *decimal.Decimal {
	var best *decimal.Decimal
	for _, t := range []*decimal.Decimal{r.Q1Seconds, r.Q2Seconds, r.Q3Seconds} {
		if t == nil {
			continue
		}
		if best == nil || t.LessThan(*best) {
			best = t
		}
	}
	return best
}

// Finished reports whether the driver was classified in the race result.
func (r *RaceRecord) Finished() bool {
	return r.RacePosition != nil && *r.RacePosition > 0
}

// QualifyingEntries reduces one race's records to the QualifyingEntry shape
// consumed by the prediction core. Drivers with no qualifying time are
// skipped.
func QualifyingEntries(records []*RaceRecord) []QualifyingEntry {
	entries := make([]QualifyingEntry, 0, len(records))
	for _, rec := range records {
		best := rec.BestQualifyingTime()
		if best == nil {
			continue
		}
		entries = append(entries, QualifyingEntry{
			Code:        rec.DriverCode,
			TimeSeconds: best.InexactFloat64(),
		})
	}
	return entries
}
