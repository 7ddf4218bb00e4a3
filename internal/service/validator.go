package service

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

const (
	firstSeasonYear    = 1950
	maxGridSize        = 24
	maxRoundsPerSeason = 25
	maxRacePoints      = 26 // win plus fastest lap

	// Plausible dry-lap window across the calendar; Monaco sits near the
	// low end, Spa near the high end.
	minLapSeconds = 50
	maxLapSeconds = 150
)

var driverCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// RecordValidator validates merged race records before persistence
type RecordValidator struct {
	logger *logrus.Logger
}

// NewRecordValidator creates a new record validator
func NewRecordValidator(logger *logrus.Logger) *RecordValidator {
	return &RecordValidator{logger: logger}
}

// ValidateRecord checks one record for required fields and plausibility
// constraints, returning every violation found.
func (v *RecordValidator) ValidateRecord(rec *models.RaceRecord) []string {
	var errors []string

	currentYear := time.Now().Year()
	if rec.Year < firstSeasonYear || rec.Year > currentYear+1 {
		errors = append(errors, fmt.Sprintf("year out of range (%d-%d), got %d", firstSeasonYear, currentYear+1, rec.Year))
	}

	if rec.Round < 1 || rec.Round > maxRoundsPerSeason {
		errors = append(errors, fmt.Sprintf("round must be 1-%d, got %d", maxRoundsPerSeason, rec.Round))
	}

	if rec.EventName == "" {
		errors = append(errors, "event_name is required")
	}

	if !driverCodePattern.MatchString(rec.DriverCode) {
		errors = append(errors, fmt.Sprintf("driver_code must be three uppercase letters, got %q", rec.DriverCode))
	}

	if rec.DriverNumber < 1 || rec.DriverNumber > 99 {
		errors = append(errors, fmt.Sprintf("driver_number must be 1-99, got %d", rec.DriverNumber))
	}

	errors = append(errors, validatePosition("qualifying_position", rec.QualifyingPosition)...)
	errors = append(errors, validatePosition("grid_position", rec.GridPosition)...)
	errors = append(errors, validatePosition("race_position", rec.RacePosition)...)

	errors = append(errors, validateLap("q1_seconds", rec.Q1Seconds)...)
	errors = append(errors, validateLap("q2_seconds", rec.Q2Seconds)...)
	errors = append(errors, validateLap("q3_seconds", rec.Q3Seconds)...)

	if rec.Points.IsNegative() || rec.Points.GreaterThan(decimal.NewFromInt(maxRacePoints)) {
		errors = append(errors, fmt.Sprintf("points out of range (0-%d), got %s", maxRacePoints, rec.Points))
	}

	return errors
}

// ValidateRaceSet checks cross-record constraints for one race: no driver
// appears twice and no finishing position is taken twice.
func (v *RecordValidator) ValidateRaceSet(records []*models.RaceRecord) []string {
	var errors []string

	byNumber := make(map[int]string, len(records))
	byRacePos := make(map[int]string, len(records))

	for _, rec := range records {
		if prev, dup := byNumber[rec.DriverNumber]; dup {
			errors = append(errors, fmt.Sprintf("duplicate driver number %d (%s and %s)", rec.DriverNumber, prev, rec.DriverCode))
		}
		byNumber[rec.DriverNumber] = rec.DriverCode

		if rec.RacePosition == nil {
			continue
		}
		if prev, dup := byRacePos[*rec.RacePosition]; dup {
			errors = append(errors, fmt.Sprintf("duplicate race position %d (%s and %s)", *rec.RacePosition, prev, rec.DriverCode))
		}
		byRacePos[*rec.RacePosition] = rec.DriverCode
	}

	return errors
}

func validatePosition(field string, pos *int) []string {
	if pos == nil {
		return nil
	}
	if *pos < 1 || *pos > maxGridSize {
		return []string{fmt.Sprintf("%s must be 1-%d, got %d", field, maxGridSize, *pos)}
	}
	return nil
}

func validateLap(field string, lap *decimal.Decimal) []string {
	if lap == nil {
		return nil
	}
	if lap.LessThan(decimal.NewFromInt(minLapSeconds)) || lap.GreaterThan(decimal.NewFromInt(maxLapSeconds)) {
		return []string{fmt.Sprintf("%s out of range (%d-%ds), got %s", field, minLapSeconds, maxLapSeconds, lap)}
	}
	return nil
}
