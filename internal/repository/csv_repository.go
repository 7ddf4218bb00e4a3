package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

// CombinedDatasetName is the filename of the all-seasons training dataset.
const CombinedDatasetName = "f1_races_combined.csv"

var csvHeader = []string{
	"year", "round", "event_name", "circuit", "country",
	"driver_number", "driver_code", "driver_name", "team",
	"qualifying_position", "grid_position",
	"q1_seconds", "q2_seconds", "q3_seconds",
	"race_position", "points", "status", "fastest_lap",
}

// CSVRepository persists race records as one CSV file per race weekend,
// named <year>_Round_<round>_<event>.csv. Rebuilding the combined training
// dataset concatenates them in filename order.
type CSVRepository struct {
	dir string
}

// NewCSVRepository creates a CSV repository rooted at dir, creating the
// directory if needed.
func NewCSVRepository(dir string) (*CSVRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &CSVRepository{dir: dir}, nil
}

// SaveRace writes one race weekend to its own CSV file. The write goes
// through a temp file and rename so readers never see a partial race.
func (r *CSVRepository) SaveRace(ctx context.Context, records []*models.RaceRecord) error {
	if len(records) == 0 {
		return errors.New("no records to save")
	}
	first := records[0]

	tmp, err := os.CreateTemp(r.dir, "race-*.csv.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(recordToRow(rec)); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	dest := filepath.Join(r.dir, raceFileName(first.Year, first.Round, first.EventName, "csv"))
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to finalize race file: %w", err)
	}
	return nil
}

// GetRace reads one race weekend's records.
func (r *CSVRepository) GetRace(ctx context.Context, year, round int) ([]*models.RaceRecord, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, raceFilePattern(year, round, "csv")))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, models.ErrNotFound
	}
	return r.readFile(matches[0])
}

// GetSeason reads every stored race of a season, ordered by round.
func (r *CSVRepository) GetSeason(ctx context.Context, year int) ([]*models.RaceRecord, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, fmt.Sprintf("%d_Round_*.csv", year)))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var all []*models.RaceRecord
	for _, path := range matches {
		records, err := r.readFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// Combine concatenates every per-race CSV into the combined training dataset
// and returns the number of rows written.
func (r *CSVRepository) Combine(ctx context.Context) (int, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, "*_Round_*.csv"))
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, models.ErrNotFound
	}
	sort.Strings(matches)

	tmp, err := os.CreateTemp(r.dir, "combined-*.csv.tmp")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return 0, err
	}

	total := 0
	for _, path := range matches {
		records, err := r.readFile(path)
		if err != nil {
			tmp.Close()
			return 0, err
		}
		for _, rec := range records {
			if err := w.Write(recordToRow(rec)); err != nil {
				tmp.Close()
				return 0, err
			}
			total++
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}

	if err := os.Rename(tmp.Name(), filepath.Join(r.dir, CombinedDatasetName)); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *CSVRepository) readFile(path string) ([]*models.RaceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if len(rows) < 2 {
		return nil, models.ErrNotFound
	}

	records := make([]*models.RaceRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, fmt.Errorf("bad row in %s: %w", filepath.Base(path), err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func recordToRow(rec *models.RaceRecord) []string {
	return []string{
		strconv.Itoa(rec.Year),
		strconv.Itoa(rec.Round),
		rec.EventName,
		rec.Circuit,
		rec.Country,
		strconv.Itoa(rec.DriverNumber),
		rec.DriverCode,
		rec.DriverName,
		rec.Team,
		intPtrField(rec.QualifyingPosition),
		intPtrField(rec.GridPosition),
		decimalPtrField(rec.Q1Seconds),
		decimalPtrField(rec.Q2Seconds),
		decimalPtrField(rec.Q3Seconds),
		intPtrField(rec.RacePosition),
		rec.Points.String(),
		rec.Status,
		strconv.FormatBool(rec.FastestLap),
	}
}

func rowToRecord(row []string) (*models.RaceRecord, error) {
	if len(row) != len(csvHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(row))
	}

	year, err := strconv.Atoi(row[0])
	if err != nil {
		return nil, fmt.Errorf("bad year %q", row[0])
	}
	round, err := strconv.Atoi(row[1])
	if err != nil {
		return nil, fmt.Errorf("bad round %q", row[1])
	}
	driverNumber, err := strconv.Atoi(row[5])
	if err != nil {
		return nil, fmt.Errorf("bad driver_number %q", row[5])
	}
	points, err := decimal.NewFromString(row[15])
	if err != nil {
		return nil, fmt.Errorf("bad points %q", row[15])
	}

	rec := &models.RaceRecord{
		ID:           uuid.New(),
		Year:         year,
		Round:        round,
		EventName:    row[2],
		Circuit:      row[3],
		Country:      row[4],
		DriverNumber: driverNumber,
		DriverCode:   row[6],
		DriverName:   row[7],
		Team:         row[8],
		Points:       points,
		Status:       row[16],
		FastestLap:   row[17] == "true",
		CreatedAt:    time.Now().UTC(),
	}
	if rec.QualifyingPosition, err = parseIntPtr(row[9]); err != nil {
		return nil, err
	}
	if rec.GridPosition, err = parseIntPtr(row[10]); err != nil {
		return nil, err
	}
	if rec.Q1Seconds, err = parseDecimalPtr(row[11]); err != nil {
		return nil, err
	}
	if rec.Q2Seconds, err = parseDecimalPtr(row[12]); err != nil {
		return nil, err
	}
	if rec.Q3Seconds, err = parseDecimalPtr(row[13]); err != nil {
		return nil, err
	}
	if rec.RacePosition, err = parseIntPtr(row[14]); err != nil {
		return nil, err
	}
	return rec, nil
}

func intPtrField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func decimalPtrField(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func parseIntPtr(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("bad integer %q", s)
	}
	return &n, nil
}

func parseDecimalPtr(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("bad decimal %q", s)
	}
	return &d, nil
}

func raceFileName(year, round int, eventName, ext string) string {
	return fmt.Sprintf("%d_Round_%02d_%s.%s", year, round, sanitizeEventName(eventName), ext)
}

func raceFilePattern(year, round int, ext string) string {
	return fmt.Sprintf("%d_Round_%02d_*.%s", year, round, ext)
}

func sanitizeEventName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	return name
}
