package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

// raceDocument is the on-disk JSON shape for one race weekend.
type raceDocument struct {
	Year      int                  `json:"year"`
	Round     int                  `json:"round"`
	EventName string               `json:"event_name"`
	Circuit   string               `json:"circuit"`
	Country   string               `json:"country"`
	Records   []*models.RaceRecord `json:"records"`
}

// JSONRepository persists race records as one JSON document per race
// weekend. It keeps the full record structure, unlike the flattened CSV
// training format.
type JSONRepository struct {
	dir string
}

// NewJSONRepository creates a JSON repository rooted at dir, creating the
// directory if needed.
func NewJSONRepository(dir string) (*JSONRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &JSONRepository{dir: dir}, nil
}

// SaveRace writes one race weekend to its own JSON document.
func (r *JSONRepository) SaveRace(ctx context.Context, records []*models.RaceRecord) error {
	if len(records) == 0 {
		return errors.New("no records to save")
	}
	first := records[0]

	doc := raceDocument{
		Year:      first.Year,
		Round:     first.Round,
		EventName: first.EventName,
		Circuit:   first.Circuit,
		Country:   first.Country,
		Records:   records,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal race: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, "race-*.json.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	dest := filepath.Join(r.dir, raceFileName(first.Year, first.Round, first.EventName, "json"))
	return os.Rename(tmp.Name(), dest)
}

// GetRace reads one race weekend's records.
func (r *JSONRepository) GetRace(ctx context.Context, year, round int) ([]*models.RaceRecord, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, raceFilePattern(year, round, "json")))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, models.ErrNotFound
	}

	doc, err := r.readFile(matches[0])
	if err != nil {
		return nil, err
	}
	return doc.Records, nil
}

// GetSeason reads every stored race of a season, ordered by round.
func (r *JSONRepository) GetSeason(ctx context.Context, year int) ([]*models.RaceRecord, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, fmt.Sprintf("%d_Round_*.json", year)))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var all []*models.RaceRecord
	for _, path := range matches {
		doc, err := r.readFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, doc.Records...)
	}
	return all, nil
}

func (r *JSONRepository) readFile(path string) (*raceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var doc raceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &doc, nil
}
