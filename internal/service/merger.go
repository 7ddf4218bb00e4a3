package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/salsabil-cell/F1-race-predictor/internal/datasource"
	"github.com/salsabil-cell/F1-race-predictor/internal/models"
)

// RaceMerger flattens one fetched race weekend into per-driver RaceRecord
// rows, joining the qualifying and race classifications by driver number.
type RaceMerger struct {
	circuitNameMap map[string]string // Maps provider circuit names to canonical names
	logger         *logrus.Logger
}

// NewRaceMerger creates a new race merger
func NewRaceMerger(logger *logrus.Logger) *RaceMerger {
	return &RaceMerger{
		circuitNameMap: buildCircuitNameMap(),
		logger:         logger,
	}
}

// MergeRace converts RaceData from any source into flat RaceRecord rows.
// Drivers that only appear in the race classification (pit-lane starts with
// no qualifying time) still produce a row.
func (m *RaceMerger) MergeRace(sourceRace *datasource.RaceData) ([]*models.RaceRecord, error) {
	if sourceRace == nil {
		return nil, fmt.Errorf("source race is nil")
	}

	raceByNumber := make(map[int]datasource.SessionResult, len(sourceRace.Race))
	for _, result := range sourceRace.Race {
		raceByNumber[result.DriverNumber] = result
	}

	seen := make(map[int]bool, len(sourceRace.Qualifying))
	records := make([]*models.RaceRecord, 0, len(sourceRace.Qualifying))

	for _, quali := range sourceRace.Qualifying {
		seen[quali.DriverNumber] = true
		rec := m.newRecord(sourceRace, quali)
		rec.QualifyingPosition = quali.Position
		rec.Q1Seconds = m.parseLap(quali.Q1, quali.DriverCode)
		rec.Q2Seconds = m.parseLap(quali.Q2, quali.DriverCode)
		rec.Q3Seconds = m.parseLap(quali.Q3, quali.DriverCode)

		if race, ok := raceByNumber[quali.DriverNumber]; ok {
			applyRaceResult(rec, race)
		}
		records = append(records, rec)
	}

	for _, race := range sourceRace.Race {
		if seen[race.DriverNumber] {
			continue
		}
		rec := m.newRecord(sourceRace, race)
		applyRaceResult(rec, race)
		records = append(records, rec)
	}

	return records, nil
}

func (m *RaceMerger) newRecord(sourceRace *datasource.RaceData, result datasource.SessionResult) *models.RaceRecord {
	return &models.RaceRecord{
		ID:           uuid.New(),
		Year:         sourceRace.Year,
		Round:        sourceRace.Round,
		EventName:    sourceRace.EventName,
		Circuit:      m.CanonicalCircuit(sourceRace.Circuit),
		Country:      sourceRace.Country,
		DriverNumber: result.DriverNumber,
		DriverCode:   strings.ToUpper(strings.TrimSpace(result.DriverCode)),
		DriverName:   strings.TrimSpace(result.DriverName),
		Team:         strings.TrimSpace(result.Team),
		Points:       decimal.Zero,
		CreatedAt:    time.Now().UTC(),
	}
}

func applyRaceResult(rec *models.RaceRecord, race datasource.SessionResult) {
	rec.RacePosition = race.Position
	rec.GridPosition = race.GridPosition
	rec.Points = race.Points
	rec.Status = race.Status
	rec.FastestLap = race.FastestLap
}

func (m *RaceMerger) parseLap(lap *string, driverCode string) *decimal.Decimal {
	if lap == nil || *lap == "" {
		return nil
	}
	seconds, err := ParseLapTime(*lap)
	if err != nil {
		m.logger.WithFields(logrus.Fields{
			"driver": driverCode,
			"lap":    *lap,
		}).Warn("Unparseable lap time, dropping")
		return nil
	}
	return &seconds
}

// CanonicalCircuit converts provider-specific circuit names to canonical
// format. Unknown circuits pass through trimmed.
func (m *RaceMerger) CanonicalCircuit(circuit string) string {
	trimmed := strings.TrimSpace(circuit)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := m.circuitNameMap[strings.ToUpper(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// ParseLapTime converts a lap-time string to decimal seconds. Accepted
// formats: "1:18.291", "18.291", "00:01:18.291" and the pandas timedelta
// rendering "0 days 00:01:18.291000".
func ParseLapTime(lap string) (decimal.Decimal, error) {
	s := strings.TrimSpace(lap)
	if idx := strings.Index(s, "days"); idx >= 0 {
		s = strings.TrimSpace(s[idx+len("days"):])
	}
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty lap time", models.ErrInvalidLapTime)
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return decimal.Zero, fmt.Errorf("%w: %q", models.ErrInvalidLapTime, lap)
	}

	total := decimal.Zero
	for _, part := range parts {
		value, err := decimal.NewFromString(part)
		if err != nil || value.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: %q", models.ErrInvalidLapTime, lap)
		}
		total = total.Mul(decimal.NewFromInt(60)).Add(value)
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: %q", models.ErrInvalidLapTime, lap)
	}
	return total, nil
}

// buildCircuitNameMap returns mapping of circuit name variations to canonical names
func buildCircuitNameMap() map[string]string {
	return map[string]string{
		"CIRCUIT DE MONACO":                        "Circuit de Monaco",
		"MONACO":                                   "Circuit de Monaco",
		"MONTE CARLO":                              "Circuit de Monaco",
		"SILVERSTONE":                              "Silverstone Circuit",
		"SILVERSTONE CIRCUIT":                      "Silverstone Circuit",
		"MONZA":                                    "Autodromo Nazionale di Monza",
		"AUTODROMO NAZIONALE DI MONZA":             "Autodromo Nazionale di Monza",
		"AUTODROMO NAZIONALE MONZA":                "Autodromo Nazionale di Monza",
		"SPA":                                      "Circuit de Spa-Francorchamps",
		"SPA-FRANCORCHAMPS":                        "Circuit de Spa-Francorchamps",
		"CIRCUIT DE SPA-FRANCORCHAMPS":             "Circuit de Spa-Francorchamps",
		"SUZUKA":                                   "Suzuka Circuit",
		"SUZUKA CIRCUIT":                           "Suzuka Circuit",
		"INTERLAGOS":                               "Autódromo José Carlos Pace",
		"AUTODROMO JOSE CARLOS PACE":               "Autódromo José Carlos Pace",
		"MARINA BAY":                               "Marina Bay Street Circuit",
		"MARINA BAY STREET CIRCUIT":                "Marina Bay Street Circuit",
		"RED BULL RING":                            "Red Bull Ring",
		"HUNGARORING":                              "Hungaroring",
		"ZANDVOORT":                                "Circuit Zandvoort",
		"CIRCUIT PARK ZANDVOORT":                   "Circuit Zandvoort",
		"CIRCUIT ZANDVOORT":                        "Circuit Zandvoort",
		"BAKU":                                     "Baku City Circuit",
		"BAKU CITY CIRCUIT":                        "Baku City Circuit",
		"JEDDAH":                                   "Jeddah Corniche Circuit",
		"JEDDAH CORNICHE CIRCUIT":                  "Jeddah Corniche Circuit",
		"ALBERT PARK":                              "Albert Park Grand Prix Circuit",
		"ALBERT PARK GRAND PRIX CIRCUIT":           "Albert Park Grand Prix Circuit",
		"CIRCUIT GILLES VILLENEUVE":                "Circuit Gilles Villeneuve",
		"MONTREAL":                                 "Circuit Gilles Villeneuve",
		"CIRCUIT OF THE AMERICAS":                  "Circuit of the Americas",
		"COTA":                                     "Circuit of the Americas",
		"YAS MARINA":                               "Yas Marina Circuit",
		"YAS MARINA CIRCUIT":                       "Yas Marina Circuit",
		"BAHRAIN INTERNATIONAL CIRCUIT":            "Bahrain International Circuit",
		"SAKHIR":                                   "Bahrain International Circuit",
		"CIRCUIT DE BARCELONA-CATALUNYA":           "Circuit de Barcelona-Catalunya",
		"CATALUNYA":                                "Circuit de Barcelona-Catalunya",
	}
}
