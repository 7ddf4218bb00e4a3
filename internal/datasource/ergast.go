package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	ergastSourceName = "ergast"

	// DefaultErgastBaseURL is the jolpica mirror of the retired Ergast API.
	DefaultErgastBaseURL = "https://api.jolpi.ca/ergast/f1"

	// ergastPageLimit covers a full grid in one page.
	ergastPageLimit = 100
)

// ErgastClient implements DataSource against the Ergast-compatible REST API.
// Ergast serializes every numeric field as a string, so the response types
// keep string fields and conversion happens once, in the converters.
type ErgastClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	enabled    bool
	logger     *logrus.Logger
}

// NewErgastClient creates a new Ergast API client. An empty baseURL selects
// the public jolpica mirror.
func NewErgastClient(httpClient *RateLimitedHTTPClient, baseURL string, enabled bool, logger *logrus.Logger) *ErgastClient {
	if baseURL == "" {
		baseURL = DefaultErgastBaseURL
	}
	return &ErgastClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		enabled:    enabled,
		logger:     logger,
	}
}

type ergastResponse struct {
	MRData struct {
		RaceTable struct {
			Season string       `json:"season"`
			Races  []ergastRace `json:"Races"`
		} `json:"RaceTable"`
	} `json:"MRData"`
}

type ergastRace struct {
	Season   string `json:"season"`
	Round    string `json:"round"`
	RaceName string `json:"raceName"`
	Circuit  struct {
		CircuitName string `json:"circuitName"`
		Location    struct {
			Locality string `json:"locality"`
			Country  string `json:"country"`
		} `json:"Location"`
	} `json:"Circuit"`
	Date              string             `json:"date"`
	QualifyingResults []ergastQualifying `json:"QualifyingResults"`
	Results           []ergastResult     `json:"Results"`
}

type ergastDriver struct {
	PermanentNumber string `json:"permanentNumber"`
	Code            string `json:"code"`
	GivenName       string `json:"givenName"`
	FamilyName      string `json:"familyName"`
}

type ergastConstructor struct {
	Name string `json:"name"`
}

type ergastQualifying struct {
	Number      string            `json:"number"`
	Position    string            `json:"position"`
	Driver      ergastDriver      `json:"Driver"`
	Constructor ergastConstructor `json:"Constructor"`
	Q1          string            `json:"Q1"`
	Q2          string            `json:"Q2"`
	Q3          string            `json:"Q3"`
}

type ergastResult struct {
	Number      string            `json:"number"`
	Position    string            `json:"position"`
	Points      string            `json:"points"`
	Grid        string            `json:"grid"`
	Status      string            `json:"status"`
	Driver      ergastDriver      `json:"Driver"`
	Constructor ergastConstructor `json:"Constructor"`
	FastestLap  *struct {
		Rank string `json:"rank"`
	} `json:"FastestLap"`
}

// FetchSeason retrieves every race of a season that has published results.
// Races without a result yet (future rounds) are skipped.
func (c *ErgastClient) FetchSeason(ctx context.Context, year int) ([]RaceData, error) {
	if !c.enabled {
		return nil, NewDataSourceError(ergastSourceName, ErrCodeDisabled, "data source is disabled", ErrSourceDisabled)
	}

	schedule, err := c.fetch(ctx, fmt.Sprintf("%s/%d.json?limit=%d", c.baseURL, year, ergastPageLimit))
	if err != nil {
		return nil, err
	}

	races := make([]RaceData, 0, len(schedule.MRData.RaceTable.Races))
	for _, scheduled := range schedule.MRData.RaceTable.Races {
		round, err := strconv.Atoi(scheduled.Round)
		if err != nil {
			continue
		}

		race, err := c.FetchRace(ctx, year, round)
		if err != nil {
			var dsErr DataSourceError
			if errors.As(err, &dsErr) && dsErr.Code == ErrCodeNotFound {
				c.logger.WithFields(logrus.Fields{
					"year":  year,
					"round": round,
				}).Debug("No results published yet, skipping round")
				continue
			}
			return nil, err
		}
		races = append(races, *race)
	}

	return races, nil
}

// FetchRace retrieves one race weekend, combining the qualifying and race
// classification endpoints.
func (c *ErgastClient) FetchRace(ctx context.Context, year, round int) (*RaceData, error) {
	if !c.enabled {
		return nil, NewDataSourceError(ergastSourceName, ErrCodeDisabled, "data source is disabled", ErrSourceDisabled)
	}

	quali, err := c.fetch(ctx, fmt.Sprintf("%s/%d/%d/qualifying.json?limit=%d", c.baseURL, year, round, ergastPageLimit))
	if err != nil {
		return nil, err
	}
	results, err := c.fetch(ctx, fmt.Sprintf("%s/%d/%d/results.json?limit=%d", c.baseURL, year, round, ergastPageLimit))
	if err != nil {
		return nil, err
	}

	raceTable := results.MRData.RaceTable.Races
	if len(raceTable) == 0 {
		return nil, NewDataSourceError(ergastSourceName, ErrCodeNotFound,
			fmt.Sprintf("no results for %d round %d", year, round), ErrNotFound)
	}
	race := raceTable[0]

	data := &RaceData{
		Year:      year,
		Round:     round,
		EventName: race.RaceName,
		Circuit:   race.Circuit.CircuitName,
		Country:   race.Circuit.Location.Country,
		Race:      convertResults(race.Results),
		FetchedAt: time.Now().UTC(),
	}
	if date, err := time.Parse("2006-01-02", race.Date); err == nil {
		data.Date = date
	}
	if qualiRaces := quali.MRData.RaceTable.Races; len(qualiRaces) > 0 {
		data.Qualifying = convertQualifying(qualiRaces[0].QualifyingResults)
	}

	c.logger.WithFields(logrus.Fields{
		"year":       year,
		"round":      round,
		"event":      data.EventName,
		"qualifying": len(data.Qualifying),
		"race":       len(data.Race),
	}).Debug("Fetched race weekend")

	return data, nil
}

func (c *ErgastClient) fetch(ctx context.Context, url string) (*ergastResponse, error) {
	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, NewDataSourceError(ergastSourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewDataSourceError(ergastSourceName, ErrCodeNotFound, "resource not found", ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewDataSourceError(ergastSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewDataSourceError(ergastSourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var parsed ergastResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, NewDataSourceError(ergastSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}
	return &parsed, nil
}

func convertQualifying(results []ergastQualifying) []SessionResult {
	converted := make([]SessionResult, 0, len(results))
	for _, r := range results {
		sr := SessionResult{
			DriverNumber: atoiOrZero(r.Number),
			DriverCode:   r.Driver.Code,
			DriverName:   r.Driver.GivenName + " " + r.Driver.FamilyName,
			Team:         r.Constructor.Name,
			Position:     atoiPtr(r.Position),
			Q1:           nonEmptyPtr(r.Q1),
			Q2:           nonEmptyPtr(r.Q2),
			Q3:           nonEmptyPtr(r.Q3),
		}
		converted = append(converted, sr)
	}
	return converted
}

func convertResults(results []ergastResult) []SessionResult {
	converted := make([]SessionResult, 0, len(results))
	for _, r := range results {
		points, err := decimal.NewFromString(r.Points)
		if err != nil {
			points = decimal.Zero
		}
		sr := SessionResult{
			DriverNumber: atoiOrZero(r.Number),
			DriverCode:   r.Driver.Code,
			DriverName:   r.Driver.GivenName + " " + r.Driver.FamilyName,
			Team:         r.Constructor.Name,
			Position:     atoiPtr(r.Position),
			GridPosition: atoiPtr(r.Grid),
			Points:       points,
			Status:       r.Status,
			FastestLap:   r.FastestLap != nil && r.FastestLap.Rank == "1",
		}
		converted = append(converted, sr)
	}
	return converted
}

// Name returns the name of the data source
func (c *ErgastClient) Name() string {
	return ergastSourceName
}

// IsEnabled returns whether this data source is currently enabled
func (c *ErgastClient) IsEnabled() bool {
	return c.enabled
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoiPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func nonEmptyPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
