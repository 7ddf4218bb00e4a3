package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DataSource defines the interface for fetching historical race data from
// external providers
type DataSource interface {
	// FetchSeason retrieves every completed race of the given season
	FetchSeason(ctx context.Context, year int) ([]RaceData, error)

	// FetchRace retrieves one race weekend by season and round number
	FetchRace(ctx context.Context, year, round int) (*RaceData, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// RaceData represents one normalized race weekend from any data source
type RaceData struct {
	Year       int             `json:"year"`
	Round      int             `json:"round"`
	EventName  string          `json:"event_name"` // Grand Prix name (e.g., "Monaco Grand Prix")
	Circuit    string          `json:"circuit"`    // Circuit name
	Country    string          `json:"country"`
	Date       time.Time       `json:"date"` // Race day UTC
	Qualifying []SessionResult `json:"qualifying"`
	Race       []SessionResult `json:"race"`
	FetchedAt  time.Time       `json:"fetched_at"` // When data was fetched
}

// SessionResult represents one driver's classification in a single session.
// Lap times stay in the provider's "m:ss.mmm" string form here; the ingestion
// merger parses them.
type SessionResult struct {
	DriverNumber int             `json:"driver_number"`
	DriverCode   string          `json:"driver_code"` // Three-letter abbreviation (e.g., "VER")
	DriverName   string          `json:"driver_name"`
	Team         string          `json:"team"`
	Position     *int            `json:"position"`      // Classification, nil if not classified
	GridPosition *int            `json:"grid_position"` // Race sessions only
	Q1           *string         `json:"q1,omitempty"`
	Q2           *string         `json:"q2,omitempty"`
	Q3           *string         `json:"q3,omitempty"`
	Points       decimal.Decimal `json:"points"`
	Status       string          `json:"status"` // "Finished", "+1 Lap", retirement cause
	FastestLap   bool            `json:"fastest_lap"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeDisabled             = "source_disabled"
)

var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrNotFound          = errors.New("race data not found")
	ErrInvalidData       = errors.New("invalid data format")
	ErrSourceDisabled    = errors.New("data source disabled")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
