package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics for one ingestion run
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	TotalRaces       int
	SuccessfulRaces  int
	TotalRecords     int
	Duplicates       int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.TotalRaces = 0
	m.SuccessfulRaces = 0
	m.TotalRecords = 0
	m.Duplicates = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordRace increments successful race count
func (m *IngestionMetrics) RecordRace() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuccessfulRaces++
}

// RecordRecords adds to the persisted record count
func (m *IngestionMetrics) RecordRecords(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TotalRecords += n
}

// RecordDuplicate increments duplicate count
func (m *IngestionMetrics) RecordDuplicate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duplicates++
}

// RecordError increments error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// RecordValidationError increments validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// Snapshot returns a copy safe to read without holding the lock
func (m *IngestionMetrics) Snapshot() IngestionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return IngestionMetrics{
		StartTime:        m.StartTime,
		Duration:         m.Duration,
		TotalRaces:       m.TotalRaces,
		SuccessfulRaces:  m.SuccessfulRaces,
		TotalRecords:     m.TotalRecords,
		Duplicates:       m.Duplicates,
		ValidationErrors: m.ValidationErrors,
		Errors:           m.Errors,
	}
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	successRate := float64(0)
	if m.TotalRaces > 0 {
		successRate = float64(m.SuccessfulRaces) / float64(m.TotalRaces) * 100
	}

	return fmt.Sprintf(
		"IngestionMetrics{Total=%d, Successful=%d (%.1f%%), Records=%d, Duplicates=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.TotalRaces,
		m.SuccessfulRaces,
		successRate,
		m.TotalRecords,
		m.Duplicates,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
