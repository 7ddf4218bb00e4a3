package models

import "errors"

// Custom errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateRecord  = errors.New("race record already exists")
	ErrUnknownDriver    = errors.New("unknown driver code")
	ErrInvalidLapTime   = errors.New("invalid lap time")
	ErrInvalidRaceRound = errors.New("invalid season round")
)
