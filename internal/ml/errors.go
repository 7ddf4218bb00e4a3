// Package ml provides the HTTP client for the position classifier service.
package ml

import "errors"

var (
	// ErrServiceUnavailable indicates the classifier service is unreachable
	ErrServiceUnavailable = errors.New("classifier service unavailable")

	// ErrInvalidDistribution indicates the returned probability distribution is unusable
	ErrInvalidDistribution = errors.New("invalid probability distribution")

	// ErrInvalidResponse indicates a malformed response from the classifier service
	ErrInvalidResponse = errors.New("invalid response from classifier service")

	// ErrRequestFailed indicates the prediction request was rejected
	ErrRequestFailed = errors.New("prediction request failed")
)
