package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/salsabil-cell/F1-race-predictor/internal/config"
)

// Client is an HTTP client for the classifier service. It implements the
// predictor's Classifier capability: one feature vector in, one
// probability distribution over finishing positions out.
//
// The client holds no mutable state after construction and is safe for
// concurrent use.
type Client struct {
	client       *http.Client
	baseURL      string
	modelVersion string
	apiKey       string
	logger       *logrus.Logger
}

// NewClient creates a classifier service client from configuration.
func NewClient(cfg *config.MLServiceConfig, logger *logrus.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		baseURL:      cfg.URL,
		modelVersion: cfg.ModelVersion,
		apiKey:       cfg.APIKey,
		logger:       logger,
	}
}

// predictRequest is the classifier service request payload.
type predictRequest struct {
	Features     []float64 `json:"features"`
	ModelVersion string    `json:"model_version,omitempty"`
}

// predictResponse is the classifier service response payload.
type predictResponse struct {
	Probabilities []float64 `json:"probabilities"`
	ModelVersion  string    `json:"model_version"`
}

// Predict sends one feature vector to the classifier service and returns
// the position-probability distribution.
func (c *Client) Predict(ctx context.Context, features []float64) ([]float64, error) {
	start := time.Now()
	defer func() {
		classifierLatency.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(predictRequest{
		Features:     features,
		ModelVersion: c.modelVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/predict", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		classifierErrorsTotal.WithLabelValues("network").Inc()
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		classifierErrorsTotal.WithLabelValues("http_error").Inc()
		return nil, fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, string(respBody))
	}

	var predictResp predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&predictResp); err != nil {
		classifierErrorsTotal.WithLabelValues("decode").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if err := validateDistribution(predictResp.Probabilities); err != nil {
		classifierErrorsTotal.WithLabelValues("distribution").Inc()
		return nil, err
	}

	classifierPredictionsTotal.WithLabelValues("remote", "false").Inc()
	return predictResp.Probabilities, nil
}

// validateDistribution rejects empty or negative distributions. The sum is
// deliberately not checked: some classifier backends return unnormalized
// scores, and the arg-max consumer is insensitive to scale.
func validateDistribution(probs []float64) error {
	if len(probs) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidDistribution)
	}
	for i, p := range probs {
		if p < 0 {
			return fmt.Errorf("%w: negative probability at bucket %d", ErrInvalidDistribution, i)
		}
	}
	return nil
}

// HealthCheck checks classifier service health.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}
