package ml

import (
	"context"
	"time"
)

// CachedClient wraps a classifier client with a prediction cache. Identical
// feature vectors within the TTL are served without a service round trip.
type CachedClient struct {
	client *Client
	cache  *PredictionCache
}

// NewCachedClient wraps client with a prediction cache using the given TTL.
func NewCachedClient(client *Client, ttl time.Duration) *CachedClient {
	return &CachedClient{
		client: client,
		cache:  NewPredictionCache(ttl),
	}
}

// Predict returns a cached distribution when one exists, otherwise asks the
// classifier service and caches the result. Errors are never cached.
func (c *CachedClient) Predict(ctx context.Context, features []float64) ([]float64, error) {
	if probs, found := c.cache.Get(features, c.client.modelVersion); found {
		cacheHitsTotal.Inc()
		classifierPredictionsTotal.WithLabelValues("remote", "true").Inc()
		return probs, nil
	}
	cacheMissesTotal.Inc()

	probs, err := c.client.Predict(ctx, features)
	if err != nil {
		return nil, err
	}
	c.cache.Set(features, c.client.modelVersion, probs)
	return probs, nil
}

// HealthCheck checks the underlying classifier service.
func (c *CachedClient) HealthCheck(ctx context.Context) error {
	return c.client.HealthCheck(ctx)
}

// Flush drops all cached predictions.
func (c *CachedClient) Flush() {
	c.cache.Flush()
}
