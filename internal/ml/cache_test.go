package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionCacheRoundTrip(t *testing.T) {
	cache := NewPredictionCache(time.Minute)
	features := []float64{1, 0.5, 0.5, 1, 25, 1}

	_, found := cache.Get(features, "v1")
	assert.False(t, found)

	cache.Set(features, "v1", []float64{0.2, 0.8})

	probs, found := cache.Get(features, "v1")
	require.True(t, found)
	assert.Equal(t, []float64{0.2, 0.8}, probs)
}

func TestPredictionCacheKeyedByModelVersion(t *testing.T) {
	cache := NewPredictionCache(time.Minute)
	features := []float64{1, 0.5}

	cache.Set(features, "v1", []float64{1})

	_, found := cache.Get(features, "v2")
	assert.False(t, found, "a new model version must not see old entries")
}

func TestPredictionCacheDistinguishesFeatureVectors(t *testing.T) {
	cache := NewPredictionCache(time.Minute)

	cache.Set([]float64{1, 2}, "v1", []float64{1})

	_, found := cache.Get([]float64{1, 2.5}, "v1")
	assert.False(t, found)

	// A boundary shift must not alias: [1,2]+[3] vs [1]+[2,3] style collisions.
	cache.Set([]float64{12}, "v1", []float64{0.5})
	_, found = cache.Get([]float64{1, 2}, "v1")
	assert.True(t, found)
}

func TestCachedClientServesRepeatsFromCache(t *testing.T) {
	var calls atomic.Int64
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(predictResponse{Probabilities: []float64{0.3, 0.7}})
	}))
	cached := NewCachedClient(client, time.Minute)

	features := []float64{5, 0.9, 0.8, 1, 30, 1}
	for i := 0; i < 3; i++ {
		probs, err := cached.Predict(context.Background(), features)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.3, 0.7}, probs)
	}
	assert.Equal(t, int64(1), calls.Load())
}

func TestCachedClientDoesNotCacheErrors(t *testing.T) {
	var calls atomic.Int64
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	cached := NewCachedClient(client, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := cached.Predict(context.Background(), []float64{1})
		require.Error(t, err)
	}
	assert.Equal(t, int64(2), calls.Load())
}

func TestCachedClientFlush(t *testing.T) {
	var calls atomic.Int64
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(predictResponse{Probabilities: []float64{1}})
	}))
	cached := NewCachedClient(client, time.Minute)

	features := []float64{1}
	_, err := cached.Predict(context.Background(), features)
	require.NoError(t, err)

	cached.Flush()

	_, err = cached.Predict(context.Background(), features)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}
