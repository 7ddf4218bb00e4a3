package ml

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// PredictionCache memoizes classifier responses. Cache keys combine the
// feature vector and the model version, so deploying a new model
// invalidates every prior entry without a flush.
type PredictionCache struct {
	cache *gocache.Cache
}

// NewPredictionCache creates a cache with the given entry TTL.
func NewPredictionCache(ttl time.Duration) *PredictionCache {
	return &PredictionCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached distribution for a feature vector, if present.
func (c *PredictionCache) Get(features []float64, modelVersion string) ([]float64, bool) {
	v, found := c.cache.Get(cacheKey(features, modelVersion))
	if !found {
		return nil, false
	}
	probs, ok := v.([]float64)
	return probs, ok
}

// Set stores a distribution under its feature vector and model version.
func (c *PredictionCache) Set(features []float64, modelVersion string, probs []float64) {
	c.cache.Set(cacheKey(features, modelVersion), probs, gocache.DefaultExpiration)
}

// Flush drops every cached entry.
func (c *PredictionCache) Flush() {
	c.cache.Flush()
}

// ItemCount returns the number of cached entries, expired ones included.
func (c *PredictionCache) ItemCount() int {
	return c.cache.ItemCount()
}

func cacheKey(features []float64, modelVersion string) string {
	var b strings.Builder
	b.WriteString(modelVersion)
	for _, f := range features {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return fmt.Sprintf("pred:%s", b.String())
}
