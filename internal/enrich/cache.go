package enrich

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/rbaumann/culpa/internal/model"
)

// RunCache memoizes enrichment records for the duration of a single
// analysis run. Each run gets its own instance, so concurrent runs never
// observe each other's lookups. All statuses are cached, including
// failures: one bounded attempt per concept per run, no retries.
type RunCache struct {
	cache *gocache.Cache
}

// NewRunCache creates a cache for one run.
func NewRunCache(ttl time.Duration) *RunCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RunCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// cacheKey hashes a normalized concept string.
func cacheKey(concept string) string {
	hash := sha256.Sum256([]byte(concept))
	return "culpa:v1:" + hex.EncodeToString(hash[:])
}

// Get retrieves the record for a normalized concept, if present.
func (c *RunCache) Get(concept string) (model.EnrichmentRecord, bool) {
	if val, found := c.cache.Get(cacheKey(concept)); found {
		return val.(model.EnrichmentRecord), true
	}
	return model.EnrichmentRecord{}, false
}

// Set stores a record under its normalized concept.
func (c *RunCache) Set(concept string, rec model.EnrichmentRecord) {
	c.cache.Set(cacheKey(concept), rec, gocache.DefaultExpiration)
}

// Reset drops all cached records.
func (c *RunCache) Reset() {
	c.cache.Flush()
}
