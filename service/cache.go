package service

import (
	"fmt"
	"time"

	"github.com/canonical/ratings/cache"
	"github.com/canonical/ratings/ratings"
)

// responseCacheTTL is the fixed 24h freshness window §4.8 specifies
// for both the summary and chart response caches.
const responseCacheTTL = 24 * time.Hour

// chartCacheKey is the (category, timeframe) pair §4.8 caches
// GetChart results under.
type chartCacheKey struct {
	category  ratings.Category
	hasCat    bool
	timeframe ratings.Timeframe
}

func (k chartCacheKey) String() string {
	return fmt.Sprintf("%d:%v:%d", k.timeframe, k.hasCat, k.category)
}

// ResponseCaches bundles the two memoization layers from §4.8. Both
// are opt-outable (build with NewDisabledResponseCaches) for tests that
// want to observe every call reach the store directly.
type ResponseCaches struct {
	summaries *cache.TTLCache[string, ratings.VoteSummary]
	charts    *cache.TTLCache[chartCacheKey, ratings.Chart]
	disabled  bool
}

// NewResponseCaches builds the production (TTL-backed) caches.
func NewResponseCaches() *ResponseCaches {
	return &ResponseCaches{
		summaries: cache.New[string, ratings.VoteSummary](0, responseCacheTTL),
		charts:    cache.New[chartCacheKey, ratings.Chart](0, responseCacheTTL),
	}
}

// NewDisabledResponseCaches builds a pass-through that always calls
// fill, for tests that need to observe every store round trip.
func NewDisabledResponseCaches() *ResponseCaches {
	return &ResponseCaches{disabled: true}
}
