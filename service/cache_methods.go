package service

import (
	"context"

	"github.com/canonical/ratings/ratings"
)

// summaryCached returns the cached VoteSummary for snapID, filling it
// via fill on a miss, with concurrent misses for the same snapID
// collapsed to one call.
func (c *ResponseCaches) summaryCached(ctx context.Context, snapID string, fill func(context.Context) (ratings.VoteSummary, error)) (ratings.VoteSummary, error) {
	if c.disabled {
		return fill(ctx)
	}
	return c.summaries.GetOrFill(ctx, snapID, snapID, fill)
}

// chartCached returns the cached Chart for (category, timeframe),
// filling it via fill on a miss, with concurrent misses collapsed.
func (c *ResponseCaches) chartCached(ctx context.Context, timeframe ratings.Timeframe, category *ratings.Category, fill func(context.Context) (ratings.Chart, error)) (ratings.Chart, error) {
	key := chartCacheKey{timeframe: timeframe}
	if category != nil {
		key.category = *category
		key.hasCat = true
	}

	if c.disabled {
		return fill(ctx)
	}

	return c.charts.GetOrFill(ctx, key, key.String(), fill)
}
