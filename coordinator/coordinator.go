// Package coordinator implements the category-update coordinator
// (§4.4): a single-flight, fingerprint-keyed mechanism that prevents
// duplicate external catalog lookups when multiple concurrent votes
// arrive for the same, previously-uncategorized snap.
//
// This is deliberately not golang.org/x/sync/singleflight: a waiter
// here must survive its own cancellation without affecting the leader
// (§5, §9), and a waiter never retries the lookup itself — it only
// ever observes the leader's outcome. singleflight's Do ties a
// caller's cancellation to the shared call in a way that doesn't give
// us that guarantee, so the in-flight map and broadcast handle are
// hand-rolled here instead.
package coordinator

import (
	"context"
	"sync"

	"github.com/canonical/ratings/catalog"
	"github.com/canonical/ratings/log"
	"github.com/canonical/ratings/ratings"
	"github.com/canonical/ratings/store"
)

// categoryStore is the subset of store.Store the coordinator needs.
type categoryStore interface {
	SnapHasCategories(ctx context.Context, snapID string) (bool, error)
	SetCategoriesForSnap(ctx context.Context, snapID string, categories []ratings.Category) error
}

var _ categoryStore = store.Store(nil)

// categoryFetcher is the subset of catalog.Client the coordinator needs.
type categoryFetcher interface {
	Categories(ctx context.Context, snapID string) ([]ratings.Category, error)
}

var _ categoryFetcher = (*catalog.Client)(nil)

// handle is the broadcast primitive shared between a leader and its
// waiters for one in-flight snap_id. Closing done wakes every waiter;
// it survives any individual waiter dropping out because closing a
// channel is a broadcast, not a point-to-point send.
type handle struct {
	done chan struct{}
}

// Coordinator is the process-wide single-flight category updater. It
// is threaded through handlers as an explicit value (per §9's design
// note against ambient globals), not referenced through package state.
type Coordinator struct {
	store   categoryStore
	catalog categoryFetcher

	mu       sync.Mutex
	inFlight map[string]*handle
}

// New constructs a Coordinator over the given store and catalog client.
func New(store categoryStore, catalog categoryFetcher) *Coordinator {
	return &Coordinator{
		store:    store,
		catalog:  catalog,
		inFlight: make(map[string]*handle),
	}
}

// EnsureCategories implements the algorithm in §4.4. It returns once
// snapID is known to have categories (or once a best-effort attempt to
// populate them has finished); a failure to populate categories is
// logged, never returned, per §4.4 step 5 and §7's TransientIgnored row.
func (c *Coordinator) EnsureCategories(ctx context.Context, snapID string) {
	has, err := c.store.SnapHasCategories(ctx, snapID)
	if err != nil {
		log.Warn().Str("snap_id", snapID).Err(err).Msg("failed to check existing categories")
		return
	}
	if has {
		return
	}

	c.mu.Lock()
	if h, ok := c.inFlight[snapID]; ok {
		c.mu.Unlock()

		// Waiter path: wait for the leader's signal, never retry.
		select {
		case <-h.done:
		case <-ctx.Done():
		}
		return
	}

	h := &handle{done: make(chan struct{})}
	c.inFlight[snapID] = h
	c.mu.Unlock()

	// Leader path: runs to completion regardless of this call's own
	// context, so that a caller dropping out never strands waiters
	// that are still blocked on h.done.
	c.lead(snapID, h)
}

// lead performs the catalog lookup and persists the result, using a
// context independent of the triggering caller's, then wakes every
// waiter and removes the in-flight entry. It never holds c.mu across
// the catalog I/O or the store write.
func (c *Coordinator) lead(snapID string, h *handle) {
	defer func() {
		c.mu.Lock()
		delete(c.inFlight, snapID)
		c.mu.Unlock()

		close(h.done)
	}()

	leadCtx := context.Background()

	categories, err := c.catalog.Categories(leadCtx, snapID)
	if err != nil {
		log.Warn().Str("snap_id", snapID).Err(err).Msg("catalog lookup failed while ensuring categories")
		return
	}

	if err := c.store.SetCategoriesForSnap(leadCtx, snapID, categories); err != nil {
		log.Warn().Str("snap_id", snapID).Err(err).Msg("failed to persist categories")
		return
	}
}

// EnsureCategoriesAsync fires EnsureCategories in its own goroutine so
// the caller (e.g. the Vote handler) never blocks on it. This is the
// shape service handlers use per §4.7's "opportunistic" update note.
func (c *Coordinator) EnsureCategoriesAsync(snapID string) {
	go c.EnsureCategories(context.Background(), snapID)
}
