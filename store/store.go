// Package store implements the persistence layer (§4.2): typed queries
// over users, votes and snap_categories, with the upsert and
// aggregation semantics the specification requires.
package store

import (
	"context"
	"time"

	"github.com/canonical/ratings/ratings"
)

// User is a row of the users table (§3).
type User struct {
	ID         int64
	ClientHash string
	Created    time.Time
	LastSeen   time.Time
}

// Vote is a row of the votes table (§3).
type Vote struct {
	ID           int64
	UserID       int64
	SnapID       string
	SnapRevision int32
	VoteUp       bool
	Created      time.Time
}

// Store is the persistence contract consumed by the coordinator and
// the service handlers. Implementations must uphold the
// uniqueness/upsert invariants in §3 and §4.2.
type Store interface {
	// CreateOrSeen upserts a user by client_hash: on insert it sets
	// Created and LastSeen to now; on conflict it refreshes LastSeen.
	CreateOrSeen(ctx context.Context, clientHash string) (User, error)

	// DeleteUser idempotently deletes a user by client_hash, cascading
	// to their votes.
	DeleteUser(ctx context.Context, clientHash string) error

	// SaveVote upserts on (user_id, snap_id, snap_revision), resolving
	// user_id from clientHash in the same statement, overwriting
	// vote_up on conflict. Returns the number of rows affected (always
	// 1 on success).
	SaveVote(ctx context.Context, clientHash string, vote VoteInput) (int64, error)

	// VotesByClientAndOptionalSnap returns a user's votes, optionally
	// filtered to a single snap.
	VotesByClientAndOptionalSnap(ctx context.Context, clientHash string, snapID *string) ([]Vote, error)

	// SummaryBySnapID returns the aggregate for one snap, or a
	// zero-valued summary if it has no votes.
	SummaryBySnapID(ctx context.Context, snapID string) (ratings.VoteSummary, error)

	// SummariesForTimeframe aggregates over all snaps, restricted to
	// the given timeframe and, if non-nil, to snaps tagged with category.
	SummariesForTimeframe(ctx context.Context, timeframe ratings.Timeframe, category *ratings.Category) ([]ratings.VoteSummary, error)

	// SummariesForSnapIDs aggregates over a caller-supplied id list,
	// restricted to the given timeframe.
	SummariesForSnapIDs(ctx context.Context, ids []string, timeframe ratings.Timeframe) ([]ratings.VoteSummary, error)

	// SnapHasCategories reports whether snap_categories already has
	// rows for snapID.
	SnapHasCategories(ctx context.Context, snapID string) (bool, error)

	// SetCategoriesForSnap adds the given category rows for a snap.
	// Rows already present are kept; none are removed.
	SetCategoriesForSnap(ctx context.Context, snapID string, categories []ratings.Category) error

	// Close releases the underlying connection pool.
	Close()
}

// VoteInput is the argument shape for SaveVote; it omits UserID because
// the store resolves it from the client hash.
type VoteInput struct {
	SnapID       string
	SnapRevision int32
	VoteUp       bool
}
