package store

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/canonical/ratings/ratings"
)

// Memory is an in-process Store used by handler- and store-level
// tests that don't need a real database. It upholds the same
// uniqueness/upsert invariants as Postgres.
type Memory struct {
	mu sync.Mutex

	nextUserID int64
	users      map[string]*User // by client_hash

	nextVoteID int64
	votes      map[voteKey]*Vote

	categories map[string]map[ratings.Category]struct{}
}

type voteKey struct {
	clientHash   string
	snapID       string
	snapRevision int32
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users:      make(map[string]*User),
		votes:      make(map[voteKey]*Vote),
		categories: make(map[string]map[ratings.Category]struct{}),
	}
}

func (m *Memory) Close() {}

func (m *Memory) CreateOrSeen(_ context.Context, clientHash string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()

	if u, ok := m.users[clientHash]; ok {
		u.LastSeen = now
		return *u, nil
	}

	m.nextUserID++
	u := &User{ID: m.nextUserID, ClientHash: clientHash, Created: now, LastSeen: now}
	m.users[clientHash] = u

	return *u, nil
}

func (m *Memory) DeleteUser(_ context.Context, clientHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.users, clientHash)

	for k := range m.votes {
		if k.clientHash == clientHash {
			delete(m.votes, k)
		}
	}

	return nil
}

func (m *Memory) SaveVote(_ context.Context, clientHash string, vote VoteInput) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[clientHash]
	if !ok {
		return 0, errors.Errorf("no user found for client hash while saving vote")
	}

	key := voteKey{clientHash: clientHash, snapID: vote.SnapID, snapRevision: vote.SnapRevision}

	if existing, ok := m.votes[key]; ok {
		existing.VoteUp = vote.VoteUp
		return 1, nil
	}

	m.nextVoteID++
	m.votes[key] = &Vote{
		ID:           m.nextVoteID,
		UserID:       u.ID,
		SnapID:       vote.SnapID,
		SnapRevision: vote.SnapRevision,
		VoteUp:       vote.VoteUp,
		Created:      time.Now(),
	}

	return 1, nil
}

func (m *Memory) VotesByClientAndOptionalSnap(_ context.Context, clientHash string, snapID *string) ([]Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Vote
	for k, v := range m.votes {
		if k.clientHash != clientHash {
			continue
		}
		if snapID != nil && k.snapID != *snapID {
			continue
		}
		out = append(out, *v)
	}

	return out, nil
}

func (m *Memory) SummaryBySnapID(_ context.Context, snapID string) (ratings.VoteSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.summarize(func(v *Vote) bool { return v.SnapID == snapID }, snapID), nil
}

func (m *Memory) SummariesForTimeframe(_ context.Context, timeframe ratings.Timeframe, category *ratings.Category) ([]ratings.VoteSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := cutoffFor(timeframe)

	bySnap := make(map[string]bool)
	for _, v := range m.votes {
		if !cutoff.IsZero() && v.Created.Before(cutoff) {
			continue
		}
		if category != nil && !m.hasCategoryLocked(v.SnapID, *category) {
			continue
		}
		bySnap[v.SnapID] = true
	}

	var out []ratings.VoteSummary
	for snapID := range bySnap {
		out = append(out, m.summarize(func(v *Vote) bool {
			return v.SnapID == snapID && (cutoff.IsZero() || !v.Created.Before(cutoff))
		}, snapID))
	}

	return out, nil
}

func (m *Memory) SummariesForSnapIDs(_ context.Context, ids []string, timeframe ratings.Timeframe) ([]ratings.VoteSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := cutoffFor(timeframe)

	var out []ratings.VoteSummary
	for _, snapID := range ids {
		out = append(out, m.summarize(func(v *Vote) bool {
			return v.SnapID == snapID && (cutoff.IsZero() || !v.Created.Before(cutoff))
		}, snapID))
	}

	return out, nil
}

// summarize must be called with m.mu held.
func (m *Memory) summarize(match func(*Vote) bool, snapID string) ratings.VoteSummary {
	s := ratings.VoteSummary{SnapID: snapID}
	for _, v := range m.votes {
		if !match(v) {
			continue
		}
		s.TotalVotes++
		if v.VoteUp {
			s.PositiveVotes++
		}
	}
	return s
}

func (m *Memory) SnapHasCategories(_ context.Context, snapID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.hasCategoryLocked(snapID, -1), nil
}

// hasCategoryLocked reports whether snapID has any category row, or
// (when want != -1) specifically the requested one. Must be called
// with m.mu held.
func (m *Memory) hasCategoryLocked(snapID string, want ratings.Category) bool {
	cats, ok := m.categories[snapID]
	if !ok {
		return false
	}
	if want == -1 {
		return len(cats) > 0
	}
	_, ok = cats[want]
	return ok
}

func (m *Memory) SetCategoriesForSnap(_ context.Context, snapID string, categories []ratings.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.categories[snapID] == nil {
		m.categories[snapID] = make(map[ratings.Category]struct{})
	}
	for _, cat := range categories {
		m.categories[snapID][cat] = struct{}{}
	}

	return nil
}

func cutoffFor(timeframe ratings.Timeframe) time.Time {
	switch timeframe {
	case ratings.TimeframeWeek:
		return time.Now().AddDate(0, 0, -7)
	case ratings.TimeframeMonth:
		return time.Now().AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}
