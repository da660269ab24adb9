package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/ratings/ratings"
)

func TestCreateOrSeen_Idempotent(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	first, err := m.CreateOrSeen(ctx, "a-hash")
	require.NoError(t, err)

	second, err := m.CreateOrSeen(ctx, "a-hash")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, !second.LastSeen.Before(first.LastSeen))
}

func TestSaveVote_Idempotence(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	_, err := m.CreateOrSeen(ctx, "hash-1")
	require.NoError(t, err)

	input := VoteInput{SnapID: "snap-a", SnapRevision: 1, VoteUp: true}

	_, err = m.SaveVote(ctx, "hash-1", input)
	require.NoError(t, err)
	_, err = m.SaveVote(ctx, "hash-1", input)
	require.NoError(t, err)

	summary, err := m.SummaryBySnapID(ctx, "snap-a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.TotalVotes)
	assert.EqualValues(t, 1, summary.PositiveVotes)
}

func TestSaveVote_Replacement(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	_, err := m.CreateOrSeen(ctx, "hash-1")
	require.NoError(t, err)

	_, err = m.SaveVote(ctx, "hash-1", VoteInput{SnapID: "snap-a", SnapRevision: 1, VoteUp: true})
	require.NoError(t, err)

	_, err = m.SaveVote(ctx, "hash-1", VoteInput{SnapID: "snap-a", SnapRevision: 1, VoteUp: false})
	require.NoError(t, err)

	summary, err := m.SummaryBySnapID(ctx, "snap-a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.TotalVotes)
	assert.EqualValues(t, 0, summary.PositiveVotes)

	votes, err := m.VotesByClientAndOptionalSnap(ctx, "hash-1", nil)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.False(t, votes[0].VoteUp)
}

func TestSummaryBySnapID_NoVotesReturnsZeroValue(t *testing.T) {
	t.Parallel()

	m := NewMemory()

	summary, err := m.SummaryBySnapID(context.Background(), "unknown-snap")
	require.NoError(t, err)
	assert.Equal(t, "unknown-snap", summary.SnapID)
	assert.Zero(t, summary.TotalVotes)
}

func TestSummariesForTimeframe_CategoryIsolation(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	_, err := m.CreateOrSeen(ctx, "hash-1")
	require.NoError(t, err)

	for i := int32(0); i < 25; i++ {
		_, err := m.SaveVote(ctx, "hash-1", VoteInput{SnapID: "dev-snap", SnapRevision: i, VoteUp: true})
		require.NoError(t, err)
	}

	require.NoError(t, m.SetCategoriesForSnap(ctx, "dev-snap", []ratings.Category{ratings.CategoryDevelopment}))

	dev := ratings.CategoryDevelopment
	art := ratings.CategoryArtAndDesign

	devSummaries, err := m.SummariesForTimeframe(ctx, ratings.TimeframeUnspecified, &dev)
	require.NoError(t, err)
	assert.Len(t, devSummaries, 1)

	artSummaries, err := m.SummariesForTimeframe(ctx, ratings.TimeframeUnspecified, &art)
	require.NoError(t, err)
	assert.Len(t, artSummaries, 0)
}

func TestSummariesForTimeframe_MonthExcludesOldVotes(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	_, err := m.CreateOrSeen(ctx, "hash-1")
	require.NoError(t, err)

	for i := int32(0); i < 101; i++ {
		_, err := m.SaveVote(ctx, "hash-1", VoteInput{SnapID: "old-snap", SnapRevision: i, VoteUp: true})
		require.NoError(t, err)
	}

	// Time-warp every vote's created timestamp back two months.
	for k, v := range m.votes {
		if k.snapID == "old-snap" {
			v.Created = v.Created.AddDate(0, -2, 0)
		}
	}

	monthSummaries, err := m.SummariesForTimeframe(ctx, ratings.TimeframeMonth, nil)
	require.NoError(t, err)
	assert.NotContains(t, snapIDs(monthSummaries), "old-snap")

	allSummaries, err := m.SummariesForTimeframe(ctx, ratings.TimeframeUnspecified, nil)
	require.NoError(t, err)
	assert.Contains(t, snapIDs(allSummaries), "old-snap")
}

func TestDeleteUser_CascadesVotesAndIsIdempotent(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	_, err := m.CreateOrSeen(ctx, "hash-1")
	require.NoError(t, err)
	_, err = m.SaveVote(ctx, "hash-1", VoteInput{SnapID: "snap-a", SnapRevision: 0, VoteUp: true})
	require.NoError(t, err)

	require.NoError(t, m.DeleteUser(ctx, "hash-1"))
	require.NoError(t, m.DeleteUser(ctx, "hash-1")) // idempotent

	votes, err := m.VotesByClientAndOptionalSnap(ctx, "hash-1", nil)
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func snapIDs(summaries []ratings.VoteSummary) []string {
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.SnapID
	}
	return out
}
