package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/canonical/ratings/pb"
	"github.com/canonical/ratings/store"
)

func TestGetRating_RejectsEmptySnapID(t *testing.T) {
	t.Parallel()

	deps, _, _, _ := newTestDeps()
	svc := NewAppService(deps)
	ctx := claimContext(t, deps.Codec, validClientHash())

	_, err := svc.GetRating(ctx, &pb.GetRatingRequest{SnapID: ""})

	assert.Equal(t, codes.InvalidArgument, statusCode(t, err))
}

func TestGetRating_RequiresClaim(t *testing.T) {
	t.Parallel()

	deps, _, _, _ := newTestDeps()
	svc := NewAppService(deps)

	_, err := svc.GetRating(context.Background(), &pb.GetRatingRequest{SnapID: "my-snap"})

	assert.Equal(t, codes.Unauthenticated, statusCode(t, err))
}

func TestGetRating_InsufficientVotesBand(t *testing.T) {
	t.Parallel()

	deps, mem, cat, coord := newTestDeps()
	svc := NewAppService(deps)

	for i := 0; i < 10; i++ {
		hash := strings.Repeat(string(rune('a'+i)), clientHashLen)
		_, err := mem.CreateOrSeen(context.Background(), hash)
		require.NoError(t, err)
		_, err = mem.SaveVote(context.Background(), hash, store.VoteInput{SnapID: "my-snap", SnapRevision: 0, VoteUp: true})
		require.NoError(t, err)
	}
	cat.names["my-snap"] = "My Snap"

	ctx := claimContext(t, deps.Codec, validClientHash())

	resp, err := svc.GetRating(ctx, &pb.GetRatingRequest{SnapID: "my-snap"})
	require.NoError(t, err)

	assert.Equal(t, "insufficient_votes", resp.Rating.RatingsBand)
	assert.Equal(t, uint64(10), resp.Rating.TotalVotes)
	assert.Equal(t, "My Snap", resp.Rating.SnapName)
	assert.Equal(t, []string{"my-snap"}, coord.calledWith())
}

func TestGetRating_VeryGoodBand(t *testing.T) {
	t.Parallel()

	deps, mem, _, _ := newTestDeps()
	svc := NewAppService(deps)

	voter := validClientHash()
	_, err := mem.CreateOrSeen(context.Background(), voter)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		_, err := mem.SaveVote(context.Background(), voter, store.VoteInput{SnapID: "great-snap", SnapRevision: int32(i), VoteUp: true})
		require.NoError(t, err)
	}

	ctx := claimContext(t, deps.Codec, validClientHash())

	resp, err := svc.GetRating(ctx, &pb.GetRatingRequest{SnapID: "great-snap"})
	require.NoError(t, err)

	assert.Equal(t, "very_good", resp.Rating.RatingsBand)
}

func TestGetBulkRatings_RejectsOutOfBoundsCounts(t *testing.T) {
	t.Parallel()

	deps, _, _, _ := newTestDeps()
	svc := NewAppService(deps)
	ctx := claimContext(t, deps.Codec, validClientHash())

	_, err := svc.GetBulkRatings(ctx, &pb.GetBulkRatingsRequest{SnapIDs: []string{}})
	assert.Equal(t, codes.InvalidArgument, statusCode(t, err))

	tooMany := make([]string, 251)
	for i := range tooMany {
		tooMany[i] = "snap"
	}
	_, err = svc.GetBulkRatings(ctx, &pb.GetBulkRatingsRequest{SnapIDs: tooMany})
	assert.Equal(t, codes.InvalidArgument, statusCode(t, err))
}

func TestGetBulkRatings_EnrichesWithDisplayNames(t *testing.T) {
	t.Parallel()

	deps, mem, cat, _ := newTestDeps()
	svc := NewAppService(deps)

	voter := validClientHash()
	_, err := mem.CreateOrSeen(context.Background(), voter)
	require.NoError(t, err)
	_, err = mem.SaveVote(context.Background(), voter, store.VoteInput{SnapID: "my-snap", SnapRevision: 0, VoteUp: true})
	require.NoError(t, err)

	cat.names["my-snap"] = "My Snap"

	ctx := claimContext(t, deps.Codec, validClientHash())

	resp, err := svc.GetBulkRatings(ctx, &pb.GetBulkRatingsRequest{SnapIDs: []string{"my-snap"}})
	require.NoError(t, err)

	require.Len(t, resp.Ratings, 1)
	assert.Equal(t, "My Snap", resp.Ratings[0].SnapName)
}

func TestGetBulkRatings_DisplayNameEnrichmentFailureIsInternal(t *testing.T) {
	t.Parallel()

	deps, mem, cat, _ := newTestDeps()
	svc := NewAppService(deps)

	voter := validClientHash()
	_, err := mem.CreateOrSeen(context.Background(), voter)
	require.NoError(t, err)
	_, err = mem.SaveVote(context.Background(), voter, store.VoteInput{SnapID: "my-snap", SnapRevision: 0, VoteUp: true})
	require.NoError(t, err)

	cat.err = errors.New("catalog down")

	ctx := claimContext(t, deps.Codec, validClientHash())

	_, err = svc.GetBulkRatings(ctx, &pb.GetBulkRatingsRequest{SnapIDs: []string{"my-snap"}})

	assert.Equal(t, codes.Unknown, statusCode(t, err))
}

func TestGetBulkRatings_RanksDescendingAndTruncatesTo20(t *testing.T) {
	t.Parallel()

	deps, mem, _, _ := newTestDeps()
	svc := NewAppService(deps)

	voter := validClientHash()
	_, err := mem.CreateOrSeen(context.Background(), voter)
	require.NoError(t, err)

	ids := make([]string, 30)
	for i := 0; i < 30; i++ {
		snapID := fmt.Sprintf("snap-%02d", i)
		ids[i] = snapID

		votes := 25 + i
		for v := 0; v < votes; v++ {
			_, err := mem.SaveVote(context.Background(), voter, store.VoteInput{SnapID: snapID, SnapRevision: int32(v), VoteUp: true})
			require.NoError(t, err)
		}
	}

	ctx := claimContext(t, deps.Codec, validClientHash())

	resp, err := svc.GetBulkRatings(ctx, &pb.GetBulkRatingsRequest{SnapIDs: ids})
	require.NoError(t, err)

	require.Len(t, resp.Ratings, 20)
	for i := 1; i < len(resp.Ratings); i++ {
		assert.GreaterOrEqual(t, resp.Ratings[i-1].RawRating, resp.Ratings[i].RawRating)
	}
}
