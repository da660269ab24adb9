package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/canonical/ratings/pb"
	"github.com/canonical/ratings/ratings"
	"github.com/canonical/ratings/store"
)

func castVotes(t *testing.T, mem *store.Memory, snapID string, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		hash := fmt.Sprintf("%s-voter-%d", snapID, i)
		for len(hash) < clientHashLen {
			hash += "x"
		}
		hash = hash[:clientHashLen]

		_, err := mem.CreateOrSeen(context.Background(), hash)
		require.NoError(t, err)
		_, err = mem.SaveVote(context.Background(), hash, store.VoteInput{SnapID: snapID, SnapRevision: 0, VoteUp: true})
		require.NoError(t, err)
	}
}

func TestGetChart_UnknownCategoryIsInvalidArgument(t *testing.T) {
	t.Parallel()

	deps, _, _, _ := newTestDeps()
	svc := NewChartService(deps)
	ctx := claimContext(t, deps.Codec, validClientHash())

	bad := "not-a-real-category"
	_, err := svc.GetChart(ctx, &pb.GetChartRequest{Timeframe: "UNSPECIFIED", Category: &bad})

	assert.Equal(t, codes.InvalidArgument, statusCode(t, err))
}

func TestGetChart_UnknownTimeframeCollapsesToUnspecified(t *testing.T) {
	t.Parallel()

	deps, mem, _, _ := newTestDeps()
	svc := NewChartService(deps)
	ctx := claimContext(t, deps.Codec, validClientHash())

	castVotes(t, mem, "chart-snap", 30)

	resp, err := svc.GetChart(ctx, &pb.GetChartRequest{Timeframe: "not-a-real-timeframe"})
	require.NoError(t, err)

	assert.Equal(t, "UNSPECIFIED", resp.Timeframe)
	require.Len(t, resp.OrderedChartData, 1)
	assert.Equal(t, "chart-snap", resp.OrderedChartData[0].SnapID)
}

func TestGetChart_EmptyResultIsNotFound(t *testing.T) {
	t.Parallel()

	deps, _, _, _ := newTestDeps()
	svc := NewChartService(deps)
	ctx := claimContext(t, deps.Codec, validClientHash())

	_, err := svc.GetChart(ctx, &pb.GetChartRequest{Timeframe: "UNSPECIFIED"})

	assert.Equal(t, codes.NotFound, statusCode(t, err))
}

func TestGetChart_CategoryIsolatesResults(t *testing.T) {
	t.Parallel()

	deps, mem, cat, _ := newTestDeps()
	svc := NewChartService(deps)
	ctx := claimContext(t, deps.Codec, validClientHash())

	castVotes(t, mem, "games-snap", 30)
	castVotes(t, mem, "social-snap", 30)

	require.NoError(t, mem.SetCategoriesForSnap(context.Background(), "games-snap", []ratings.Category{ratings.CategoryGames}))
	require.NoError(t, mem.SetCategoriesForSnap(context.Background(), "social-snap", []ratings.Category{ratings.CategorySocial}))

	cat.names["games-snap"] = "Games Snap"

	games := "games"
	resp, err := svc.GetChart(ctx, &pb.GetChartRequest{Timeframe: "UNSPECIFIED", Category: &games})
	require.NoError(t, err)

	require.Len(t, resp.OrderedChartData, 1)
	assert.Equal(t, "games-snap", resp.OrderedChartData[0].SnapID)
	assert.Equal(t, "Games Snap", resp.OrderedChartData[0].SnapName)
}

func TestGetChart_DisplayNameEnrichmentFailureIsInternal(t *testing.T) {
	t.Parallel()

	deps, mem, cat, _ := newTestDeps()
	svc := NewChartService(deps)
	ctx := claimContext(t, deps.Codec, validClientHash())

	castVotes(t, mem, "chart-snap", 30)
	cat.err = errors.New("catalog down")

	_, err := svc.GetChart(ctx, &pb.GetChartRequest{Timeframe: "UNSPECIFIED"})

	assert.Equal(t, codes.Unknown, statusCode(t, err))
}

func TestGetChart_ReturnedCategoryEchoesRequest(t *testing.T) {
	t.Parallel()

	deps, mem, _, _ := newTestDeps()
	svc := NewChartService(deps)
	ctx := claimContext(t, deps.Codec, validClientHash())

	castVotes(t, mem, "games-snap", 30)
	require.NoError(t, mem.SetCategoriesForSnap(context.Background(), "games-snap", []ratings.Category{ratings.CategoryGames}))

	games := "games"
	resp, err := svc.GetChart(ctx, &pb.GetChartRequest{Timeframe: "UNSPECIFIED", Category: &games})
	require.NoError(t, err)

	require.NotNil(t, resp.Category)
	assert.Equal(t, "games", *resp.Category)
}
