package service

import (
	"context"

	"github.com/canonical/ratings/apperr"
	"github.com/canonical/ratings/pb"
	"github.com/canonical/ratings/ratings"
)

const (
	minBulkIDs = 1
	maxBulkIDs = 250
)

// AppService implements pb.AppServer: a single snap's rating and
// bulk ratings over a caller-supplied id list.
type AppService struct {
	pb.UnimplementedAppServer
	Deps
}

// NewAppService builds an AppService over deps.
func NewAppService(deps Deps) *AppService {
	return &AppService{Deps: deps}
}

func (s *AppService) GetRating(ctx context.Context, req *pb.GetRatingRequest) (*pb.GetRatingResponse, error) {
	if _, err := requireClaim(ctx); err != nil {
		return nil, toStatus(err)
	}

	if req.SnapID == "" {
		return nil, toStatus(apperr.Invalid("snap_id must not be empty"))
	}

	summary, err := s.Caches.summaryCached(ctx, req.SnapID, func(ctx context.Context) (ratings.VoteSummary, error) {
		return s.Store.SummaryBySnapID(ctx, req.SnapID)
	})
	if err != nil {
		return nil, toStatus(err)
	}

	rating := ratings.ToRating(summary)

	name, err := s.Catalog.DisplayName(ctx, req.SnapID)
	if err != nil {
		return nil, toStatus(apperr.Internalf("display name lookup failed", err))
	}
	rating.SnapName = name

	// Opportunistic: a snap can be discovered by rating lookup before
	// it has ever been voted on by a categorized client.
	s.Coordinator.EnsureCategoriesAsync(req.SnapID)

	return &pb.GetRatingResponse{Rating: pb.RatingMsg{
		SnapID:      rating.SnapID,
		TotalVotes:  rating.TotalVotes,
		RatingsBand: rating.RatingsBand.String(),
		SnapName:    rating.SnapName,
	}}, nil
}

func (s *AppService) GetBulkRatings(ctx context.Context, req *pb.GetBulkRatingsRequest) (*pb.GetBulkRatingsResponse, error) {
	if _, err := requireClaim(ctx); err != nil {
		return nil, toStatus(err)
	}

	if len(req.SnapIDs) < minBulkIDs || len(req.SnapIDs) > maxBulkIDs {
		return nil, toStatus(apperr.Invalid("snap_ids must contain between 1 and 250 entries"))
	}

	summaries, err := s.Store.SummariesForSnapIDs(ctx, req.SnapIDs, ratings.TimeframeMonth)
	if err != nil {
		return nil, toStatus(err)
	}

	entries := ratings.BulkRank(summaries)

	msgs := make([]pb.ChartDataMsg, len(entries))
	for i, e := range entries {
		name, err := s.Catalog.DisplayName(ctx, e.SnapID)
		if err != nil {
			return nil, toStatus(apperr.Internalf("display name lookup failed", err))
		}

		msgs[i] = pb.ChartDataMsg{
			SnapID:      e.SnapID,
			RawRating:   e.RawRating,
			TotalVotes:  e.TotalVotes,
			RatingsBand: e.Band.String(),
			SnapName:    name,
		}
	}

	return &pb.GetBulkRatingsResponse{Ratings: msgs}, nil
}
