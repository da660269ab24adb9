package service

import (
	"context"

	"github.com/canonical/ratings/apperr"
	"github.com/canonical/ratings/pb"
	"github.com/canonical/ratings/ratings"
)

// ChartService implements pb.ChartServer: category-filterable,
// timeframe-windowed top-N charts.
type ChartService struct {
	pb.UnimplementedChartServer
	Deps
}

// NewChartService builds a ChartService over deps.
func NewChartService(deps Deps) *ChartService {
	return &ChartService{Deps: deps}
}

func (s *ChartService) GetChart(ctx context.Context, req *pb.GetChartRequest) (*pb.GetChartResponse, error) {
	if _, err := requireClaim(ctx); err != nil {
		return nil, toStatus(err)
	}

	timeframe := ratings.ParseTimeframe(req.Timeframe)

	var category *ratings.Category
	if req.Category != nil {
		cat, ok := ratings.ParseCategory(*req.Category)
		if !ok {
			return nil, toStatus(apperr.Invalid("unrecognized category"))
		}
		category = &cat
	}

	chart, err := s.Caches.chartCached(ctx, timeframe, category, func(ctx context.Context) (ratings.Chart, error) {
		summaries, err := s.Store.SummariesForTimeframe(ctx, timeframe, category)
		if err != nil {
			return ratings.Chart{}, err
		}
		return ratings.AssembleChart(timeframe, category, summaries), nil
	})
	if err != nil {
		return nil, toStatus(err)
	}

	if len(chart.Entries) == 0 {
		return nil, toStatus(apperr.NotFoundf("no ratings for the requested timeframe/category"))
	}

	entries := make([]pb.ChartDataMsg, len(chart.Entries))
	for i, e := range chart.Entries {
		name, err := s.Catalog.DisplayName(ctx, e.SnapID)
		if err != nil {
			return nil, toStatus(apperr.Internalf("display name lookup failed", err))
		}

		entries[i] = pb.ChartDataMsg{
			SnapID:      e.SnapID,
			RawRating:   e.RawRating,
			TotalVotes:  e.TotalVotes,
			RatingsBand: e.Band.String(),
			SnapName:    name,
		}
	}

	var categoryOut *string
	if category != nil {
		catStr := category.String()
		categoryOut = &catStr
	}

	return &pb.GetChartResponse{
		Timeframe:        timeframe.String(),
		Category:         categoryOut,
		OrderedChartData: entries,
	}, nil
}
