package ratings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBulkRank_Ordering(t *testing.T) {
	t.Parallel()

	summaries := []VoteSummary{
		{SnapID: "snap1", TotalVotes: 27, PositiveVotes: 27},
		{SnapID: "snap2", TotalVotes: 25, PositiveVotes: 25},
		{SnapID: "snap3", TotalVotes: 26, PositiveVotes: 26},
	}

	chart := BulkRank(summaries)

	assert.Len(t, chart, 3)
	assert.Equal(t, "snap1", chart[0].SnapID)
	assert.Equal(t, "snap3", chart[1].SnapID)
	assert.Equal(t, "snap2", chart[2].SnapID)
}

func TestBulkRank_TruncatesToTwenty(t *testing.T) {
	t.Parallel()

	summaries := make([]VoteSummary, 0, 30)
	for i := 0; i < 30; i++ {
		summaries = append(summaries, VoteSummary{
			SnapID:        "snap",
			TotalVotes:    100,
			PositiveVotes: uint64(50 + i),
		})
	}

	chart := BulkRank(summaries)
	assert.Len(t, chart, MaxChartEntries)

	for i := 1; i < len(chart); i++ {
		assert.GreaterOrEqual(t, chart[i-1].RawRating, chart[i].RawRating)
	}
}
