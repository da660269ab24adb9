package ratings

import "sort"

// BulkRank computes ChartData for each summary, sorts it descending by
// RawRating (stable, so ties keep their input order), and truncates to
// MaxChartEntries. Both GetChart and GetBulkRatings route through this
// one ranking implementation so the sort/truncate rule lives in a
// single place.
func BulkRank(summaries []VoteSummary) []ChartData {
	entries := make([]ChartData, len(summaries))
	for i, s := range summaries {
		entries[i] = ToChartData(s)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RawRating > entries[j].RawRating
	})

	if len(entries) > MaxChartEntries {
		entries = entries[:MaxChartEntries]
	}

	return entries
}

// AssembleChart wraps BulkRank with the timeframe/category tags a
// Chart carries on the wire.
func AssembleChart(timeframe Timeframe, category *Category, summaries []VoteSummary) Chart {
	return Chart{
		Timeframe: timeframe,
		Category:  category,
		Entries:   BulkRank(summaries),
	}
}
