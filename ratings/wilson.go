package ratings

import "math"

// z is the z-score for a 95% confidence interval, fixed by §4.1.
const z = 1.96

// minVotesForBand is the minimum total_votes a snap needs before its
// band reflects the computed ratio rather than InsufficientVotes.
const minVotesForBand = 25

// WilsonLowerBound computes the lower bound of the Wilson score
// confidence interval for the proportion of positive votes in s. It
// returns 0 when s has no votes, matching the edge case in §4.1.
func WilsonLowerBound(s VoteSummary) float64 {
	if s.TotalVotes == 0 {
		return 0
	}

	n := float64(s.TotalVotes)
	p := float64(s.PositiveVotes) / n

	numerator := p + z*z/(2*n) - z*math.Sqrt((p*(1-p)+z*z/(4*n))/n)
	denominator := 1 + z*z/n

	return numerator / denominator
}

// Band classifies a VoteSummary by its Wilson lower bound, per the
// table in §4.1. A snap with fewer than minVotesForBand total votes is
// always InsufficientVotes, regardless of how favorable its ratio is.
func Band(s VoteSummary) RatingsBand {
	if s.TotalVotes < minVotesForBand {
		return BandInsufficientVotes
	}

	lower := WilsonLowerBound(s)

	switch {
	case lower > 0.80:
		return BandVeryGood
	case lower > 0.55:
		return BandGood
	case lower > 0.45:
		return BandNeutral
	case lower > 0.20:
		return BandPoor
	default:
		return BandVeryPoor
	}
}

// ToRating assembles a Rating from a VoteSummary, leaving SnapName for
// the caller to fill in from the display-name cache/catalog.
func ToRating(s VoteSummary) Rating {
	return Rating{
		SnapID:      s.SnapID,
		TotalVotes:  s.TotalVotes,
		RatingsBand: Band(s),
	}
}

// ToChartData assembles the ranking-relevant subset of a Rating.
func ToChartData(s VoteSummary) ChartData {
	return ChartData{
		SnapID:     s.SnapID,
		RawRating:  WilsonLowerBound(s),
		TotalVotes: s.TotalVotes,
		Band:       Band(s),
	}
}
