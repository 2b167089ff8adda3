package utils

import "math"

// NeutralRating is the baseline assigned when a match closes with zero votes
// for a player.
const NeutralRating = 5.0

// MeanOverall averages overall votes (1-10). Returns NeutralRating when the
// slice is empty so a voteless close still produces a defined rating.
func MeanOverall(values []int) float64 {
	if len(values) == 0 {
		return NeutralRating
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return round2(float64(sum) / float64(len(values)))
}

// MeanSubStat averages a sub-stat excluding zero ("not scored") entries.
// Returns (0, false) when no voter scored the stat.
func MeanSubStat(values []int) (float64, bool) {
	sum, n := 0, 0
	for _, v := range values {
		if v == 0 {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return round2(float64(sum) / float64(n)), true
}

// HistoricalAverage back-solves the player's pre-match league average from
// the post-match aggregate: the league stores currentAvg over n matches
// inclusive of this one, so the average over the other n-1 matches is
// (currentAvg*n - matchRating) / (n-1). With n <= 1 there is no prior
// baseline and the match rating itself is returned (trend 0).
func HistoricalAverage(currentAvg float64, n int, matchRating float64) float64 {
	if n <= 1 {
		return matchRating
	}
	return (currentAvg*float64(n) - matchRating) / float64(n-1)
}

// Trend is the signed delta between this match's rating and the player's
// pre-match historical average.
func Trend(currentAvg float64, n int, matchRating float64) float64 {
	return round2(matchRating - HistoricalAverage(currentAvg, n, matchRating))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
