package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanOverall(t *testing.T) {
	assert.Equal(t, 8.0, MeanOverall([]int{9, 7, 8}))
	assert.Equal(t, 7.5, MeanOverall([]int{7, 8}))

	// No votes falls back to the neutral baseline
	assert.Equal(t, NeutralRating, MeanOverall(nil))
}

func TestMeanSubStatExcludesUnscored(t *testing.T) {
	mean, ok := MeanSubStat([]int{0, 6, 8})
	assert.True(t, ok)
	assert.Equal(t, 7.0, mean)

	// All zeroes means nobody scored the stat
	_, ok = MeanSubStat([]int{0, 0, 0})
	assert.False(t, ok)

	_, ok = MeanSubStat(nil)
	assert.False(t, ok)
}

func TestHistoricalAverageBackSolve(t *testing.T) {
	// currentAvg 6.0 over 4 matches, this match rated 8.0:
	// (6.0*4 - 8.0) / 3 = 16/3
	got := HistoricalAverage(6.0, 4, 8.0)
	assert.InDelta(t, 16.0/3.0, got, 1e-9)

	// First match ever: no prior baseline
	assert.Equal(t, 7.0, HistoricalAverage(7.0, 1, 7.0))
	assert.Equal(t, 7.0, HistoricalAverage(0, 0, 7.0))
}

func TestTrend(t *testing.T) {
	assert.InDelta(t, 2.67, Trend(6.0, 4, 8.0), 1e-9)
	assert.Equal(t, 0.0, Trend(7.0, 1, 7.0))

	// Under-performing a strong average goes negative
	assert.InDelta(t, -2.5, Trend(7.0, 5, 5.0), 1e-9)
}
