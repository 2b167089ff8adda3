package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatibility(t *testing.T) {
	assert.Equal(t, 10.0, Compatibility(7.0, 7.0))
	assert.Equal(t, 8.5, Compatibility(7.0, 5.5))
	assert.Equal(t, 8.5, Compatibility(5.5, 7.0))
}

func TestBestPairPicksClosestAverages(t *testing.T) {
	candidates := []PairCandidate{
		{PlayerID: 1, AvgRating: 8.0},
		{PlayerID: 2, AvgRating: 5.0},
		{PlayerID: 3, AvgRating: 7.8},
	}

	pair, ok := BestPair(candidates, DefaultCompatibilityBar, nil)
	require.True(t, ok)
	assert.Equal(t, uint(1), pair.Challenger)
	assert.Equal(t, uint(3), pair.Rival)
}

func TestBestPairRespectsMinimumBar(t *testing.T) {
	candidates := []PairCandidate{
		{PlayerID: 1, AvgRating: 9.5},
		{PlayerID: 2, AvgRating: 2.0},
	}

	_, ok := BestPair(candidates, DefaultCompatibilityBar, nil)
	assert.False(t, ok)
}

func TestBestPairAvoidsPreviousPairing(t *testing.T) {
	candidates := []PairCandidate{
		{PlayerID: 1, AvgRating: 7.0},
		{PlayerID: 2, AvgRating: 7.0},
		{PlayerID: 3, AvgRating: 7.0},
	}

	// Without history the tie breaks on the lowest ids
	pair, ok := BestPair(candidates, DefaultCompatibilityBar, nil)
	require.True(t, ok)
	assert.Equal(t, uint(1), pair.Challenger)
	assert.Equal(t, uint(2), pair.Rival)

	// The previous fixture's pair is skipped when an alternative exists
	pair, ok = BestPair(candidates, DefaultCompatibilityBar, &Pair{Challenger: 1, Rival: 2})
	require.True(t, ok)
	assert.Equal(t, uint(1), pair.Challenger)
	assert.Equal(t, uint(3), pair.Rival)
}

func TestBestPairAllowsRepeatWhenOnlyFairFight(t *testing.T) {
	candidates := []PairCandidate{
		{PlayerID: 1, AvgRating: 7.0},
		{PlayerID: 2, AvgRating: 7.2},
		{PlayerID: 3, AvgRating: 1.0},
	}

	pair, ok := BestPair(candidates, DefaultCompatibilityBar, &Pair{Challenger: 1, Rival: 2})
	require.True(t, ok)
	assert.Equal(t, uint(1), pair.Challenger)
	assert.Equal(t, uint(2), pair.Rival)
}

func TestBestPairNeedsTwoCandidates(t *testing.T) {
	_, ok := BestPair([]PairCandidate{{PlayerID: 1, AvgRating: 7.0}}, DefaultCompatibilityBar, nil)
	assert.False(t, ok)
}
