package services

import (
	"errors"
	"testing"
	"time"

	"liga-api/packages/core/models"
	"liga-api/packages/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finishedYesterday() time.Time {
	return time.Now().Add(-25 * time.Hour)
}

func TestAggregateAveragesOverallVotes(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, finishedYesterday())

	for _, id := range []uint{1, 2, 3} {
		e.seedMember(t, league.ID, id, 6.0, 4)
		e.seedRoster(t, match.ID, id, models.TeamA, true)
	}

	// Three voters rate player 1 with 9, 7, 8
	e.seedVote(t, match.ID, 1, 1, 9)
	e.seedVote(t, match.ID, 2, 1, 7)
	e.seedVote(t, match.ID, 3, 1, 8)

	closed, err := e.lifecycle.CloseMatch(match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, closed.Status)

	entry := e.rosterEntry(t, match.ID, 1)
	require.NotNil(t, entry.MatchRating)
	assert.Equal(t, 8.0, *entry.MatchRating)
}

func TestAggregateExcludesUnscoredSubStats(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, finishedYesterday())

	for _, id := range []uint{1, 2, 3} {
		e.seedMember(t, league.ID, id, 6.0, 4)
		e.seedRoster(t, match.ID, id, models.TeamA, true)
	}

	require.NoError(t, e.db.Create(&models.Vote{MatchID: match.ID, VoterID: 2, TargetID: 1, Overall: 8, Pace: 6}).Error)
	require.NoError(t, e.db.Create(&models.Vote{MatchID: match.ID, VoterID: 3, TargetID: 1, Overall: 8, Pace: 0}).Error)

	_, err := e.lifecycle.CloseMatch(match.ID)
	require.NoError(t, err)

	// The unscored pace entry must not drag the average down
	entry := e.rosterEntry(t, match.ID, 1)
	require.NotNil(t, entry.MatchPace)
	assert.Equal(t, 6.0, *entry.MatchPace)
}

func TestAggregateComputesTrendFromPostMatchAverage(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, finishedYesterday())

	// League aggregate already includes this match: 6.0 over 4 games
	e.seedMember(t, league.ID, 1, 6.0, 4)
	e.seedMember(t, league.ID, 2, 6.0, 4)
	e.seedRoster(t, match.ID, 1, models.TeamA, true)
	e.seedRoster(t, match.ID, 2, models.TeamB, true)

	e.seedVote(t, match.ID, 1, 1, 8)
	e.seedVote(t, match.ID, 2, 1, 8)

	_, err := e.lifecycle.CloseMatch(match.ID)
	require.NoError(t, err)

	entry := e.rosterEntry(t, match.ID, 1)
	require.NotNil(t, entry.Trend)
	assert.InDelta(t, 2.67, *entry.Trend, 0.001)
}

func TestAggregateFirstMatchHasNoTrend(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, finishedYesterday())

	e.seedMember(t, league.ID, 1, 7.0, 1)
	e.seedMember(t, league.ID, 2, 7.0, 1)
	e.seedRoster(t, match.ID, 1, models.TeamA, true)
	e.seedRoster(t, match.ID, 2, models.TeamB, true)

	e.seedVote(t, match.ID, 2, 1, 7)

	_, err := e.lifecycle.CloseMatch(match.ID)
	require.NoError(t, err)

	entry := e.rosterEntry(t, match.ID, 1)
	require.NotNil(t, entry.Trend)
	assert.Equal(t, 0.0, *entry.Trend)
}

func TestHonorsMvpAndTronco(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, finishedYesterday())

	for _, id := range []uint{1, 2, 3} {
		e.seedMember(t, league.ID, id, 6.0, 4)
		e.seedRoster(t, match.ID, id, models.TeamA, true)
	}

	e.seedVote(t, match.ID, 2, 1, 9)
	e.seedVote(t, match.ID, 1, 2, 6)
	e.seedVote(t, match.ID, 1, 3, 3)

	closed, err := e.lifecycle.CloseMatch(match.ID)
	require.NoError(t, err)

	honors := e.honors(t, match.ID)
	assert.Equal(t, []uint{1}, honors[models.HonorMVP])
	assert.Equal(t, []uint{3}, honors[models.HonorTronco])

	require.NotNil(t, closed.MvpID)
	assert.Equal(t, uint(1), *closed.MvpID)
}

func TestHonorsMvpTieAwardsAllTiedPlayers(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, finishedYesterday())

	for _, id := range []uint{1, 2, 3} {
		e.seedMember(t, league.ID, id, 6.0, 4)
		e.seedRoster(t, match.ID, id, models.TeamA, true)
	}

	e.seedVote(t, match.ID, 3, 1, 9)
	e.seedVote(t, match.ID, 3, 2, 9)
	e.seedVote(t, match.ID, 1, 3, 4)

	closed, err := e.lifecycle.CloseMatch(match.ID)
	require.NoError(t, err)

	honors := e.honors(t, match.ID)
	assert.ElementsMatch(t, []uint{1, 2}, honors[models.HonorMVP])

	// Denormalized pointer settles on the lowest tied id
	require.NotNil(t, closed.MvpID)
	assert.Equal(t, uint(1), *closed.MvpID)
}

func TestHonorsFantasmaForNoShowWithZeroVotes(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, finishedYesterday())

	e.seedMember(t, league.ID, 1, 6.0, 4)
	e.seedMember(t, league.ID, 2, 6.0, 4)
	e.seedRoster(t, match.ID, 1, models.TeamA, true)
	e.seedRoster(t, match.ID, 2, models.TeamB, false)

	_, err := e.lifecycle.CloseMatch(match.ID)
	require.NoError(t, err)

	honors := e.honors(t, match.ID)
	assert.Equal(t, []uint{2}, honors[models.HonorFantasma])
}

func TestHonorsAreNotExclusive(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, finishedYesterday())

	for _, id := range []uint{1, 2} {
		e.seedMember(t, league.ID, id, 6.0, 4)
		e.seedRoster(t, match.ID, id, models.TeamA, true)
	}

	e.seedVote(t, match.ID, 2, 1, 9)
	e.seedVote(t, match.ID, 1, 2, 5)

	// Player 1 also tops the prediction game
	require.NoError(t, e.db.Create(&models.Prediction{MatchID: match.ID, PlayerID: 1, Points: 12}).Error)
	require.NoError(t, e.db.Create(&models.Prediction{MatchID: match.ID, PlayerID: 2, Points: 3}).Error)

	_, err := e.lifecycle.CloseMatch(match.ID)
	require.NoError(t, err)

	honors := e.honors(t, match.ID)
	assert.Equal(t, []uint{1}, honors[models.HonorMVP])
	assert.Equal(t, []uint{1}, honors[models.HonorOracle])
}

func TestCloseWithZeroVotesUsesNeutralBaseline(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, finishedYesterday())

	e.seedMember(t, league.ID, 1, 0, 0)
	e.seedMember(t, league.ID, 2, 0, 0)
	e.seedRoster(t, match.ID, 1, models.TeamA, true)
	e.seedRoster(t, match.ID, 2, models.TeamB, true)

	closed, err := e.lifecycle.CloseMatch(match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, closed.Status)

	entry := e.rosterEntry(t, match.ID, 1)
	require.NotNil(t, entry.MatchRating)
	assert.Equal(t, utils.NeutralRating, *entry.MatchRating)

	// Everyone at the baseline means no performance honors
	honors := e.honors(t, match.ID)
	assert.Empty(t, honors[models.HonorMVP])
	assert.Empty(t, honors[models.HonorTronco])
	assert.Nil(t, closed.MvpID)
}

// failingStatsProvider simulates the membership system going away mid-close.
type failingStatsProvider struct{}

func (failingStatsProvider) PlayerStats(leagueID, playerID uint) (*PlayerStats, error) {
	return nil, errors.New("membership store unavailable")
}

func TestCloseFailureLeavesMatchUntouched(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, finishedYesterday())

	e.seedMember(t, league.ID, 1, 6.0, 4)
	e.seedRoster(t, match.ID, 1, models.TeamA, true)
	e.seedVote(t, match.ID, 1, 1, 8)

	rating := NewRatingService(failingStatsProvider{}, NewTablePredictionProvider(e.db))
	lifecycle := NewLifecycleService(e.db, rating)

	_, err := lifecycle.CloseMatch(match.ID)
	require.Error(t, err)

	// Status, ratings and honors all rolled back together
	var current models.Match
	require.NoError(t, e.db.First(&current, match.ID).Error)
	assert.Equal(t, models.StatusFinished, current.Status)

	entry := e.rosterEntry(t, match.ID, 1)
	assert.Nil(t, entry.MatchRating)
}
