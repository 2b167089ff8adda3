package services

import (
	"strings"
	"testing"
	"time"

	"liga-api/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ballotFor(targets ...uint) models.SubmitBallotRequest {
	req := models.SubmitBallotRequest{}
	for _, target := range targets {
		req.Entries = append(req.Entries, models.BallotEntry{
			TargetID: target,
			Overall:  7,
			Pace:     6,
			Shooting: 6,
			Passing:  6,
			Physical: 6,
		})
	}
	return req
}

func TestSubmitBallotStoresAllEntries(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, time.Now().Add(-1*time.Hour))
	e.seedRoster(t, match.ID, 1, models.TeamA, true)
	e.seedRoster(t, match.ID, 2, models.TeamB, true)
	e.seedRoster(t, match.ID, 3, models.TeamB, true)

	require.NoError(t, e.votes.SubmitBallot(match.ID, 1, ballotFor(1, 2, 3)))

	var count int64
	require.NoError(t, e.db.Model(&models.Vote{}).Where("match_id = ? AND voter_id = ?", match.ID, 1).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestSubmitBallotZeroesSelfSubStats(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, time.Now().Add(-1*time.Hour))
	e.seedRoster(t, match.ID, 1, models.TeamA, true)

	require.NoError(t, e.votes.SubmitBallot(match.ID, 1, ballotFor(1)))

	var vote models.Vote
	require.NoError(t, e.db.Where("match_id = ? AND voter_id = ? AND target_id = ?", match.ID, 1, 1).First(&vote).Error)
	assert.Equal(t, 7, vote.Overall)
	assert.Zero(t, vote.Pace)
	assert.Zero(t, vote.Shooting)
	assert.Zero(t, vote.Passing)
	assert.Zero(t, vote.Physical)
}

func TestSubmitBallotOncePerVoter(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, time.Now().Add(-1*time.Hour))
	e.seedRoster(t, match.ID, 1, models.TeamA, true)
	e.seedRoster(t, match.ID, 2, models.TeamB, true)

	require.NoError(t, e.votes.SubmitBallot(match.ID, 1, ballotFor(1, 2)))

	err := e.votes.SubmitBallot(match.ID, 1, ballotFor(1, 2))
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	var count int64
	require.NoError(t, e.db.Model(&models.Vote{}).Where("match_id = ? AND voter_id = ?", match.ID, 1).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSubmitBallotMustCoverWholeRoster(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, time.Now().Add(-1*time.Hour))
	e.seedRoster(t, match.ID, 1, models.TeamA, true)
	e.seedRoster(t, match.ID, 2, models.TeamB, true)
	e.seedRoster(t, match.ID, 3, models.TeamB, true)

	// A partial ballot could avoid colliding with a concurrent one by the
	// same voter, so it is rejected outright
	err := e.votes.SubmitBallot(match.ID, 1, ballotFor(1, 2))
	assert.ErrorIs(t, err, ErrInvalidBallot)

	var count int64
	require.NoError(t, e.db.Model(&models.Vote{}).Where("match_id = ?", match.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitBallotRejectsDuplicateTargets(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, time.Now().Add(-1*time.Hour))
	e.seedRoster(t, match.ID, 1, models.TeamA, true)
	e.seedRoster(t, match.ID, 2, models.TeamB, true)

	err := e.votes.SubmitBallot(match.ID, 1, ballotFor(1, 2, 2))
	assert.ErrorIs(t, err, ErrInvalidBallot)

	var count int64
	require.NoError(t, e.db.Model(&models.Vote{}).Where("match_id = ?", match.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitBallotRejectsOverlongComment(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, time.Now().Add(-1*time.Hour))
	e.seedRoster(t, match.ID, 1, models.TeamA, true)

	req := models.SubmitBallotRequest{Entries: []models.BallotEntry{
		{TargetID: 1, Overall: 6, Comment: strings.Repeat("a", models.MaxCommentLength+1)},
	}}
	err := e.votes.SubmitBallot(match.ID, 1, req)
	assert.ErrorIs(t, err, ErrInvalidBallot)
}

func TestSubmitBallotAllOrNothing(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, time.Now().Add(-1*time.Hour))
	e.seedRoster(t, match.ID, 1, models.TeamA, true)
	e.seedRoster(t, match.ID, 2, models.TeamB, true)

	// Target 42 was never convened, so not a single entry lands
	err := e.votes.SubmitBallot(match.ID, 1, ballotFor(2, 42))
	assert.ErrorIs(t, err, ErrNotConvened)

	var count int64
	require.NoError(t, e.db.Model(&models.Vote{}).Where("match_id = ?", match.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitBallotRequiresVoterOnRoster(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, time.Now().Add(-1*time.Hour))
	e.seedRoster(t, match.ID, 2, models.TeamB, true)

	err := e.votes.SubmitBallot(match.ID, 1, ballotFor(2))
	assert.ErrorIs(t, err, ErrNotConvened)
}

func TestSubmitBallotRequiresFinishedMatch(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusActive, time.Now())
	e.seedRoster(t, match.ID, 1, models.TeamA, true)

	err := e.votes.SubmitBallot(match.ID, 1, ballotFor(1))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitBallotAfterDeadlineClosesMatch(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, time.Now().Add(-24*time.Hour-time.Second))
	e.seedMember(t, league.ID, 1, 6.0, 2)
	e.seedRoster(t, match.ID, 1, models.TeamA, true)

	err := e.votes.SubmitBallot(match.ID, 1, ballotFor(1))
	assert.ErrorIs(t, err, ErrVotingTimeout)

	// The late ballot triggered the close instead of leaving it for the sweep
	var m models.Match
	require.NoError(t, e.db.First(&m, match.ID).Error)
	assert.Equal(t, models.StatusCompleted, m.Status)
}

func TestSubmitBallotMatchNotFound(t *testing.T) {
	e := newTestEnv(t)

	err := e.votes.SubmitBallot(9999, 1, ballotFor(1))
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestVotingProgressCountsDistinctVoters(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, time.Now().Add(-1*time.Hour))
	e.seedRoster(t, match.ID, 1, models.TeamA, true)
	e.seedRoster(t, match.ID, 2, models.TeamB, true)
	e.seedRoster(t, match.ID, 3, models.TeamB, true)

	require.NoError(t, e.votes.SubmitBallot(match.ID, 1, ballotFor(1, 2, 3)))

	progress, err := e.votes.VotingProgress(match.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.VotesCast)
	assert.Equal(t, 3, progress.RosterSize)
}

func TestLockerRoomCommentsSkipBlanks(t *testing.T) {
	e := newTestEnv(t)
	league := e.seedLeague(t)
	match := e.seedMatch(t, league.ID, models.StatusFinished, time.Now().Add(-1*time.Hour))
	e.seedMember(t, league.ID, 2, 6.0, 2)
	e.seedRoster(t, match.ID, 1, models.TeamA, true)
	e.seedRoster(t, match.ID, 2, models.TeamB, true)

	req := models.SubmitBallotRequest{Entries: []models.BallotEntry{
		{TargetID: 1, Overall: 6, Comment: "   "},
		{TargetID: 2, Overall: 8, Comment: "Golazo al 90"},
	}}
	require.NoError(t, e.votes.SubmitBallot(match.ID, 1, req))

	comments, err := e.votes.LockerRoomComments(match.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, uint(2), comments[0].TargetID)
	assert.Equal(t, "Player 2", comments[0].TargetName)
	assert.Equal(t, "Golazo al 90", comments[0].Comment)
}
