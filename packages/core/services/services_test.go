package services

import (
	"fmt"
	"testing"
	"time"

	"liga-api/packages/core/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the whole service graph against an in-memory database, the
// same way core.NewModule does against postgres.
type testEnv struct {
	db        *gorm.DB
	rating    *RatingService
	lifecycle *LifecycleService
	matches   *MatchService
	votes     *VoteService
	duels     *DuelService
	leagues   *LeagueService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.League{},
		&models.Membership{},
		&models.Match{},
		&models.RosterEntry{},
		&models.Vote{},
		&models.Honor{},
		&models.Duel{},
		&models.Prediction{},
	))

	stats := NewMembershipStatsProvider(db)
	predictions := NewTablePredictionProvider(db)
	notifier := NewLogNotifier()

	rating := NewRatingService(stats, predictions)
	lifecycle := NewLifecycleService(db, rating)

	return &testEnv{
		db:        db,
		rating:    rating,
		lifecycle: lifecycle,
		matches:   NewMatchService(db, lifecycle, notifier),
		votes:     NewVoteService(db, lifecycle),
		duels:     NewDuelService(db, stats, notifier),
		leagues:   NewLeagueService(db),
	}
}

func (e *testEnv) seedLeague(t *testing.T) *models.League {
	t.Helper()
	league := models.League{Name: "Test League", Slug: "test-league"}
	require.NoError(t, e.db.Create(&league).Error)
	return &league
}

func (e *testEnv) seedMember(t *testing.T, leagueID, playerID uint, avg float64, played int) *models.Membership {
	t.Helper()
	member := models.Membership{
		LeagueID:      leagueID,
		PlayerID:      playerID,
		DisplayName:   fmt.Sprintf("Player %d", playerID),
		Role:          models.RoleMember,
		AvgRating:     avg,
		MatchesPlayed: played,
	}
	require.NoError(t, e.db.Create(&member).Error)
	return &member
}

func (e *testEnv) seedMatch(t *testing.T, leagueID uint, status string, kickoff time.Time) *models.Match {
	t.Helper()
	match := models.Match{
		LeagueID: leagueID,
		Location: "Pitch 1",
		DateTime: kickoff,
		Status:   status,
	}
	require.NoError(t, e.db.Create(&match).Error)
	return &match
}

func (e *testEnv) seedRoster(t *testing.T, matchID uint, playerID uint, team string, confirmed bool) *models.RosterEntry {
	t.Helper()
	entry := models.RosterEntry{
		MatchID:      matchID,
		PlayerID:     playerID,
		Team:         team,
		HasConfirmed: confirmed,
	}
	require.NoError(t, e.db.Create(&entry).Error)
	return &entry
}

func (e *testEnv) seedVote(t *testing.T, matchID, voterID, targetID uint, overall int) {
	t.Helper()
	vote := models.Vote{
		MatchID:  matchID,
		VoterID:  voterID,
		TargetID: targetID,
		Overall:  overall,
	}
	require.NoError(t, e.db.Create(&vote).Error)
}

func (e *testEnv) rosterEntry(t *testing.T, matchID, playerID uint) *models.RosterEntry {
	t.Helper()
	var entry models.RosterEntry
	require.NoError(t, e.db.Where("match_id = ? AND player_id = ?", matchID, playerID).First(&entry).Error)
	return &entry
}

func (e *testEnv) honors(t *testing.T, matchID uint) map[string][]uint {
	t.Helper()
	var rows []models.Honor
	require.NoError(t, e.db.Where("match_id = ?", matchID).Find(&rows).Error)
	byType := make(map[string][]uint)
	for _, h := range rows {
		byType[h.HonorType] = append(byType[h.HonorType], h.PlayerID)
	}
	return byType
}
