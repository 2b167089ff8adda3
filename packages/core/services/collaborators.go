package services

import (
	"errors"
	"log"

	"liga-api/packages/core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlayerStats is the slice of league membership data this core needs from
// the membership system: the post-match average (inclusive of the latest
// match) and counters for enrichment.
type PlayerStats struct {
	PlayerID      uint
	DisplayName   string
	AvgRating     float64
	MatchesPlayed int
	MvpCount      int
}

// StatsProvider resolves league statistics for players. The default reads
// the memberships table the league system maintains, but trend computation
// and duel pairing only depend on this interface.
type StatsProvider interface {
	PlayerStats(leagueID, playerID uint) (*PlayerStats, error)
}

// PredictionProvider exposes the prediction game read-side: the best scorer
// of a fixture (ORACLE honor) and nothing else. This core never writes
// prediction data.
type PredictionProvider interface {
	// BestPredictor returns (playerID, true) when the fixture has a single
	// best-scoring predictor, and false when there is none.
	BestPredictor(matchID uint) (uint, bool, error)
}

// Notifier receives fire-and-forget lifecycle notices. Dispatch failures
// must never fail the operation that triggered them; callers log and move on.
type Notifier interface {
	MatchConvened(leagueID, matchID uint) error
	VotingOpened(leagueID, matchID uint) error
	DuelGenerated(leagueID, matchID, challengerID, rivalID uint) error
}

type MembershipStatsProvider struct {
	db *gorm.DB
}

func NewMembershipStatsProvider(db *gorm.DB) *MembershipStatsProvider {
	return &MembershipStatsProvider{db: db}
}

func (p *MembershipStatsProvider) PlayerStats(leagueID, playerID uint) (*PlayerStats, error) {
	var m models.Membership
	if err := p.db.Where("league_id = ? AND player_id = ?", leagueID, playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &PlayerStats{
		PlayerID:      m.PlayerID,
		DisplayName:   m.DisplayName,
		AvgRating:     m.AvgRating,
		MatchesPlayed: m.MatchesPlayed,
		MvpCount:      m.MvpCount,
	}, nil
}

type TablePredictionProvider struct {
	db *gorm.DB
}

func NewTablePredictionProvider(db *gorm.DB) *TablePredictionProvider {
	return &TablePredictionProvider{db: db}
}

func (p *TablePredictionProvider) BestPredictor(matchID uint) (uint, bool, error) {
	var rows []models.Prediction
	result := p.db.Where("match_id = ? AND points > 0", matchID).
		Order("points DESC, player_id ASC").
		Limit(2).
		Find(&rows)
	if result.Error != nil {
		return 0, false, result.Error
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	// A tie at the top means no single oracle for this fixture.
	if len(rows) == 2 && rows[1].Points == rows[0].Points {
		return 0, false, nil
	}
	return rows[0].PlayerID, true, nil
}

// LogNotifier is the default Notifier: it just logs the notice. The real
// push-notification dispatcher lives outside this service and plugs in here.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) MatchConvened(leagueID, matchID uint) error {
	log.Printf("[notify %s] match convened: league=%d match=%d", uuid.NewString(), leagueID, matchID)
	return nil
}

func (n *LogNotifier) VotingOpened(leagueID, matchID uint) error {
	log.Printf("[notify %s] voting opened: league=%d match=%d", uuid.NewString(), leagueID, matchID)
	return nil
}

func (n *LogNotifier) DuelGenerated(leagueID, matchID, challengerID, rivalID uint) error {
	log.Printf("[notify %s] duel generated: league=%d match=%d challenger=%d rival=%d", uuid.NewString(), leagueID, matchID, challengerID, rivalID)
	return nil
}
