package services

import (
	"errors"
	"fmt"
	"log"

	"liga-api/packages/core/models"
	"liga-api/packages/core/utils"

	"gorm.io/gorm"
)

type DuelService struct {
	db       *gorm.DB
	stats    StatsProvider
	notifier Notifier

	// CompatibilityBar is the minimum pairing score; below it the engine
	// refuses to force a mismatched duel.
	CompatibilityBar float64
}

func NewDuelService(db *gorm.DB, stats StatsProvider, notifier Notifier) *DuelService {
	return &DuelService{
		db:               db,
		stats:            stats,
		notifier:         notifier,
		CompatibilityBar: utils.DefaultCompatibilityBar,
	}
}

// GenerateDuel picks the most balanced pair of confirmed players and
// persists it. At most one duel per match; preconditions are checked in
// order and the first failure wins.
func (s *DuelService) GenerateDuel(matchID uint) (*models.Duel, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	var league models.League
	if err := s.db.First(&league, match.LeagueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}

	var confirmed []models.RosterEntry
	if err := s.db.Where("match_id = ? AND has_confirmed = ?", matchID, true).
		Order("player_id ASC").
		Find(&confirmed).Error; err != nil {
		return nil, err
	}
	if len(confirmed) < 2 {
		return nil, ErrInsufficientRoster
	}

	var existingCount int64
	if err := s.db.Model(&models.Duel{}).Where("match_id = ?", matchID).Count(&existingCount).Error; err != nil {
		return nil, err
	}
	if existingCount > 0 {
		return nil, ErrDuelAlreadyExists
	}

	candidates := make([]utils.PairCandidate, 0, len(confirmed))
	for _, e := range confirmed {
		stats, err := s.stats.PlayerStats(match.LeagueID, e.PlayerID)
		if err != nil {
			// Statistics going missing mid-computation is an internal
			// selection failure, not a pairing outcome.
			return nil, fmt.Errorf("%w: stats for player %d: %v", ErrSelectionFailure, e.PlayerID, err)
		}
		candidates = append(candidates, utils.PairCandidate{
			PlayerID:  e.PlayerID,
			AvgRating: stats.AvgRating,
		})
	}

	avoid, err := s.previousPair(match.LeagueID, matchID)
	if err != nil {
		return nil, fmt.Errorf("%w: previous duel lookup: %v", ErrSelectionFailure, err)
	}

	pair, ok := utils.BestPair(candidates, s.CompatibilityBar, avoid)
	if !ok {
		return nil, ErrNoCompatiblePair
	}

	duel := models.Duel{
		MatchID:      matchID,
		ChallengerID: pair.Challenger,
		RivalID:      pair.Rival,
	}
	if err := s.db.Create(&duel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuelAlreadyExists
		}
		return nil, err
	}

	if err := s.notifier.DuelGenerated(match.LeagueID, matchID, duel.ChallengerID, duel.RivalID); err != nil {
		log.Printf("Error dispatching duel-generated notice for match %d: %v", matchID, err)
	}

	return &duel, nil
}

// previousPair finds the league's most recent duel before this match, the
// pair the engine prefers not to repeat back to back.
func (s *DuelService) previousPair(leagueID, matchID uint) (*utils.Pair, error) {
	var last models.Duel
	err := s.db.Joins("JOIN matches ON matches.id = duels.match_id").
		Where("matches.league_id = ? AND duels.match_id <> ?", leagueID, matchID).
		Order("duels.id DESC").
		First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	challenger, rival := last.ChallengerID, last.RivalID
	if challenger > rival {
		challenger, rival = rival, challenger
	}
	return &utils.Pair{Challenger: challenger, Rival: rival}, nil
}

// GetDuel returns the match's duel enriched with league statistics and the
// duelists' match-side state.
func (s *DuelService) GetDuel(matchID uint) (*models.DuelResponse, error) {
	var duel models.Duel
	if err := s.db.Where("match_id = ?", matchID).First(&duel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDuelNotFound
		}
		return nil, err
	}

	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		return nil, err
	}

	challenger, err := s.duelSide(match.LeagueID, matchID, duel.ChallengerID)
	if err != nil {
		return nil, err
	}
	rival, err := s.duelSide(match.LeagueID, matchID, duel.RivalID)
	if err != nil {
		return nil, err
	}

	return &models.DuelResponse{
		ID:         duel.ID,
		MatchID:    duel.MatchID,
		Challenger: *challenger,
		Rival:      *rival,
		WinnerID:   duel.WinnerID,
		CreatedAt:  duel.CreatedAt,
	}, nil
}

func (s *DuelService) duelSide(leagueID, matchID, playerID uint) (*models.DuelSide, error) {
	side := &models.DuelSide{PlayerID: playerID}

	stats, err := s.stats.PlayerStats(leagueID, playerID)
	if err == nil {
		side.DisplayName = stats.DisplayName
		side.LeagueAverage = stats.AvgRating
		side.MvpCount = stats.MvpCount
	} else if !errors.Is(err, ErrPlayerNotFound) {
		return nil, err
	}

	var entry models.RosterEntry
	if err := s.db.Where("match_id = ? AND player_id = ?", matchID, playerID).First(&entry).Error; err == nil {
		side.Team = entry.Team
		side.MatchRating = entry.MatchRating
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return side, nil
}
