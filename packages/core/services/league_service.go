package services

import (
	"errors"

	"liga-api/packages/core/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type LeagueService struct {
	db *gorm.DB
}

func NewLeagueService(db *gorm.DB) *LeagueService {
	return &LeagueService{
		db: db,
	}
}

func (s *LeagueService) CreateLeague(req models.CreateLeagueRequest) (*models.League, error) {
	league := models.League{
		Name: req.Name,
		Slug: slug.Make(req.Name),
	}

	if err := s.db.Create(&league).Error; err != nil {
		return nil, err
	}

	return &league, nil
}

func (s *LeagueService) GetLeagueByID(id uint) (*models.League, error) {
	var league models.League
	if err := s.db.First(&league, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}
	return &league, nil
}

// GetMemberRole resolves a player's role in a league, for gating admin-only
// actions. A non-member has no role.
func (s *LeagueService) GetMemberRole(leagueID, playerID uint) (string, error) {
	var membership models.Membership
	if err := s.db.Where("league_id = ? AND player_id = ?", leagueID, playerID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrPlayerNotFound
		}
		return "", err
	}
	return membership.Role, nil
}

// GetLeaderboard ranks members by league average, with MVP counts and
// prediction-game points alongside.
func (s *LeagueService) GetLeaderboard(leagueID uint, limit int) ([]models.LeaderboardEntry, error) {
	var league models.League
	if err := s.db.First(&league, leagueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}

	var memberships []models.Membership
	if err := s.db.Where("league_id = ?", leagueID).
		Order("avg_rating DESC, matches_played DESC, player_id ASC").
		Limit(limit).
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(memberships))
	for _, m := range memberships {
		entries = append(entries, models.LeaderboardEntry{
			PlayerID:         m.PlayerID,
			DisplayName:      m.DisplayName,
			AvgRating:        m.AvgRating,
			MatchesPlayed:    m.MatchesPlayed,
			MvpCount:         m.MvpCount,
			PredictionPoints: m.PredictionPoints,
		})
	}
	return entries, nil
}
