package services

import (
	"time"

	"liga-api/packages/core/models"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db: db,
	}
}

func (s *StatsService) GetLeagueStats(leagueID uint) (*models.LeagueStats, error) {
	var totalMatches int64
	var totalMembers int64
	var matchesLast7Days int64
	var matchesPrevious7Days int64
	var pendingClose int64

	if err := s.db.Model(&models.Match{}).Where("league_id = ?", leagueID).Count(&totalMatches).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Membership{}).Where("league_id = ?", leagueID).Count(&totalMembers).Error; err != nil {
		return nil, err
	}

	// Calculate date ranges
	now := time.Now()
	last7DaysStart := now.AddDate(0, 0, -7)
	previous7DaysStart := now.AddDate(0, 0, -14)

	if err := s.db.Model(&models.Match{}).
		Where("league_id = ? AND date_time >= ?", leagueID, last7DaysStart).
		Count(&matchesLast7Days).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).
		Where("league_id = ? AND date_time >= ? AND date_time < ?", leagueID, previous7DaysStart, last7DaysStart).
		Count(&matchesPrevious7Days).Error; err != nil {
		return nil, err
	}

	// Finished matches whose voting window has already lapsed
	cutoff := now.Add(-models.VotingWindow)
	if err := s.db.Model(&models.Match{}).
		Where("league_id = ? AND status = ? AND date_time < ?", leagueID, models.StatusFinished, cutoff).
		Count(&pendingClose).Error; err != nil {
		return nil, err
	}

	return &models.LeagueStats{
		TotalMatches:         totalMatches,
		TotalMembers:         totalMembers,
		MatchesLast7Days:     matchesLast7Days,
		MatchesPrevious7Days: matchesPrevious7Days,
		PendingClose:         pendingClose,
	}, nil
}
