package services

import (
	"errors"
	"log"
	"math"
	"time"

	"liga-api/packages/core/models"

	"gorm.io/gorm"
)

type MatchService struct {
	db        *gorm.DB
	lifecycle *LifecycleService
	notifier  Notifier
}

func NewMatchService(db *gorm.DB, lifecycle *LifecycleService, notifier Notifier) *MatchService {
	return &MatchService{
		db:        db,
		lifecycle: lifecycle,
		notifier:  notifier,
	}
}

type MatchFilters struct {
	Page     int
	PerPage  int
	Status   *string
	DateFrom *time.Time
	DateTo   *time.Time
}

func (s *MatchService) CreateMatch(leagueID uint, req models.CreateMatchRequest) (*models.Match, error) {
	var league models.League
	if err := s.db.First(&league, leagueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}

	match := models.Match{
		LeagueID:       leagueID,
		IsExternal:     req.IsExternal,
		Location:       req.Location,
		DateTime:       req.DateTime,
		PricePerPlayer: req.PricePerPlayer,
		Status:         models.StatusOpen,
	}

	if err := s.db.Create(&match).Error; err != nil {
		return nil, err
	}

	return &match, nil
}

// GetMatch returns the match with roster and honors. A finished match whose
// voting window has lapsed is closed synchronously before being returned, so
// callers never observe a stale finished state.
func (s *MatchService) GetMatch(matchID uint) (*models.Match, error) {
	var match models.Match
	if err := s.db.Preload("Roster").Preload("Honors").First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if match.Status == models.StatusFinished && s.lifecycle.DeadlinePassed(&match, time.Now()) {
		return s.lifecycle.CloseMatch(matchID)
	}

	return &match, nil
}

// GetMatches lists a league's matches with pagination and filters. Listings
// that can surface finished matches run the lazy close pass first.
func (s *MatchService) GetMatches(leagueID uint, filters MatchFilters) (*models.PaginatedMatchResponse, error) {
	if filters.Status == nil || *filters.Status == models.StatusFinished {
		if _, err := s.lifecycle.CloseExpired(leagueID); err != nil {
			return nil, err
		}
	}

	query := s.db.Model(&models.Match{}).Where("league_id = ?", leagueID)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("date_time >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("date_time < ?", filters.DateTo.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var matches []models.Match
	offset := (filters.Page - 1) * filters.PerPage
	if err := query.Order("date_time DESC").
		Offset(offset).
		Limit(filters.PerPage).
		Preload("Roster").
		Find(&matches).Error; err != nil {
		return nil, err
	}

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PerPage,
		TotalPages: int(math.Ceil(float64(total) / float64(filters.PerPage))),
	}, nil
}

// UpdateMatchStatus moves the match along the normal sequence
// (open -> active -> finished), or, with override set, to any status at all.
// The override is the admin escape hatch and is deliberately not blocked by
// the state machine; callers log it as an admin action. Completing, by
// either path, goes through the closing routine.
func (s *MatchService) UpdateMatchStatus(matchID uint, status string, override bool) (*models.Match, error) {
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidTransition
	}

	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if status == models.StatusCompleted {
		if override {
			return s.lifecycle.ForceClose(matchID)
		}
		return s.lifecycle.CloseMatch(matchID)
	}

	if !override && !isNormalTransition(match.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.db.Model(&models.Match{}).Where("id = ?", matchID).Update("status", status).Error; err != nil {
		return nil, err
	}
	match.Status = status

	if status == models.StatusFinished {
		if err := s.notifier.VotingOpened(match.LeagueID, match.ID); err != nil {
			log.Printf("Error dispatching voting-opened notice for match %d: %v", match.ID, err)
		}
	}

	return &match, nil
}

func isNormalTransition(from, to string) bool {
	switch {
	case from == models.StatusOpen && to == models.StatusActive:
		return true
	case from == models.StatusActive && to == models.StatusFinished:
		return true
	case to == models.StatusCancelled && !models.IsTerminalStatus(from):
		return true
	}
	return false
}

// CancelMatch cancels a non-terminal match.
func (s *MatchService) CancelMatch(matchID uint) (*models.Match, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if models.IsTerminalStatus(match.Status) {
		return nil, ErrInvalidTransition
	}

	if err := s.db.Model(&models.Match{}).Where("id = ?", matchID).Update("status", models.StatusCancelled).Error; err != nil {
		return nil, err
	}
	match.Status = models.StatusCancelled

	return &match, nil
}

// ConvenePlayers adds players to an open match's roster. Re-convening an
// already-listed player updates their team and nothing else.
func (s *MatchService) ConvenePlayers(matchID uint, req models.ConveneRequest) (*models.Match, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if match.Status != models.StatusOpen {
		return nil, ErrMatchNotOpen
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, p := range req.Players {
		team := p.Team
		if team == "" || match.IsExternal {
			// External-opponent fixtures convene a single side.
			team = models.TeamA
		}

		var existing models.RosterEntry
		err := tx.Where("match_id = ? AND player_id = ?", matchID, p.PlayerID).First(&existing).Error
		if err == nil {
			if err := tx.Model(&existing).Update("team", team).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			return nil, err
		}

		entry := models.RosterEntry{
			MatchID:  matchID,
			PlayerID: p.PlayerID,
			Team:     team,
		}
		if err := tx.Create(&entry).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := s.notifier.MatchConvened(match.LeagueID, match.ID); err != nil {
		log.Printf("Error dispatching match-convened notice for match %d: %v", match.ID, err)
	}

	return s.GetMatch(matchID)
}

// ConfirmAttendance flips a player's confirmation flag. Only legal while the
// match is open.
func (s *MatchService) ConfirmAttendance(matchID, playerID uint, confirmed bool) (*models.RosterEntry, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if match.Status != models.StatusOpen {
		return nil, ErrMatchNotOpen
	}

	var entry models.RosterEntry
	if err := s.db.Where("match_id = ? AND player_id = ?", matchID, playerID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotConvened
		}
		return nil, err
	}

	if err := s.db.Model(&entry).Update("has_confirmed", confirmed).Error; err != nil {
		return nil, err
	}
	entry.HasConfirmed = confirmed

	return &entry, nil
}

// RecordScore stores the score. Accepted while the match is being played or
// waiting out the voting window; last writer wins.
func (s *MatchService) RecordScore(matchID uint, req models.RecordScoreRequest) (*models.Match, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if match.Status != models.StatusActive && match.Status != models.StatusFinished {
		return nil, ErrInvalidTransition
	}

	updates := map[string]interface{}{
		"score_a": req.ScoreA,
		"score_b": req.ScoreB,
	}
	if err := s.db.Model(&models.Match{}).Where("id = ?", matchID).Updates(updates).Error; err != nil {
		return nil, err
	}
	match.ScoreA = req.ScoreA
	match.ScoreB = req.ScoreB

	return &match, nil
}
