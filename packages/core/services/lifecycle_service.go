package services

import (
	"errors"
	"log"
	"time"

	"liga-api/packages/core/models"

	"gorm.io/gorm"
)

// LifecycleService owns closing. There is no background requirement: any
// read of finished matches calls CloseExpired first, and the cron sweep runs
// the exact same routine as a belt-and-braces pass.
type LifecycleService struct {
	db     *gorm.DB
	rating *RatingService
}

func NewLifecycleService(db *gorm.DB, rating *RatingService) *LifecycleService {
	return &LifecycleService{
		db:     db,
		rating: rating,
	}
}

// CloseMatch closes a finished match: aggregation plus the status flip in a
// single transaction. Idempotent: closing a completed match is a no-op. The
// flip is conditional on the status still being what we read, so of two
// concurrent closers exactly one wins and the loser just re-reads.
func (s *LifecycleService) CloseMatch(matchID uint) (*models.Match, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if match.Status == models.StatusCompleted || match.Status == models.StatusCancelled {
		return &match, nil
	}
	if match.Status != models.StatusFinished {
		return nil, ErrInvalidTransition
	}

	return s.close(&match)
}

// ForceClose is the admin escape hatch: it completes a match from any
// non-cancelled state, running the same closing routine. Completed is still
// a no-op.
func (s *LifecycleService) ForceClose(matchID uint) (*models.Match, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if match.Status == models.StatusCompleted {
		return &match, nil
	}
	if match.Status == models.StatusCancelled {
		return nil, ErrInvalidTransition
	}

	return s.close(&match)
}

func (s *LifecycleService) close(match *models.Match) (*models.Match, error) {
	priorStatus := match.Status

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := s.rating.Aggregate(tx, match); err != nil {
		tx.Rollback()
		return nil, err
	}

	result := tx.Model(&models.Match{}).
		Where("id = ? AND status = ?", match.ID, priorStatus).
		Update("status", models.StatusCompleted)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Someone else closed (or moved) the match first. Drop our work and
		// hand back whatever won.
		tx.Rollback()
		var current models.Match
		if err := s.db.First(&current, match.ID).Error; err != nil {
			return nil, err
		}
		return &current, nil
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	var closed models.Match
	if err := s.db.Preload("Roster").Preload("Honors").First(&closed, match.ID).Error; err != nil {
		return nil, err
	}
	return &closed, nil
}

// CloseExpired closes every finished match whose voting window has lapsed.
// leagueID 0 means all leagues (the cron sweep). Individual close failures
// are logged and skipped so one broken match does not block the rest.
func (s *LifecycleService) CloseExpired(leagueID uint) (int, error) {
	cutoff := time.Now().Add(-models.VotingWindow)

	query := s.db.Where("status = ? AND date_time < ?", models.StatusFinished, cutoff)
	if leagueID != 0 {
		query = query.Where("league_id = ?", leagueID)
	}

	var expired []models.Match
	if err := query.Find(&expired).Error; err != nil {
		return 0, err
	}

	closed := 0
	for _, match := range expired {
		if _, err := s.CloseMatch(match.ID); err != nil {
			log.Printf("Error closing expired match %d: %v", match.ID, err)
			continue
		}
		closed++
	}
	return closed, nil
}

// DeadlinePassed reports whether ballots for the match are too late.
func (s *LifecycleService) DeadlinePassed(match *models.Match, now time.Time) bool {
	return now.After(match.VotingDeadline())
}
