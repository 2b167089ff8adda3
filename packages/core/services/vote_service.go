package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"liga-api/packages/core/models"

	"gorm.io/gorm"
)

type VoteService struct {
	db        *gorm.DB
	lifecycle *LifecycleService
}

func NewVoteService(db *gorm.DB, lifecycle *LifecycleService) *VoteService {
	return &VoteService{
		db:        db,
		lifecycle: lifecycle,
	}
}

// SubmitBallot stores a voter's complete ballot, all-or-nothing. A ballot
// must rate every roster member exactly once; because every ballot covers
// the full roster, two ballots by the same voter always collide on the
// (match, voter, target) unique index, so the store itself rejects the
// loser of a concurrent double submission and the Count pre-check only
// exists for the friendly error. A ballot past the deadline is rejected
// with a timeout and the match is closed on the spot instead of waiting
// for the next lazy pass.
func (s *VoteService) SubmitBallot(matchID, voterID uint, req models.SubmitBallotRequest) error {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMatchNotFound
		}
		return err
	}

	if match.Status != models.StatusFinished {
		return ErrInvalidTransition
	}

	if s.lifecycle.DeadlinePassed(&match, time.Now()) {
		if _, err := s.lifecycle.CloseMatch(matchID); err != nil {
			log.Printf("Error closing match %d after late ballot: %v", matchID, err)
		}
		return ErrVotingTimeout
	}

	var roster []models.RosterEntry
	if err := s.db.Where("match_id = ?", matchID).Find(&roster).Error; err != nil {
		return err
	}
	onRoster := make(map[uint]bool, len(roster))
	for _, e := range roster {
		onRoster[e.PlayerID] = true
	}
	if !onRoster[voterID] {
		return ErrNotConvened
	}

	rated := make(map[uint]bool, len(req.Entries))
	for _, entry := range req.Entries {
		if !onRoster[entry.TargetID] {
			return ErrNotConvened
		}
		if rated[entry.TargetID] {
			return ErrInvalidBallot
		}
		rated[entry.TargetID] = true
		if len(entry.Comment) > models.MaxCommentLength {
			return ErrInvalidBallot
		}
	}
	// Partial ballots would let two disjoint submissions by the same voter
	// slip past the unique index; full coverage keeps the collision
	// guaranteed.
	if len(rated) != len(roster) {
		return ErrInvalidBallot
	}

	var existing int64
	if err := s.db.Model(&models.Vote{}).
		Where("match_id = ? AND voter_id = ?", matchID, voterID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return ErrAlreadyVoted
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, entry := range req.Entries {
		vote := models.Vote{
			MatchID:  matchID,
			VoterID:  voterID,
			TargetID: entry.TargetID,
			Overall:  entry.Overall,
			Pace:     entry.Pace,
			Shooting: entry.Shooting,
			Passing:  entry.Passing,
			Physical: entry.Physical,
			Comment:  entry.Comment,
		}

		// Overall self-votes count; self sub-stats do not.
		if entry.TargetID == voterID {
			vote.Pace, vote.Shooting, vote.Passing, vote.Physical = 0, 0, 0, 0
		}

		if err := tx.Create(&vote).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyVoted
			}
			return err
		}
	}

	return tx.Commit().Error
}

// VotingProgress is the admin view of how far voting has come: distinct
// voters over roster size.
func (s *VoteService) VotingProgress(matchID uint) (*models.VotingProgress, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	var rosterSize int64
	if err := s.db.Model(&models.RosterEntry{}).Where("match_id = ?", matchID).Count(&rosterSize).Error; err != nil {
		return nil, err
	}

	var voters []uint
	if err := s.db.Model(&models.Vote{}).
		Where("match_id = ?", matchID).
		Distinct("voter_id").
		Pluck("voter_id", &voters).Error; err != nil {
		return nil, err
	}

	return &models.VotingProgress{
		MatchID:    matchID,
		VotesCast:  len(voters),
		RosterSize: int(rosterSize),
	}, nil
}

// LockerRoomComments surfaces vote comments keyed by the target's display
// name. Blank and whitespace-only comments never make the board.
func (s *VoteService) LockerRoomComments(matchID uint) ([]models.LockerRoomComment, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	var votes []models.Vote
	if err := s.db.Where("match_id = ? AND comment <> ''", matchID).
		Order("created_at ASC").
		Find(&votes).Error; err != nil {
		return nil, err
	}

	var memberships []models.Membership
	if err := s.db.Where("league_id = ?", match.LeagueID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(memberships))
	for _, m := range memberships {
		names[m.PlayerID] = m.DisplayName
	}

	comments := make([]models.LockerRoomComment, 0, len(votes))
	for _, v := range votes {
		if strings.TrimSpace(v.Comment) == "" {
			continue
		}
		comments = append(comments, models.LockerRoomComment{
			TargetID:   v.TargetID,
			TargetName: names[v.TargetID],
			Comment:    v.Comment,
			CreatedAt:  v.CreatedAt,
		})
	}
	return comments, nil
}
