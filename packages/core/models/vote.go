package models

import (
	"time"

	"gorm.io/gorm"
)

const MaxCommentLength = 500

// Vote is one voter's rating of one target in one match. The unique index is
// the real guard against double voting; the service-level "already voted"
// check only exists to give a friendly error before hitting it.
type Vote struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID  uint `gorm:"not null;uniqueIndex:idx_votes_match_voter_target" json:"match_id"`
	VoterID  uint `gorm:"not null;uniqueIndex:idx_votes_match_voter_target" json:"voter_id"`
	TargetID uint `gorm:"not null;uniqueIndex:idx_votes_match_voter_target" json:"target_id"`

	Overall int `gorm:"not null" json:"overall"` // 1-10

	// Sub-stats, 0 means "not scored" and is excluded from averages.
	Pace     int `gorm:"default:0" json:"pace"`
	Shooting int `gorm:"default:0" json:"shooting"`
	Passing  int `gorm:"default:0" json:"passing"`
	Physical int `gorm:"default:0" json:"physical"`

	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Vote) TableName() string {
	return "votes"
}

// BallotEntry is one target's scores inside a submitted ballot.
type BallotEntry struct {
	TargetID uint   `json:"target_id" binding:"required"`
	Overall  int    `json:"overall" binding:"required,min=1,max=10"`
	Pace     int    `json:"pace" binding:"min=0,max=10"`
	Shooting int    `json:"shooting" binding:"min=0,max=10"`
	Passing  int    `json:"passing" binding:"min=0,max=10"`
	Physical int    `json:"physical" binding:"min=0,max=10"`
	Comment  string `json:"comment" binding:"max=500"`
}

// SubmitBallotRequest carries a voter's complete ballot for a match: one
// entry per roster member, the voter included. It is accepted or rejected
// as a whole; there is no partial submission.
type SubmitBallotRequest struct {
	Entries []BallotEntry `json:"entries" binding:"required,min=1,dive"`
}

type VotingProgress struct {
	MatchID    uint `json:"match_id"`
	VotesCast  int  `json:"votes_cast"`
	RosterSize int  `json:"roster_size"`
}

// LockerRoomComment is a non-blank vote comment surfaced read-side.
type LockerRoomComment struct {
	TargetID   uint      `json:"target_id"`
	TargetName string    `json:"target_name"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
