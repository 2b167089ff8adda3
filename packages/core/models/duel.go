package models

import (
	"time"

	"gorm.io/gorm"
)

// Duel pairs two confirmed players of a match for bragging rights. At most
// one duel per match, enforced by the unique index on match_id. The winner
// is resolved from the match outcome by a separate process and only read
// back here.
type Duel struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID      uint           `gorm:"not null;uniqueIndex:idx_duels_match" json:"match_id"`
	ChallengerID uint           `gorm:"not null" json:"challenger_id"`
	RivalID      uint           `gorm:"not null" json:"rival_id"`
	WinnerID     *uint          `json:"winner_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Match Match `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
}

func (Duel) TableName() string {
	return "duels"
}

// DuelSide is the enriched read-side view of one duelist.
type DuelSide struct {
	PlayerID      uint     `json:"player_id"`
	DisplayName   string   `json:"display_name"`
	LeagueAverage float64  `json:"league_average"`
	MvpCount      int      `json:"mvp_count"`
	Team          string   `json:"team"`
	MatchRating   *float64 `json:"match_rating,omitempty"`
}

type DuelResponse struct {
	ID         uint      `json:"id"`
	MatchID    uint      `json:"match_id"`
	Challenger DuelSide  `json:"challenger"`
	Rival      DuelSide  `json:"rival"`
	WinnerID   *uint     `json:"winner_id"`
	CreatedAt  time.Time `json:"created_at"`
}
