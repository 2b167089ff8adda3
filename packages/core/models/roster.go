package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TeamA = "A"
	TeamB = "B"
)

// RosterEntry is one convened player on a match. Rating fields stay null
// until the aggregator runs at close time; aggregation overwrites them, so
// re-closing is safe.
type RosterEntry struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID      uint           `gorm:"not null;uniqueIndex:idx_roster_match_player" json:"match_id"`
	PlayerID     uint           `gorm:"not null;uniqueIndex:idx_roster_match_player" json:"player_id"`
	Team         string         `gorm:"size:1;default:A" json:"team"`
	HasConfirmed bool           `gorm:"default:false" json:"has_confirmed"`
	MatchRating  *float64       `json:"match_rating"`
	MatchPace    *float64       `json:"match_pace"`
	MatchShot    *float64       `json:"match_shot"`
	MatchPass    *float64       `json:"match_pass"`
	MatchPhys    *float64       `json:"match_phys"`
	Trend        *float64       `json:"trend"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Match Match `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
}

func (RosterEntry) TableName() string {
	return "roster_entries"
}

type ConveneRequest struct {
	Players []ConvenedPlayer `json:"players" binding:"required,min=1,dive"`
}

type ConvenedPlayer struct {
	PlayerID uint   `json:"player_id" binding:"required"`
	Team     string `json:"team" binding:"omitempty,oneof=A B"`
}

type ConfirmAttendanceRequest struct {
	HasConfirmed *bool `json:"has_confirmed" binding:"required"`
}
