package models

import (
	"time"

	"gorm.io/gorm"
)

// Honor types. They are not mutually exclusive: one player can hold MVP and
// ORACLE for the same match.
const (
	HonorMVP      = "mvp"      // strictly highest match rating (all tied players)
	HonorTronco   = "tronco"   // strictly lowest match rating
	HonorFantasma = "fantasma" // convened but never confirmed attendance
	HonorOracle   = "oracle"   // best prediction-game scorer for the fixture
	HonorFigure   = "figure"   // duel winner, written by the duel-resolution process
)

// Honor is a computed award, never user-submitted. Rows for a match are
// wiped and rewritten when the aggregator runs, so closing is re-runnable.
type Honor struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID   uint           `gorm:"not null;uniqueIndex:idx_honors_match_player_type" json:"match_id"`
	PlayerID  uint           `gorm:"not null;uniqueIndex:idx_honors_match_player_type" json:"player_id"`
	HonorType string         `gorm:"size:20;not null;uniqueIndex:idx_honors_match_player_type" json:"honor_type"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Honor) TableName() string {
	return "honors"
}
