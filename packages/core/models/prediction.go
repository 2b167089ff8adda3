package models

import "time"

// Prediction is written by the external prediction game and only read here,
// for the ORACLE honor and for leaderboard point totals.
type Prediction struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID   uint      `gorm:"not null;uniqueIndex:idx_predictions_match_player" json:"match_id"`
	PlayerID  uint      `gorm:"not null;uniqueIndex:idx_predictions_match_player" json:"player_id"`
	Points    int       `gorm:"default:0" json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Prediction) TableName() string {
	return "predictions"
}
