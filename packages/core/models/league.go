package models

import (
	"time"

	"gorm.io/gorm"
)

// League roles, resolved by the upstream auth layer and checked here.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type League struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;uniqueIndex" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Memberships []Membership `gorm:"foreignKey:LeagueID" json:"memberships,omitempty"`
}

func (League) TableName() string {
	return "leagues"
}

// Membership is a player's standing inside a league. AvgRating and
// MatchesPlayed are the league-wide post-match aggregates maintained by the
// league system; this core only reads them (trend back-solving, duel
// pairing, leaderboards).
type Membership struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	LeagueID         uint           `gorm:"not null;uniqueIndex:idx_memberships_league_player" json:"league_id"`
	PlayerID         uint           `gorm:"not null;uniqueIndex:idx_memberships_league_player" json:"player_id"`
	DisplayName      string         `gorm:"size:255" json:"display_name"`
	Role             string         `gorm:"size:20;default:member" json:"role"`
	AvgRating        float64        `gorm:"default:0" json:"avg_rating"`
	MatchesPlayed    int            `gorm:"default:0" json:"matches_played"`
	MvpCount         int            `gorm:"default:0" json:"mvp_count"`
	PredictionPoints int            `gorm:"default:0" json:"prediction_points"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Membership) TableName() string {
	return "memberships"
}

type CreateLeagueRequest struct {
	Name string `json:"name" binding:"required"`
}

type LeaderboardEntry struct {
	PlayerID         uint    `json:"player_id"`
	DisplayName      string  `json:"display_name"`
	AvgRating        float64 `json:"avg_rating"`
	MatchesPlayed    int     `json:"matches_played"`
	MvpCount         int     `json:"mvp_count"`
	PredictionPoints int     `json:"prediction_points"`
}
