package models

import (
	"time"

	"gorm.io/gorm"
)

// Match statuses. Transitions follow open -> active -> finished -> completed,
// with cancelled reachable from any non-terminal state by an admin.
const (
	StatusOpen      = "open"
	StatusActive    = "active"
	StatusFinished  = "finished"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// VotingWindow is how long after kickoff the voting window stays open.
// Once date_time + VotingWindow has passed the match is closed on the next
// read (or by the hourly sweep, whichever comes first).
const VotingWindow = 24 * time.Hour

func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusOpen, StatusActive, StatusFinished, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Match struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	LeagueID       uint           `gorm:"not null;index" json:"league_id"`
	IsExternal     bool           `gorm:"default:false" json:"is_external"`
	Location       string         `gorm:"size:255" json:"location"`
	DateTime       time.Time      `gorm:"not null;index" json:"date_time"`
	PricePerPlayer float64        `gorm:"default:0" json:"price_per_player"`
	Status         string         `gorm:"size:20;default:open;index" json:"status"`
	ScoreA         *int           `json:"score_a"`
	ScoreB         *int           `json:"score_b"`
	MvpID          *uint          `json:"mvp_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	League League        `gorm:"foreignKey:LeagueID;references:ID" json:"league,omitempty"`
	Roster []RosterEntry `gorm:"foreignKey:MatchID" json:"roster,omitempty"`
	Honors []Honor       `gorm:"foreignKey:MatchID" json:"honors,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

// VotingDeadline is the hard cutoff for ballots on this match.
func (m *Match) VotingDeadline() time.Time {
	return m.DateTime.Add(VotingWindow)
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

type CreateMatchRequest struct {
	Location       string    `json:"location" binding:"required"`
	DateTime       time.Time `json:"date_time" binding:"required"`
	PricePerPlayer float64   `json:"price_per_player"`
	IsExternal     bool      `json:"is_external"`
}

type UpdateMatchStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open active finished completed cancelled"`
}

type RecordScoreRequest struct {
	ScoreA *int `json:"score_a" binding:"required,gte=0"`
	ScoreB *int `json:"score_b" binding:"required,gte=0"`
}
