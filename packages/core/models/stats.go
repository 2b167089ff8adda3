package models

type LeagueStats struct {
	TotalMatches         int64 `json:"total_matches"`
	TotalMembers         int64 `json:"total_members"`
	MatchesLast7Days     int64 `json:"matches_last_7_days"`
	MatchesPrevious7Days int64 `json:"matches_previous_7_days"`
	PendingClose         int64 `json:"pending_close"`
}
