package services

import "errors"

// Business errors surfaced to handlers. Everything here is an expected
// outcome rendered as a specific user-facing message, not logged as a
// failure. Storage and internal errors propagate as-is (or wrapped in
// ErrSelectionFailure for the pairing path) and are logged generically.
var (
	ErrLeagueNotFound = errors.New("league not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrPlayerNotFound = errors.New("player not found")

	// Lifecycle
	ErrInvalidTransition = errors.New("action not allowed for current match status")
	ErrMatchNotOpen      = errors.New("match is not open")

	// Voting
	ErrAlreadyVoted  = errors.New("voter already has a ballot for this match")
	ErrVotingTimeout = errors.New("voting deadline has passed")
	ErrNotConvened   = errors.New("player is not on the match roster")
	ErrInvalidBallot = errors.New("ballot must rate every roster member exactly once")

	// Duel pairing
	ErrInsufficientRoster = errors.New("fewer than two confirmed players")
	ErrNoCompatiblePair   = errors.New("no compatible pair found")
	ErrSelectionFailure   = errors.New("duel selection failed")
	ErrDuelAlreadyExists  = errors.New("duel already exists for this match")
	ErrDuelNotFound       = errors.New("duel not found")
)
