package handlers

import (
	"errors"
	"log"
	"net/http"

	"liga-api/packages/core/middleware"
	"liga-api/packages/core/models"
	"liga-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService  *services.VoteService
	matchHandler *MatchHandler
}

func NewVoteHandler(voteService *services.VoteService, matchHandler *MatchHandler) *VoteHandler {
	return &VoteHandler{
		voteService:  voteService,
		matchHandler: matchHandler,
	}
}

// SubmitBallot submits the caller's complete ballot for a match
// @Summary Submit a ballot
// @Description Submit the caller's ratings, one entry per roster member. One ballot per voter per match, accepted or rejected as a whole. Ballots after the 24h deadline are rejected and close the match.
// @Tags votes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param ballot body models.SubmitBallotRequest true "Ballot"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id}/votes [post]
func (h *VoteHandler) SubmitBallot(c *gin.Context) {
	voterID, exists := middleware.GetPlayerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	matchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.SubmitBallotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.voteService.SubmitBallot(matchID, voterID, req); err != nil {
		switch {
		case errors.Is(err, services.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		case errors.Is(err, services.ErrNotConvened):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Voter or target is not on the match roster"})
		case errors.Is(err, services.ErrInvalidBallot):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ballot must rate every roster member exactly once"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Voting is not open for this match"})
		case errors.Is(err, services.ErrAlreadyVoted):
			c.JSON(http.StatusConflict, gin.H{"error": "You already voted for this match"})
		case errors.Is(err, services.ErrVotingTimeout):
			c.JSON(http.StatusGone, gin.H{"error": "Voting deadline has passed"})
		default:
			log.Printf("Failed to submit ballot for match %d: %v", matchID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit ballot"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Ballot recorded"})
}

// GetVotingProgress shows how voting is going
// @Summary Voting progress
// @Description Votes cast versus roster size. Only league owners or admins.
// @Tags votes
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.VotingProgress
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id}/votes/progress [get]
func (h *VoteHandler) GetVotingProgress(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !h.matchHandler.requireMatchAdmin(c, matchID) {
		return
	}

	progress, err := h.voteService.VotingProgress(matchID)
	if err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve voting progress"})
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetLockerRoomComments returns the match's locker-room quotes
// @Summary Locker-room comments
// @Description Non-blank vote comments keyed by target player name.
// @Tags votes
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {array} models.LockerRoomComment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id}/comments [get]
func (h *VoteHandler) GetLockerRoomComments(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.voteService.LockerRoomComments(matchID)
	if err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}
