package handlers

import (
	"errors"
	"log"
	"net/http"

	"liga-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type DuelHandler struct {
	duelService  *services.DuelService
	matchHandler *MatchHandler
}

func NewDuelHandler(duelService *services.DuelService, matchHandler *MatchHandler) *DuelHandler {
	return &DuelHandler{
		duelService:  duelService,
		matchHandler: matchHandler,
	}
}

// GenerateDuel pairs two confirmed players for the fixture's duel
// @Summary Generate the match duel
// @Description Pick the most balanced pair of confirmed players. Only league owners or admins, at most once per match.
// @Tags duels
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 201 {object} models.Duel
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id}/duel [post]
func (h *DuelHandler) GenerateDuel(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !h.matchHandler.requireMatchAdmin(c, matchID) {
		return
	}

	duel, err := h.duelService.GenerateDuel(matchID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		case errors.Is(err, services.ErrLeagueNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "League not found"})
		case errors.Is(err, services.ErrInsufficientRoster):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Fewer than two confirmed players"})
		case errors.Is(err, services.ErrNoCompatiblePair):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No compatible pair found"})
		case errors.Is(err, services.ErrDuelAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Duel already exists for this match"})
		default:
			log.Printf("Failed to generate duel for match %d: %v", matchID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate duel"})
		}
		return
	}

	c.JSON(http.StatusCreated, duel)
}

// GetDuel returns the enriched duel view
// @Summary Get the match duel
// @Description The match's duel with each duelist's league average, MVP count and match-side state.
// @Tags duels
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.DuelResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id}/duel [get]
func (h *DuelHandler) GetDuel(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	duel, err := h.duelService.GetDuel(matchID)
	if err != nil {
		if errors.Is(err, services.ErrDuelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Duel not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve duel"})
		return
	}

	c.JSON(http.StatusOK, duel)
}
