package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"liga-api/packages/core/middleware"
	"liga-api/packages/core/models"
	"liga-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MatchHandler struct {
	matchService *services.MatchService
	db           *gorm.DB
}

func NewMatchHandler(matchService *services.MatchService, db *gorm.DB) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		db:           db,
	}
}

// CreateMatch schedules a new match for a league
// @Summary Schedule a match
// @Description Schedule a new match in a league. Only league owners or admins can schedule.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "League ID"
// @Param match body models.CreateMatchRequest true "Match data"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /leagues/{id}/matches [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	leagueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	match, err := h.matchService.CreateMatch(leagueID, req)
	if err != nil {
		if errors.Is(err, services.ErrLeagueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "League not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create match"})
		return
	}

	c.JSON(http.StatusCreated, match)
}

// GetMatches lists a league's matches with pagination and filters
// @Summary List league matches
// @Description List a league's matches with optional status and date filters. Expired finished matches are closed before the listing is returned.
// @Tags matches
// @Produce json
// @Param id path int true "League ID"
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Param status query string false "Filter by match status" Enums(open,active,finished,completed,cancelled)
// @Param date_from query string false "Filter from date (YYYY-MM-DD format)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD format)"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /leagues/{id}/matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	leagueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return
	}
	if perPage > 100 {
		perPage = 100
	}

	filters := services.MatchFilters{
		Page:    page,
		PerPage: perPage,
	}

	if status := c.Query("status"); status != "" {
		if !models.IsValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be one of: open, active, finished, completed, cancelled"})
			return
		}
		filters.Status = &status
	}

	if dateFromStr := c.Query("date_from"); dateFromStr != "" {
		dateFrom, err := time.Parse("2006-01-02", dateFromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from format. Use YYYY-MM-DD"})
			return
		}
		filters.DateFrom = &dateFrom
	}

	if dateToStr := c.Query("date_to"); dateToStr != "" {
		dateTo, err := time.Parse("2006-01-02", dateToStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to format. Use YYYY-MM-DD"})
			return
		}
		filters.DateTo = &dateTo
	}

	result, err := h.matchService.GetMatches(leagueID, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMatch returns one match with roster, ratings and honors
// @Summary Get a match
// @Description Get a match with its roster, ratings and honors. A finished match past its voting window is closed before being returned.
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	match, err := h.matchService.GetMatch(matchID)
	if err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve match"})
		return
	}

	c.JSON(http.StatusOK, match)
}

// UpdateMatchStatus changes the match status
// @Summary Update match status
// @Description Move a match along the normal sequence, or to any status with override=true. Only league owners or admins. Overrides are logged as admin actions.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param override query bool false "Bypass the normal transition sequence"
// @Param update body models.UpdateMatchStatusRequest true "Target status"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id}/status [patch]
func (h *MatchHandler) UpdateMatchStatus(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !h.requireMatchAdmin(c, matchID) {
		return
	}

	var req models.UpdateMatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	override := c.Query("override") == "true"
	if override {
		playerID, _ := middleware.GetPlayerID(c)
		log.Printf("Admin action: player %d overrode match %d status to %s", playerID, matchID, req.Status)
	}

	match, err := h.matchService.UpdateMatchStatus(matchID, req.Status, override)
	if err != nil {
		h.renderMatchError(c, err, "Failed to update match status")
		return
	}

	c.JSON(http.StatusOK, match)
}

// CloseMatch force-completes a match
// @Summary Force-close a match
// @Description Complete a match immediately, running rating aggregation and honor assignment. Only league owners or admins. Closing a completed match is a no-op.
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id}/close [patch]
func (h *MatchHandler) CloseMatch(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !h.requireMatchAdmin(c, matchID) {
		return
	}

	playerID, _ := middleware.GetPlayerID(c)
	log.Printf("Admin action: player %d force-closed match %d", playerID, matchID)

	match, err := h.matchService.UpdateMatchStatus(matchID, models.StatusCompleted, true)
	if err != nil {
		h.renderMatchError(c, err, "Failed to close match")
		return
	}

	c.JSON(http.StatusOK, match)
}

// RecordScore records the match score
// @Summary Record score
// @Description Record the score of a match being played or awaiting close. Last writer wins.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param score body models.RecordScoreRequest true "Score"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id}/score [patch]
func (h *MatchHandler) RecordScore(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.RecordScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	match, err := h.matchService.RecordScore(matchID, req)
	if err != nil {
		h.renderMatchError(c, err, "Failed to record score")
		return
	}

	c.JSON(http.StatusOK, match)
}

// ConvenePlayers adds players to the roster
// @Summary Convene players
// @Description Add players to an open match's roster. Only league owners or admins.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param roster body models.ConveneRequest true "Players to convene"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id}/roster [post]
func (h *MatchHandler) ConvenePlayers(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !h.requireMatchAdmin(c, matchID) {
		return
	}

	var req models.ConveneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	match, err := h.matchService.ConvenePlayers(matchID, req)
	if err != nil {
		h.renderMatchError(c, err, "Failed to convene players")
		return
	}

	c.JSON(http.StatusOK, match)
}

// ConfirmAttendance flips the caller's confirmation flag
// @Summary Confirm attendance
// @Description Confirm or withdraw attendance on an open match. Fails once the match has left the open status.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param confirmation body models.ConfirmAttendanceRequest true "Confirmation flag"
// @Success 200 {object} models.RosterEntry
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id}/confirm [patch]
func (h *MatchHandler) ConfirmAttendance(c *gin.Context) {
	playerID, exists := middleware.GetPlayerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	matchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.ConfirmAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	entry, err := h.matchService.ConfirmAttendance(matchID, playerID, *req.HasConfirmed)
	if err != nil {
		h.renderMatchError(c, err, "Failed to update attendance")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// CancelMatch cancels a match
// @Summary Cancel a match
// @Description Cancel a non-terminal match. Only league owners or admins.
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id}/cancel [patch]
func (h *MatchHandler) CancelMatch(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !h.requireMatchAdmin(c, matchID) {
		return
	}

	match, err := h.matchService.CancelMatch(matchID)
	if err != nil {
		h.renderMatchError(c, err, "Failed to cancel match")
		return
	}

	c.JSON(http.StatusOK, match)
}

// requireMatchAdmin resolves the match's league and checks the caller is an
// owner or admin there. Writes the error response itself and reports whether
// the caller may proceed.
func (h *MatchHandler) requireMatchAdmin(c *gin.Context, matchID uint) bool {
	playerID, exists := middleware.GetPlayerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return false
	}

	var match models.Match
	if err := h.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
		return false
	}

	var membership models.Membership
	if err := h.db.Where("league_id = ? AND player_id = ?", match.LeagueID, playerID).First(&membership).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only league owners or admins can do this"})
		return false
	}

	if membership.Role != models.RoleOwner && membership.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only league owners or admins can do this"})
		return false
	}

	return true
}

func (h *MatchHandler) renderMatchError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
	case errors.Is(err, services.ErrNotConvened):
		c.JSON(http.StatusNotFound, gin.H{"error": "Player is not on the match roster"})
	case errors.Is(err, services.ErrMatchNotOpen):
		c.JSON(http.StatusConflict, gin.H{"error": "Match is not open"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Action not allowed for current match status"})
	default:
		log.Printf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}
