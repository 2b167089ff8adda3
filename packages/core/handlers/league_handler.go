package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"liga-api/packages/core/models"
	"liga-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type LeagueHandler struct {
	leagueService *services.LeagueService
	statsService  *services.StatsService
}

func NewLeagueHandler(leagueService *services.LeagueService, statsService *services.StatsService) *LeagueHandler {
	return &LeagueHandler{
		leagueService: leagueService,
		statsService:  statsService,
	}
}

// CreateLeague creates a league
// @Summary Create a league
// @Description Create a league. Membership and roles are managed by the league system; this just registers the container.
// @Tags leagues
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param league body models.CreateLeagueRequest true "League data"
// @Success 201 {object} models.League
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /leagues [post]
func (h *LeagueHandler) CreateLeague(c *gin.Context) {
	var req models.CreateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	league, err := h.leagueService.CreateLeague(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create league"})
		return
	}

	c.JSON(http.StatusCreated, league)
}

// GetLeaderboard returns the league ranking
// @Summary League leaderboard
// @Description Members ranked by league average rating, with MVP counts and prediction points.
// @Tags leagues
// @Produce json
// @Param id path int true "League ID"
// @Param limit query int false "Number of entries (default: 25, max: 100)"
// @Success 200 {array} models.LeaderboardEntry
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /leagues/{id}/leaderboard [get]
func (h *LeagueHandler) GetLeaderboard(c *gin.Context) {
	leagueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "25"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	if limit > 100 {
		limit = 100
	}

	entries, err := h.leagueService.GetLeaderboard(leagueID, limit)
	if err != nil {
		if errors.Is(err, services.ErrLeagueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "League not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leaderboard"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetLeagueStats returns league activity counters
// @Summary League statistics
// @Description Match and member counts, recent activity, and matches awaiting close.
// @Tags leagues
// @Produce json
// @Param id path int true "League ID"
// @Success 200 {object} models.LeagueStats
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /leagues/{id}/stats [get]
func (h *LeagueHandler) GetLeagueStats(c *gin.Context) {
	leagueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.statsService.GetLeagueStats(leagueID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
