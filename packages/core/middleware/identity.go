package middleware

import (
	"net/http"
	"strconv"

	"liga-api/packages/core/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Identity reads the caller identity resolved by the upstream auth gateway.
// Authentication itself happens a layer above; by the time a request lands
// here the gateway has verified the session and forwards the player id.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-Player-ID")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing caller identity"})
			c.Abort()
			return
		}

		playerID, err := strconv.ParseUint(header, 10, 32)
		if err != nil || playerID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid caller identity"})
			c.Abort()
			return
		}

		c.Set("player_id", uint(playerID))
		c.Next()
	}
}

// GetPlayerID returns the caller's player id set by Identity.
func GetPlayerID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("player_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// LeagueFromParam resolves the league id from a route parameter, for
// league-scoped routes. Match-scoped handlers resolve the league themselves
// and call the role check inline.
func LeagueFromParam(name string) func(c *gin.Context) (uint, error) {
	return func(c *gin.Context) (uint, error) {
		id, err := strconv.ParseUint(c.Param(name), 10, 32)
		if err != nil {
			return 0, err
		}
		return uint(id), nil
	}
}

// RequireLeagueRole checks that the caller holds one of the given roles in
// the league. leagueOf maps the request to a league id (from the route param
// or by loading the match).
func RequireLeagueRole(db *gorm.DB, leagueOf func(c *gin.Context) (uint, error), roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, exists := GetPlayerID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		leagueID, err := leagueOf(c)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "League not found"})
			c.Abort()
			return
		}

		var membership models.Membership
		if err := db.Where("league_id = ? AND player_id = ?", leagueID, playerID).First(&membership).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a league member"})
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if membership.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			c.JSON(http.StatusForbidden, gin.H{
				"error":          "Insufficient permissions",
				"required_roles": roles,
			})
			c.Abort()
			return
		}

		c.Set("league_role", membership.Role)
		c.Next()
	}
}
