package middleware

import (
	"net/http"                // HTTP status codes
	"stocker/internal/db"     // Data-access service
	"stocker/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware re-verifies the user's role from the database on
// each request rather than trusting the token's role claim.
func AdminOnlyMiddleware(database *db.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("email")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := database.GetUser(c.Request.Context(), email.(string))
		if err != nil || user.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
