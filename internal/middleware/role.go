package middleware

import (
	"botmarket/internal/store" // Account lookups
	"net/http"                 // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// RequireRoleMiddleware checks the user's role from the database on each
// request and rejects anyone whose role is not in the allowed set. The
// resolved user is stored in the context for downstream handlers.
func RequireRoleMiddleware(db *gorm.DB, roles ...string) gin.HandlerFunc {
	accounts := store.NewAccountStore(db)
	return func(c *gin.Context) {
		address, exists := c.Get("walletAddress") // Get wallet address from context
		// Check if the JWT middleware ran first
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Fetch the user from the database
		user, err := accounts.FindByWallet(address.(string))
		if err != nil {
			// If user not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		// Check if the user's role is in the allowed set
		allowed := false
		for _, role := range roles {
			if user.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			// If not allowed, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Set("currentUser", user) // Store the resolved user for handlers
		c.Next()                   // Proceed to the next handler
	}
}
