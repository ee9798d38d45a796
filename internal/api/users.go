package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"botmarket/internal/domain" // Importing domain models
	"botmarket/internal/store"  // Persistence stores

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// UserUpdateRequest is the allow-listed account patch payload.
// Role and active flag cannot be changed through this endpoint.
type UserUpdateRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`            // New email
	Username *string `json:"username" binding:"omitempty,min=1,max=100"` // New username
}

// GetUserHandler returns a public account summary by ID
func GetUserHandler(db *gorm.DB) gin.HandlerFunc {
	accounts := store.NewAccountStore(db)
	return func(c *gin.Context) {
		// Parse the user ID from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		user, err := accounts.FindByID(uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Return the account summary
		c.JSON(http.StatusOK, gin.H{
			"id":             user.ID,            // Account ID
			"wallet_address": user.WalletAddress, // Wallet address
			"email":          user.Email,         // Email, may be nil
			"username":       user.Username,      // Username
			"role":           user.Role,          // Account role
		})
	}
}

// UpdateUserHandler applies an allow-listed patch to an account.
// Only the account owner or an admin may update it.
func UpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	accounts := store.NewAccountStore(db)
	return func(c *gin.Context) {
		actor := currentUser(c, accounts) // Resolve the acting account
		if actor == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Parse the user ID from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		// Only self-service or admin updates are allowed
		if actor.ID != uint(id) && actor.Role != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		var req UserUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Apply only the provided fields
		if _, err := accounts.Update(uint(id), store.AccountUpdate{
			Email:    req.Email,    // New email, if set
			Username: req.Username, // New username, if set
		}); err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"}) // Account absent
			case errors.Is(err, store.ErrConflict):
				c.JSON(http.StatusConflict, gin.H{"error": "Email already taken"}) // Duplicate email
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			}
			return
		}
		// Return success response
		c.JSON(http.StatusOK, MessageResponse{Message: "User updated"})
	}
}
