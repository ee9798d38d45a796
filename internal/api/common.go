package api

import (
	"botmarket/internal/domain" // Importing domain models
	"botmarket/internal/store"  // Persistence stores

	"github.com/gin-gonic/gin" // Gin web framework
)

// MessageResponse is the generic success envelope
type MessageResponse struct {
	Message string `json:"message"` // Human-readable outcome
}

// UserBrief is the minimal user info embedded in other responses
type UserBrief struct {
	ID            uint    `json:"id"`             // User ID
	WalletAddress *string `json:"wallet_address"` // Wallet address (nil for email accounts)
	Role          string  `json:"role"`           // User role
}

// currentUser resolves the authenticated account from the wallet address the
// JWT middleware stored in the context. Returns nil when the context holds no
// address or the account no longer exists.
func currentUser(c *gin.Context, accounts *store.AccountStore) *domain.User {
	address, exists := c.Get("walletAddress") // Set by JWTAuthMiddleware
	if !exists {
		return nil
	}
	user, err := accounts.FindByWallet(address.(string))
	if err != nil {
		return nil
	}
	return user
}
