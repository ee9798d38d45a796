package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"botmarket/internal/config" // Application configuration
	"botmarket/internal/domain" // Importing domain models
	"botmarket/internal/store"  // Persistence stores
	"botmarket/internal/utils"  // Signature and JWT utilities

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// WalletAuthRequest is the signed-message login payload
type WalletAuthRequest struct {
	Address   string `json:"address" binding:"required"`   // Claimed wallet address
	Signature string `json:"signature" binding:"required"` // Hex-encoded signature over Message
	Message   string `json:"message" binding:"required"`   // The message that was signed
}

// RegisterRequest is the email registration payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`            // Email must be provided and valid
	Username string `json:"username" binding:"required,min=1,max=100"` // Username must be provided
}

// TokenResponse carries the issued credential and a summary of its owner
type TokenResponse struct {
	AccessToken string    `json:"access_token"` // JWT token
	TokenType   string    `json:"token_type"`   // Always "bearer"
	User        UserBrief `json:"user"`         // Owning account summary
}

// Web3AuthHandler authenticates a wallet signature and issues a JWT.
// The account is created on first successful authentication.
func Web3AuthHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	accounts := store.NewAccountStore(db)
	return func(c *gin.Context) {
		var req WalletAuthRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Reject malformed addresses before touching the verifier
		if !utils.IsHexWalletAddress(req.Address) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet address"})
			return
		}
		// Verify the signature; all recovery failures surface as false
		if !utils.VerifyWalletSignature(req.Address, req.Signature, req.Message) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}
		// Resolve the account, creating it on first login
		user, err := accounts.FindOrCreateByWallet(req.Address)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"address": req.Address, // Claimed address
				"error":   err.Error(), // Error message
			}).Error("Account resolution failed") // Log resolution failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
			return
		}
		// Issue the bearer credential with the wallet address as subject
		token, err := utils.GenerateToken(*user.WalletAddress, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Log successful authentication
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,             // Account ID
			"address": *user.WalletAddress, // Normalized wallet address
		}).Info("Wallet authenticated")
		// Return the token and account summary
		c.JSON(http.StatusOK, TokenResponse{
			AccessToken: token,    // JWT token
			TokenType:   "bearer", // Token type
			User: UserBrief{
				ID:            user.ID,            // Account ID
				WalletAddress: user.WalletAddress, // Wallet address
				Role:          user.Role,          // Account role
			},
		})
	}
}

// RegisterHandler creates an account from an email and username
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	accounts := store.NewAccountStore(db)
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Create the account; duplicate email is a distinct failure
		user := domain.User{
			Email:    &req.Email,      // Registered email
			Username: req.Username,    // Chosen username
			Role:     domain.RoleUser, // New accounts start as plain users
			IsActive: true,            // Active on creation
		}
		if err := accounts.Create(&user); err != nil {
			if errors.Is(err, store.ErrConflict) {
				// Duplicate email, return bad request
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User created", "id": user.ID})
	}
}

// MeHandler returns the authenticated account's summary
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	accounts := store.NewAccountStore(db)
	return func(c *gin.Context) {
		user := currentUser(c, accounts) // Resolve the account from the token subject
		if user == nil {
			// Token subject no longer maps to an account
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
