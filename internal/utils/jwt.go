package utils

import (
	"time" // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// JWT Claims
type Claims struct {
	WalletAddress        string `json:"wallet_address"` // Custom claim for the wallet address
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateToken creates a JWT token whose subject is the given wallet address
func GenerateToken(walletAddress, secret string, ttl time.Duration) (string, error) {
	// Set token claims
	claims := Claims{
		WalletAddress: walletAddress, // Custom claim for the wallet address
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   walletAddress,                           // Subject mirrors the wallet address
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)), // Absolute expiry
			IssuedAt:  jwt.NewNumericDate(time.Now()),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseToken parses and validates a JWT token string
func ParseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors (covers bad signature, expiry, malformed input)
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
