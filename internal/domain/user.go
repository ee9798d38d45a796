package domain

import "time"

// User roles
const (
	RoleUser   = "user"   // Regular marketplace user
	RoleSeller = "seller" // Can list and manage products
	RoleAdmin  = "admin"  // Full access
)

// User Model
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                      // Primary key
	WalletAddress *string   `gorm:"size:42;uniqueIndex" json:"wallet_address"` // Ethereum address, stored lowercase
	Email         *string   `gorm:"size:255;uniqueIndex" json:"email"`         // Optional email (unique)
	Username      string    `gorm:"size:100" json:"username"`                  // Display name
	Role          string    `gorm:"size:20;default:user" json:"role"`          // Role: user, seller or admin
	IsActive      bool      `gorm:"default:true" json:"is_active"`             // Soft-delete flag
	CreatedAt     time.Time `json:"created_at"`                                // Timestamp of creation
	UpdatedAt     time.Time `json:"updated_at"`                                // Timestamp of last update
	Orders        []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"` // One-to-many relationship with Order
}
