package domain

import "time"

// Product types
const (
	ProductTypeHardware     = "hardware"     // GPU instances, machines
	ProductTypeService      = "service"      // AI bots, trading bots
	ProductTypeSubscription = "subscription" // Monthly plans
)

// Product Model
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                 // Primary key
	Name        string    `gorm:"size:255;not null" json:"name"`        // Product name
	Description string    `gorm:"type:text" json:"description"`         // Free-form description
	ProductType string    `gorm:"size:20;not null" json:"product_type"` // Type: hardware, service or subscription
	Price       float64   `gorm:"not null" json:"price"`                // Price in USD
	PriceCrypto string    `gorm:"size:50" json:"price_crypto"`          // Optional crypto price hint
	ImageURL    string    `gorm:"size:500" json:"image_url"`            // Product image
	Specs       string    `gorm:"type:text" json:"specs"`               // JSON blob: {gpu: "A100", vram: "40GB", ...}
	SellerID    *uint     `json:"seller_id"`                            // Foreign key to the seller User
	IsActive    bool      `gorm:"default:true" json:"is_active"`        // Soft-delete flag
	CreatedAt   time.Time `json:"created_at"`                           // Timestamp of creation
}
