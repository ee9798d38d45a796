package domain

import "time"

// Order statuses. Only pending, paid and cancelled are produced by the API;
// processing, completed and refunded exist for external fulfillment tooling.
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

// Order Model
type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`                  // Primary key
	UserID          uint      `gorm:"not null;index" json:"user_id"`         // Foreign key to the buyer User
	ProductID       uint      `gorm:"not null;index" json:"product_id"`      // Foreign key to Product
	Status          string    `gorm:"size:20;default:pending" json:"status"` // Lifecycle status
	AmountUSD       float64   `gorm:"not null" json:"amount_usd"`            // Fiat amount at order time
	AmountCrypto    float64   `json:"amount_crypto"`                         // Quoted crypto amount
	CryptoCurrency  string    `gorm:"size:10" json:"crypto_currency"`        // USDT, USDC or DAI
	TransactionHash string    `gorm:"size:100" json:"transaction_hash"`      // Recorded on payment confirmation
	CreatedAt       time.Time `json:"created_at"`                            // Timestamp of creation
	UpdatedAt       time.Time `json:"updated_at"`                            // Timestamp of last update
}
