package api

import (
	"net/http" // HTTP status codes

	"botmarket/internal/payment" // Static quote data
	"botmarket/internal/store"   // Persistence stores

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// PaymentCreateRequest asks for a payment envelope for an existing order
type PaymentCreateRequest struct {
	OrderID  uint   `json:"order_id" binding:"required"`                                 // Order to pay
	Currency string `json:"currency" binding:"omitempty,oneof=USDT USDC DAI"`            // Settlement currency, defaults to USDT
	Network  string `json:"network" binding:"omitempty,oneof=ethereum polygon arbitrum"` // Settlement network, defaults to ethereum
}

// PaymentResponse is the mock payment envelope. No contract is invoked;
// the deposit address is a fixed placeholder.
type PaymentResponse struct {
	OrderID        uint    `json:"order_id"`        // Order being paid
	PaymentAddress string  `json:"payment_address"` // Deposit address
	Amount         float64 `json:"amount"`          // Crypto amount due
	Currency       string  `json:"currency"`        // Settlement currency
	Network        string  `json:"network"`         // Settlement network
	Status         string  `json:"status"`          // Always pending
}

// CreatePaymentHandler returns a payment envelope for an order
func CreatePaymentHandler(db *gorm.DB) gin.HandlerFunc {
	orders := store.NewOrderStore(db)
	return func(c *gin.Context) {
		var req PaymentCreateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Default settlement currency and network
		if req.Currency == "" {
			req.Currency = "USDT"
		}
		if req.Network == "" {
			req.Network = "ethereum"
		}
		// The amount due comes from the order's stored quote
		order, err := orders.Get(req.OrderID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		// Return the mock envelope
		c.JSON(http.StatusOK, PaymentResponse{
			OrderID:        order.ID,               // Order ID
			PaymentAddress: payment.PaymentAddress, // Fixed deposit address
			Amount:         order.AmountCrypto,     // Crypto amount due
			Currency:       req.Currency,           // Settlement currency
			Network:        req.Network,            // Settlement network
			Status:         "pending",              // Envelope status
		})
	}
}

// GetCurrenciesHandler returns the supported payment currencies
func GetCurrenciesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"currencies": payment.Currencies()})
	}
}

// GetRatesHandler returns the mock exchange-rate table
func GetRatesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, payment.Rates())
	}
}
