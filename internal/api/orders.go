package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"botmarket/internal/domain"  // Importing domain models
	"botmarket/internal/payment" // Crypto price quotes
	"botmarket/internal/store"   // Persistence stores
	"botmarket/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// OrderCreateRequest is the order creation payload
type OrderCreateRequest struct {
	ProductID      uint   `json:"product_id" binding:"required"`                           // Product to order
	CryptoCurrency string `json:"crypto_currency" binding:"omitempty,oneof=USDT USDC DAI"` // Settlement currency, defaults to USDT
}

// PaymentConfirmRequest carries the transaction hash for a paid order
type PaymentConfirmRequest struct {
	TransactionHash string `json:"transaction_hash" binding:"required,min=1,max=100"` // On-chain transaction hash
}

// orderCacheKey is the cache key for a user's order listing
func orderCacheKey(userID uint) string {
	return "orders:user:" + strconv.Itoa(int(userID))
}

// CreateOrderHandler creates a pending order for an active product, pricing it
// through the static quote table
func CreateOrderHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	accounts := store.NewAccountStore(db)
	products := store.NewProductStore(db)
	orders := store.NewOrderStore(db)
	return func(c *gin.Context) {
		user := currentUser(c, accounts) // Resolve the buyer
		if user == nil {
			// If not resolvable, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req OrderCreateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Default settlement currency
		if req.CryptoCurrency == "" {
			req.CryptoCurrency = "USDT"
		}
		// Inactive or missing products cannot be ordered
		product, err := products.GetActive(req.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		// Price the order in the requested currency
		order := domain.Order{
			UserID:         user.ID,                                          // Buyer
			ProductID:      product.ID,                                       // Ordered product
			AmountUSD:      product.Price,                                    // Fiat amount at order time
			AmountCrypto:   payment.Quote(product.Price, req.CryptoCurrency), // Quoted crypto amount
			CryptoCurrency: req.CryptoCurrency,                               // Settlement currency
		}
		if err := orders.Create(&order); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":    user.ID,     // Buyer ID
				"product_id": product.ID,  // Product ID
				"error":      err.Error(), // Error message
			}).Error("Order creation failed") // Log creation failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,              // Buyer ID
			"order_id": order.ID,             // New order ID
			"amount":   order.AmountCrypto,   // Quoted amount
			"currency": order.CryptoCurrency, // Settlement currency
		}).Info("Order created")
		// Invalidate the buyer's order listing cache
		_ = utils.DeleteCache(context.Background(), rdb, orderCacheKey(user.ID))
		// Return the new order
		c.JSON(http.StatusCreated, order)
	}
}

// ListOrdersHandler returns the authenticated user's orders, newest first
func ListOrdersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	accounts := store.NewAccountStore(db)
	orders := store.NewOrderStore(db)
	return func(c *gin.Context) {
		user := currentUser(c, accounts) // Resolve the account
		if user == nil {
			// If not resolvable, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()        // Context for Redis operations
		cacheKey := orderCacheKey(user.ID) // Cache key for this user's listing
		var cached []domain.Order
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			// Return cached listing
			c.JSON(http.StatusOK, gin.H{"orders": cached, "cached": true})
			return
		}
		// If not in cache, fetch from DB
		list, err := orders.ListByUser(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, list, 60*time.Second) // Cache the listing for 60 seconds
		c.JSON(http.StatusOK, gin.H{"orders": list, "cached": false})
	}
}

// GetOrderHandler returns a single order. Non-admins only see their own;
// anything else reads as not found.
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	accounts := store.NewAccountStore(db)
	orders := store.NewOrderStore(db)
	return func(c *gin.Context) {
		user := currentUser(c, accounts) // Resolve the account
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Parse the order ID from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		order, err := orders.Get(uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		// Hide other users' orders from non-admins
		if order.UserID != user.ID && user.Role != domain.RoleAdmin {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, order) // Return the order
	}
}

// ConfirmPaymentHandler records a transaction hash and moves the order to
// paid. The transition only succeeds from pending, so a repeated confirmation
// fails even with the same hash. The hash itself is not verified on-chain.
func ConfirmPaymentHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	accounts := store.NewAccountStore(db)
	orders := store.NewOrderStore(db)
	return func(c *gin.Context) {
		user := currentUser(c, accounts) // Resolve the account
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Parse the order ID from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		var req PaymentConfirmRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Apply the pending -> paid transition
		order, err := orders.ConfirmPayment(uint(id), req.TransactionHash)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"}) // Order absent
			case errors.Is(err, store.ErrInvalidState):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Order already processed"}) // Not pending anymore
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment confirmation failed"})
			}
			return
		}
		// Log the confirmed payment
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,             // Acting user ID
			"order_id": order.ID,            // Order ID
			"tx_hash":  req.TransactionHash, // Recorded hash
		}).Info("Payment confirmed")
		// Invalidate the owner's order listing cache
		_ = utils.DeleteCache(context.Background(), rdb, orderCacheKey(order.UserID))
		// Return success response
		c.JSON(http.StatusOK, MessageResponse{Message: "Payment confirmed"})
	}
}

// CancelOrderHandler cancels a pending order
func CancelOrderHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	accounts := store.NewAccountStore(db)
	orders := store.NewOrderStore(db)
	return func(c *gin.Context) {
		user := currentUser(c, accounts) // Resolve the account
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Parse the order ID from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		// Apply the pending -> cancelled transition
		order, err := orders.Cancel(uint(id))
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"}) // Order absent
			case errors.Is(err, store.ErrInvalidState):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot cancel this order"}) // Not pending anymore
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Cancellation failed"})
			}
			return
		}
		// Log the cancellation
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,  // Acting user ID
			"order_id": order.ID, // Order ID
		}).Info("Order cancelled")
		// Invalidate the owner's order listing cache
		_ = utils.DeleteCache(context.Background(), rdb, orderCacheKey(order.UserID))
		// Return success response
		c.JSON(http.StatusOK, MessageResponse{Message: "Order cancelled"})
	}
}
