package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"botmarket/internal/domain" // Importing domain models
	"botmarket/internal/store"  // Persistence stores
	"botmarket/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// productListPrefix is the cache key prefix for product listings
const productListPrefix = "products:list"

// ProductRequest is the product creation payload
type ProductRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`                               // Product name
	Description string  `json:"description"`                                                         // Free-form description
	ProductType string  `json:"product_type" binding:"required,oneof=hardware service subscription"` // Catalog type
	Price       float64 `json:"price" binding:"required,gt=0"`                                       // Price in USD
	PriceCrypto string  `json:"price_crypto" binding:"omitempty,max=50"`                             // Crypto price hint
	ImageURL    string  `json:"image_url" binding:"omitempty,max=500"`                               // Product image
	Specs       string  `json:"specs"`                                                               // JSON spec blob
}

// ProductUpdateRequest is the allow-listed product patch payload
type ProductUpdateRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=255"`                               // New name
	Description *string  `json:"description"`                                                          // New description
	ProductType *string  `json:"product_type" binding:"omitempty,oneof=hardware service subscription"` // New type
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`                                       // New USD price
	PriceCrypto *string  `json:"price_crypto" binding:"omitempty,max=50"`                              // New crypto hint
	ImageURL    *string  `json:"image_url" binding:"omitempty,max=500"`                                // New image URL
	Specs       *string  `json:"specs"`                                                                // New spec blob
}

// ListProductsHandler returns active products, optionally filtered by type and
// price range. Listings are cached per filter combination.
func ListProductsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	products := store.NewProductStore(db)
	return func(c *gin.Context) {
		// Build the filter from query parameters
		filter := store.ProductFilter{ProductType: c.Query("product_type")}
		if mp := c.Query("min_price"); mp != "" {
			if v, err := strconv.ParseFloat(mp, 64); err == nil {
				filter.MinPrice = &v // Lower bound if valid
			}
		}
		if mp := c.Query("max_price"); mp != "" {
			if v, err := strconv.ParseFloat(mp, 64); err == nil {
				filter.MaxPrice = &v // Upper bound if valid
			}
		}
		ctx := context.Background() // Context for Redis operations
		// Cache key includes the filter so variants don't collide
		cacheKey := productListPrefix + ":type=" + c.Query("product_type") +
			":min=" + c.Query("min_price") + ":max=" + c.Query("max_price")
		var cached []domain.Product
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			// Return cached listing
			c.JSON(http.StatusOK, gin.H{"products": cached, "cached": true})
			return
		}
		// If not in cache, fetch from DB
		list, err := products.List(filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, list, 60*time.Second) // Cache the listing for 60 seconds
		c.JSON(http.StatusOK, gin.H{"products": list, "cached": false})
	}
}

// GetProductHandler returns a product by ID
func GetProductHandler(db *gorm.DB) gin.HandlerFunc {
	products := store.NewProductStore(db)
	return func(c *gin.Context) {
		// Parse the product ID from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		product, err := products.Get(uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, product) // Return the product
	}
}

// CreateProductHandler lists a new product owned by the acting seller
func CreateProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	products := store.NewProductStore(db)
	return func(c *gin.Context) {
		// The role middleware stores the resolved seller in the context
		seller, exists := c.Get("currentUser")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ProductRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		sellerID := seller.(*domain.User).ID // Owning seller
		product := domain.Product{
			Name:        req.Name,        // Product name
			Description: req.Description, // Description
			ProductType: req.ProductType, // Catalog type
			Price:       req.Price,       // USD price
			PriceCrypto: req.PriceCrypto, // Crypto price hint
			ImageURL:    req.ImageURL,    // Image URL
			Specs:       req.Specs,       // Spec blob
			SellerID:    &sellerID,       // Owner
			IsActive:    true,            // Active on creation
		}
		if err := products.Create(&product); err != nil {
			logrus.WithFields(logrus.Fields{
				"seller_id": sellerID,    // Owning seller ID
				"error":     err.Error(), // Error message
			}).Error("Product creation failed") // Log creation failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		// Drop all cached listing variants
		_ = utils.DeleteCachePrefix(context.Background(), rdb, productListPrefix)
		// Return the new product
		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProductHandler applies an allow-listed patch to a product
func UpdateProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	products := store.NewProductStore(db)
	return func(c *gin.Context) {
		// Parse the product ID from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		var req ProductUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Apply only the provided fields
		product, err := products.Update(uint(id), store.ProductUpdate{
			Name:        req.Name,        // New name, if set
			Description: req.Description, // New description, if set
			ProductType: req.ProductType, // New type, if set
			Price:       req.Price,       // New price, if set
			PriceCrypto: req.PriceCrypto, // New crypto hint, if set
			ImageURL:    req.ImageURL,    // New image URL, if set
			Specs:       req.Specs,       // New spec blob, if set
		})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"}) // Product absent
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		// Drop all cached listing variants
		_ = utils.DeleteCachePrefix(context.Background(), rdb, productListPrefix)
		c.JSON(http.StatusOK, product) // Return the updated product
	}
}

// DeleteProductHandler soft-deletes a product
func DeleteProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	products := store.NewProductStore(db)
	return func(c *gin.Context) {
		// Parse the product ID from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		// Mark the product inactive
		if err := products.SoftDelete(uint(id)); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"}) // Product absent
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		// Drop all cached listing variants
		_ = utils.DeleteCachePrefix(context.Background(), rdb, productListPrefix)
		// Return success response
		c.JSON(http.StatusOK, MessageResponse{Message: "Product deleted"})
	}
}
