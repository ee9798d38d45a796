package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"botmarket/internal/config"
	"botmarket/internal/domain"
	"botmarket/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	ethaccounts "github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires a full router against an in-memory database and redis,
// mirroring the server wiring
func testEnv(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.Order{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{JWTSecret: "api-test-secret", TokenTTL: time.Hour}

	r := gin.New()

	authGroup := r.Group("/auth")
	authGroup.POST("/web3", Web3AuthHandler(db, cfg))
	authGroup.POST("/register", RegisterHandler(db))
	authGroup.GET("/me", middleware.JWTAuthMiddleware(cfg.JWTSecret), MeHandler(db))

	productGroup := r.Group("/products")
	productGroup.GET("", ListProductsHandler(db, rdb))
	productGroup.GET("/:id", GetProductHandler(db))
	sellerGroup := productGroup.Group("")
	sellerGroup.Use(
		middleware.JWTAuthMiddleware(cfg.JWTSecret),
		middleware.RequireRoleMiddleware(db, domain.RoleSeller, domain.RoleAdmin),
	)
	sellerGroup.POST("", CreateProductHandler(db, rdb))
	sellerGroup.PUT("/:id", UpdateProductHandler(db, rdb))
	sellerGroup.DELETE("/:id", DeleteProductHandler(db, rdb))

	orderGroup := r.Group("/orders")
	orderGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	orderGroup.POST("", CreateOrderHandler(db, rdb))
	orderGroup.GET("", ListOrdersHandler(db, rdb))
	orderGroup.GET("/:id", GetOrderHandler(db))
	orderGroup.POST("/:id/pay", ConfirmPaymentHandler(db, rdb))
	orderGroup.POST("/:id/cancel", CancelOrderHandler(db, rdb))

	userGroup := r.Group("/users")
	userGroup.GET("/:id", GetUserHandler(db))
	userGroup.PUT("/:id", middleware.JWTAuthMiddleware(cfg.JWTSecret), UpdateUserHandler(db))

	paymentGroup := r.Group("/payments")
	paymentGroup.POST("/create", CreatePaymentHandler(db))
	paymentGroup.GET("/currencies", GetCurrenciesHandler())
	paymentGroup.GET("/rates", GetRatesHandler())

	return r, db, cfg
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorded JSON response
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

// walletLogin authenticates through /auth/web3 with a freshly generated key,
// returning the issued token and the wallet address
func walletLogin(t *testing.T, r *gin.Engine) (string, string) {
	t.Helper()
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()
	message := "Sign in to BotMarket"
	sig, err := ethcrypto.Sign(ethaccounts.TextHash([]byte(message)), key)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/auth/web3", gin.H{
		"address":   address,
		"signature": hexutil.Encode(sig),
		"message":   message,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken, address
}

// promote sets the role of the wallet's account directly in the database
func promote(t *testing.T, db *gorm.DB, address, role string) {
	t.Helper()
	res := db.Model(&domain.User{}).
		Where("wallet_address = ?", strings.ToLower(address)).
		Update("role", role)
	require.NoError(t, res.Error)
	require.EqualValues(t, 1, res.RowsAffected)
}

// seedActiveProduct inserts a product directly, bypassing the seller endpoint
func seedActiveProduct(t *testing.T, db *gorm.DB, price float64) *domain.Product {
	t.Helper()
	product := domain.Product{
		Name:        "A100 instance",
		ProductType: domain.ProductTypeHardware,
		Price:       price,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}
