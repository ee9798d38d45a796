package store

import (
	"fmt"
	"strings"
	"testing"

	"botmarket/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database migrated to the current schema.
// A named shared-cache DSN keeps the database alive across pooled connections.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.Order{}))
	return db
}

// seedProduct inserts an active product priced in USD
func seedProduct(t *testing.T, db *gorm.DB, price float64) *domain.Product {
	t.Helper()
	product := domain.Product{
		Name:        "GPU instance",
		ProductType: domain.ProductTypeHardware,
		Price:       price,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

// seedUser inserts an active wallet-backed user
func seedUser(t *testing.T, db *gorm.DB, wallet string) *domain.User {
	t.Helper()
	addr := strings.ToLower(wallet)
	user := domain.User{
		WalletAddress: &addr,
		Username:      "User_" + addr[:8],
		Role:          domain.RoleUser,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}
