package store

import (
	"errors" // Error inspection

	"botmarket/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ProductStore persists the product catalog
type ProductStore struct {
	db *gorm.DB // Database handle
}

// NewProductStore creates a ProductStore backed by db
func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// ProductFilter narrows List results. Zero values mean no constraint.
type ProductFilter struct {
	ProductType string   // hardware, service or subscription
	MinPrice    *float64 // Inclusive lower bound on USD price
	MaxPrice    *float64 // Inclusive upper bound on USD price
}

// ProductUpdate is the allow-listed set of patchable product fields
type ProductUpdate struct {
	Name        *string  // New name, if set
	Description *string  // New description, if set
	ProductType *string  // New type, if set
	Price       *float64 // New USD price, if set
	PriceCrypto *string  // New crypto price hint, if set
	ImageURL    *string  // New image URL, if set
	Specs       *string  // New specs blob, if set
}

// List returns active products matching the filter
func (s *ProductStore) List(filter ProductFilter) ([]domain.Product, error) {
	query := s.db.Where("is_active = ?", true) // Soft-deleted products never appear
	if filter.ProductType != "" {
		query = query.Where("product_type = ?", filter.ProductType)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	var products []domain.Product
	err := query.Find(&products).Error
	return products, err
}

// Get returns the product with the given primary key, active or not
func (s *ProductStore) Get(id uint) (*domain.Product, error) {
	var product domain.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound // Product absent
		}
		return nil, err
	}
	return &product, nil
}

// GetActive returns the product only if it has not been soft-deleted
func (s *ProductStore) GetActive(id uint) (*domain.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrNotFound // Inactive products are not orderable
	}
	return product, nil
}

// Create inserts a new product
func (s *ProductStore) Create(product *domain.Product) error {
	return s.db.Create(product).Error
}

// Update applies an allow-listed patch to the product with the given ID
func (s *ProductStore) Update(id uint, upd ProductUpdate) (*domain.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err // Product absent
	}
	// Build the column set from the provided fields only
	fields := map[string]any{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.ProductType != nil {
		fields["product_type"] = *upd.ProductType
	}
	if upd.Price != nil {
		fields["price"] = *upd.Price
	}
	if upd.PriceCrypto != nil {
		fields["price_crypto"] = *upd.PriceCrypto
	}
	if upd.ImageURL != nil {
		fields["image_url"] = *upd.ImageURL
	}
	if upd.Specs != nil {
		fields["specs"] = *upd.Specs
	}
	if len(fields) == 0 {
		return product, nil // Nothing to change
	}
	if err := s.db.Model(product).Updates(fields).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// SoftDelete marks the product inactive instead of removing the row
func (s *ProductStore) SoftDelete(id uint) error {
	product, err := s.Get(id)
	if err != nil {
		return err // Product absent
	}
	return s.db.Model(product).Update("is_active", false).Error
}
