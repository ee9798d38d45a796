package store

import (
	"errors" // Error inspection

	"botmarket/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// OrderStore enforces the order lifecycle: pending -> paid via ConfirmPayment,
// pending -> cancelled via Cancel, nothing out of paid or cancelled.
type OrderStore struct {
	db *gorm.DB // Database handle
}

// NewOrderStore creates an OrderStore backed by db
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Create persists a new order. Callers resolve the product and quote first;
// orders always start in pending.
func (s *OrderStore) Create(order *domain.Order) error {
	order.Status = domain.OrderStatusPending // Orders always start pending
	return s.db.Create(order).Error
}

// Get returns the order with the given primary key
func (s *OrderStore) Get(id uint) (*domain.Order, error) {
	var order domain.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound // Order absent
		}
		return nil, err
	}
	return &order, nil
}

// ListByUser returns all orders placed by the given account, newest first
func (s *OrderStore) ListByUser(userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error
	return orders, err
}

// ConfirmPayment records the transaction hash and moves the order to paid.
// The transition is a single conditional update guarded by the pending status,
// so two concurrent confirmations cannot both succeed. A confirmation on an
// already-paid order fails with ErrInvalidState even with the same hash.
func (s *OrderStore) ConfirmPayment(id uint, transactionHash string) (*domain.Order, error) {
	return s.transition(id, map[string]any{
		"status":           domain.OrderStatusPaid,
		"transaction_hash": transactionHash,
	})
}

// Cancel moves a pending order to cancelled
func (s *OrderStore) Cancel(id uint) (*domain.Order, error) {
	return s.transition(id, map[string]any{
		"status": domain.OrderStatusCancelled,
	})
}

// transition applies fields to the order iff it is still pending. Zero rows
// affected means either the order is gone (ErrNotFound) or it already left
// pending (ErrInvalidState); a re-read distinguishes the two.
func (s *OrderStore) transition(id uint, fields map[string]any) (*domain.Order, error) {
	res := s.db.Model(&domain.Order{}).
		Where("id = ? AND status = ?", id, domain.OrderStatusPending).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish missing from already-processed
		if _, err := s.Get(id); err != nil {
			return nil, err // ErrNotFound
		}
		return nil, ErrInvalidState // Order exists but is no longer pending
	}
	return s.Get(id)
}
