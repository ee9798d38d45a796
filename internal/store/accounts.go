package store

import (
	"errors"  // Error inspection
	"strings" // Address normalization

	"botmarket/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// AccountStore resolves and persists user accounts
type AccountStore struct {
	db *gorm.DB // Database handle
}

// NewAccountStore creates an AccountStore backed by db
func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// AccountUpdate is the allow-listed set of patchable account fields.
// Role and active flag are deliberately absent.
type AccountUpdate struct {
	Email    *string // New email, if set
	Username *string // New username, if set
}

// FindByID returns the account with the given primary key
func (s *AccountStore) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound // Account absent
		}
		return nil, err
	}
	return &user, nil
}

// FindByWallet returns the account owning the given wallet address.
// Addresses are stored lowercase, so the lookup is case-insensitive.
func (s *AccountStore) FindByWallet(address string) (*domain.User, error) {
	var user domain.User
	if err := s.db.Where("wallet_address = ?", strings.ToLower(address)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound // Account absent
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns the account registered under the given email
func (s *AccountStore) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound // Account absent
		}
		return nil, err
	}
	return &user, nil
}

// FindOrCreateByWallet resolves the account for a wallet address, creating it
// on first authentication. The insert races only against another first login
// from the same address; the unique index on wallet_address decides the winner
// and the loser re-reads the row.
func (s *AccountStore) FindOrCreateByWallet(address string) (*domain.User, error) {
	addr := strings.ToLower(address) // Normalize before lookup and insert
	user, err := s.FindByWallet(addr)
	if err == nil {
		return user, nil // Existing account
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err // Lookup failed
	}
	// First login from this address: create the account
	created := domain.User{
		WalletAddress: &addr,              // Stored lowercase
		Username:      "User_" + addr[:8], // Default username from the address prefix
		Role:          domain.RoleUser,    // New accounts start as plain users
		IsActive:      true,               // Active on creation
	}
	if err := s.db.Create(&created).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.FindByWallet(addr) // Lost the race, return the winner's row
		}
		return nil, err
	}
	return &created, nil
}

// Create inserts a new account, mapping duplicate wallet/email to ErrConflict
func (s *AccountStore) Create(user *domain.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict // Wallet or email already registered
		}
		return err
	}
	return nil
}

// Update applies an allow-listed patch to the account with the given ID
func (s *AccountStore) Update(id uint, upd AccountUpdate) (*domain.User, error) {
	user, err := s.FindByID(id)
	if err != nil {
		return nil, err // Account absent
	}
	// Build the column set from the provided fields only
	fields := map[string]any{}
	if upd.Email != nil {
		fields["email"] = *upd.Email
	}
	if upd.Username != nil {
		fields["username"] = *upd.Username
	}
	if len(fields) == 0 {
		return user, nil // Nothing to change
	}
	if err := s.db.Model(user).Updates(fields).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict // Email already taken
		}
		return nil, err
	}
	return user, nil
}
