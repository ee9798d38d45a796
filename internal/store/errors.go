package store

import "errors"

// Sentinel errors returned by the stores. Handlers map these to HTTP statuses;
// anything else is treated as an internal error.
var (
	ErrNotFound     = errors.New("record not found")                       // Row absent
	ErrConflict     = errors.New("record already exists")                  // Unique constraint violated
	ErrInvalidState = errors.New("operation not allowed in current state") // Lifecycle transition rejected
)
