package repositories

import "errors"

// Shared repository errors. Services translate these into
// ServiceError values with HTTP status codes.
var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid object ID")
	ErrDuplicate = errors.New("duplicate record")
)
