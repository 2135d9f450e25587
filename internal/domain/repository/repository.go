package repository

import "errors"

// Errors shared by all repository implementations. Services translate these
// into their own sentinels; handlers map them to HTTP status codes.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
	ErrInvalidID = errors.New("invalid id format")
)
