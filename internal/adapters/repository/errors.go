package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound    = errors.New("game not found")
	ErrDuplicateID = errors.New("duplicate game id")
	ErrNilGame     = errors.New("nil game")
)
