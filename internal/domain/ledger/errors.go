package ledger

import "errors"

// Error kinds returned by ledger operations. Use errors.Is to classify.
var (
	// ErrValidation marks input with the wrong shape, e.g. fewer than two
	// players or a points payload that is not a mapping.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks operations that need state that does not exist, e.g.
	// recording a round with no current game.
	ErrNotFound = errors.New("not found")
)
