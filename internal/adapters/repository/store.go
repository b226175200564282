// Package repository holds the in-memory game collection behind the ledger.
package repository

import (
	"context"

	"github.com/okian/playcard/internal/domain/model"
)

// Store keeps every game ever created, in creation order. Games are never
// removed. Implementations hand out the stored pointers; callers serialize
// mutation and copy before sharing.
type Store interface {
	// Append adds a game at the end of the collection.
	// Returns ErrDuplicateID if a game with the same id exists.
	Append(ctx context.Context, g *model.Game) error

	// Get returns the game with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Game, error)

	// List returns all games in insertion order.
	List(ctx context.Context) []*model.Game

	// Count returns the number of stored games.
	Count(ctx context.Context) int
}
