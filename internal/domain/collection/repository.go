package collection

import (
	"context"
)

type Store interface {
	// GetByUserID returns ErrNoCollection when the user has none.
	GetByUserID(ctx context.Context, userID string) (*Collection, error)
	// Lock holds the collection row until the surrounding transaction ends.
	// Returns ErrNoCollection for unknown ids.
	Lock(ctx context.Context, collectionID int64) error
	// Create inserts the collection unless the user already has one.
	Create(ctx context.Context, c *Collection) (bool, error)

	OwnedCardIDs(ctx context.Context, collectionID int64) ([]int64, error)
	// Increment adds one to an existing entry and returns the new quantity.
	// found is false when there is no entry for the card.
	Increment(ctx context.Context, collectionID, cardID int64) (quantity int64, found bool, err error)
	// Insert creates an entry with quantity 1. inserted is false when a
	// concurrent writer created the entry first.
	Insert(ctx context.Context, collectionID, cardID int64) (inserted bool, err error)

	ListOwned(ctx context.Context, collectionID int64) ([]OwnedCard, error)
	CountOwnedBySet(ctx context.Context, collectionID int64) (map[int64]int, error)
}
