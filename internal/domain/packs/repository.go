package packs

import (
	"context"
	"errors"
)

var ErrStatusNotFound = errors.New("pack status not found")

type Store interface {
	// GetForUpdate loads the status and locks it until the surrounding
	// transaction ends. Missing rows yield ErrStatusNotFound.
	GetForUpdate(ctx context.Context, userID string) (*Status, error)
	// Create inserts the status unless one exists and reports whether it did.
	Create(ctx context.Context, status *Status) (bool, error)
	Save(ctx context.Context, status *Status) error
}
