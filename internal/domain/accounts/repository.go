package accounts

import (
	"context"
)

type UserStore interface {
	// Create inserts the user unless it already exists.
	Create(ctx context.Context, userID string) (bool, error)
	// Get returns ErrUserNotFound for unknown ids.
	Get(ctx context.Context, userID string) (*User, error)
	// Delete removes the user and everything it owns.
	Delete(ctx context.Context, userID string) (bool, error)
}

type UploadStore interface {
	ListByUser(ctx context.Context, userID string) ([]UserCard, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	Insert(ctx context.Context, card *UserCard) error
}

// ObjectStore holds uploaded images. Put returns the reference stored on the
// UserCard.
type ObjectStore interface {
	Put(ctx context.Context, userID, contentType string, body []byte) (string, error)
	Delete(ctx context.Context, ref string) error
}

type AvatarGenerator interface {
	GenerateAvatar(ctx context.Context, userID string) error
}
