package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arcana-cards/arcana/internal/domain/collection"
	"github.com/arcana-cards/arcana/internal/domain/rarity"
	"github.com/arcana-cards/arcana/internal/domain/transactor"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmptyUpload  = errors.New("upload has no image")
)

type Collections interface {
	Ensure(ctx context.Context, userID string) (*collection.Collection, error)
}

type PackStatuses interface {
	Ensure(ctx context.Context, userID string) error
}

type Rarities interface {
	RarityTable(ctx context.Context) (*rarity.Table, error)
}

type Service struct {
	users       UserStore
	uploads     UploadStore
	objects     ObjectStore
	collections Collections
	packs       PackStatuses
	rarities    Rarities
	avatars     AvatarGenerator
	tx          transactor.Transactor
	logger      *slog.Logger
}

type Deps struct {
	Users       UserStore
	Uploads     UploadStore
	Objects     ObjectStore
	Collections Collections
	Packs       PackStatuses
	Rarities    Rarities
	// Avatars is optional.
	Avatars AvatarGenerator
	Tx      transactor.Transactor
}

func NewService(d Deps) *Service {
	return &Service{
		users:       d.Users,
		uploads:     d.Uploads,
		objects:     d.Objects,
		collections: d.Collections,
		packs:       d.Packs,
		rarities:    d.Rarities,
		avatars:     d.Avatars,
		tx:          d.Tx,
		logger:      slog.With(slog.String("service", "accounts")),
	}
}

// OnUserCreated provisions the user row, the collection and the initial pack
// status. Calling it again for the same user changes nothing.
func (s *Service) OnUserCreated(ctx context.Context, userID string) (*collection.Collection, error) {
	var coll *collection.Collection
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err := s.users.Create(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if created {
			s.logger.Info("User registered", slog.String("user_id", userID))
		}

		coll, err = s.collections.Ensure(ctx, userID)
		if err != nil {
			return err
		}
		return s.packs.Ensure(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	if s.avatars != nil {
		if err := s.avatars.GenerateAvatar(ctx, userID); err != nil {
			s.logger.Warn("Avatar generation failed",
				slog.String("user_id", userID),
				slog.Any("error", err))
		}
	}
	return coll, nil
}

// EnsureCollection recreates a missing collection for an existing user.
func (s *Service) EnsureCollection(ctx context.Context, userID string) (*collection.Collection, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.collections.Ensure(ctx, userID)
}

// ReplaceUserUpload stores the image and makes it the user's only upload.
// Replaced images are removed after the rows are committed.
func (s *Service) ReplaceUserUpload(ctx context.Context, userID string, upload Upload) (*UserCard, error) {
	if len(upload.Body) == 0 {
		return nil, ErrEmptyUpload
	}
	if s.rarities != nil {
		table, err := s.rarities.RarityTable(ctx)
		if err != nil {
			return nil, err
		}
		if _, err := table.Get(upload.RarityID); err != nil {
			return nil, err
		}
	}

	ref, err := s.objects.Put(ctx, userID, upload.ContentType, upload.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	card := &UserCard{
		UserID:      userID,
		Title:       upload.Title,
		Description: upload.Description,
		ImageRef:    ref,
		RarityID:    upload.RarityID,
	}

	var replaced []UserCard
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.Get(ctx, userID); err != nil {
			return err
		}

		existing, err := s.uploads.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list uploads: %w", err)
		}
		replaced = existing
		if _, err := s.uploads.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete uploads: %w", err)
		}
		if err := s.uploads.Insert(ctx, card); err != nil {
			return fmt.Errorf("failed to insert upload: %w", err)
		}
		return nil
	})
	if err != nil {
		s.removeObjects(ctx, []string{ref})
		return nil, err
	}

	refs := make([]string, 0, len(replaced))
	for _, old := range replaced {
		if old.ImageRef != "" && old.ImageRef != ref {
			refs = append(refs, old.ImageRef)
		}
	}
	s.removeObjects(ctx, refs)

	s.logger.Info("Upload replaced",
		slog.String("user_id", userID),
		slog.Int("replaced", len(replaced)))
	return card, nil
}

func (s *Service) Upload(ctx context.Context, userID string) (*UserCard, error) {
	cards, err := s.uploads.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, nil
	}
	return &cards[0], nil
}

// DeleteUser removes the user. Collection, pack status and uploads go with
// it through the schema's cascades.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	var uploads []UserCard
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		uploads, err = s.uploads.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list uploads: %w", err)
		}

		deleted, err := s.users.Delete(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if !deleted {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	refs := make([]string, 0, len(uploads))
	for _, u := range uploads {
		if u.ImageRef != "" {
			refs = append(refs, u.ImageRef)
		}
	}
	s.removeObjects(ctx, refs)

	s.logger.Info("User deleted", slog.String("user_id", userID))
	return nil
}

func (s *Service) removeObjects(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := s.objects.Delete(ctx, ref); err != nil {
			s.logger.Warn("Failed to delete stored object",
				slog.String("ref", ref),
				slog.Any("error", err))
		}
	}
}
