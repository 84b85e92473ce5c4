package repositories

import (
	"context"

	"github.com/arcana-cards/arcana/internal/domain/accounts"
	"github.com/arcana-cards/arcana/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

type userRepository struct {
	*BaseRepository
}

var _ accounts.UserStore = &userRepository{}

func NewUserRepository(db *bun.DB) *userRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *userRepository) Create(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.conn(ctx).NewInsert().
		Model(&models.User{ID: userID}).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, r.HandleError("create", "user", userID, nil, err)
	}
	return rowsAffected(res) > 0, nil
}

func (r *userRepository) Get(ctx context.Context, userID string) (*accounts.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user := new(models.User)
	err := r.conn(ctx).NewSelect().
		Model(user).
		Where("id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get", "user", userID, accounts.ErrUserNotFound, err)
	}
	return user.ToDomain(), nil
}

func (r *userRepository) Delete(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.conn(ctx).NewDelete().
		Model((*models.User)(nil)).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return false, r.HandleError("delete", "user", userID, nil, err)
	}
	return rowsAffected(res) > 0, nil
}

type uploadRepository struct {
	*BaseRepository
}

var _ accounts.UploadStore = &uploadRepository{}

func NewUploadRepository(db *bun.DB) *uploadRepository {
	return &uploadRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *uploadRepository) ListByUser(ctx context.Context, userID string) ([]accounts.UserCard, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var uploads []*models.UserUpload
	err := r.conn(ctx).NewSelect().
		Model(&uploads).
		Where("user_id = ?", userID).
		Order("created_at DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "user_upload", userID, nil, err)
	}

	out := make([]accounts.UserCard, len(uploads))
	for i, u := range uploads {
		out[i] = u.ToDomain()
	}
	return out, nil
}

func (r *uploadRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.conn(ctx).NewDelete().
		Model((*models.UserUpload)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return 0, r.HandleError("delete", "user_upload", userID, nil, err)
	}
	return rowsAffected(res), nil
}

func (r *uploadRepository) Insert(ctx context.Context, card *accounts.UserCard) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	m := &models.UserUpload{
		UserID:      card.UserID,
		Title:       card.Title,
		Description: card.Description,
		ImageRef:    card.ImageRef,
		RarityID:    card.RarityID,
	}
	_, err := r.conn(ctx).NewInsert().
		Model(m).
		Returning("id, created_at").
		Exec(ctx)
	if err != nil {
		return r.HandleError("insert", "user_upload", card.UserID, nil, err)
	}
	card.ID = m.ID
	card.CreatedAt = m.CreatedAt
	return nil
}
