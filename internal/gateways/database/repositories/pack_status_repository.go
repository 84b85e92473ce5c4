package repositories

import (
	"context"
	"time"

	"github.com/arcana-cards/arcana/internal/domain/packs"
	"github.com/arcana-cards/arcana/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

type packStatusRepository struct {
	*BaseRepository
}

var _ packs.Store = &packStatusRepository{}

func NewPackStatusRepository(db *bun.DB) *packStatusRepository {
	return &packStatusRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *packStatusRepository) GetForUpdate(ctx context.Context, userID string) (*packs.Status, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	status := new(models.PackStatus)
	err := r.conn(ctx).NewSelect().
		Model(status).
		Where("user_id = ?", userID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get", "pack_status", userID, packs.ErrStatusNotFound, err)
	}
	return status.ToDomain(), nil
}

func (r *packStatusRepository) Create(ctx context.Context, status *packs.Status) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.conn(ctx).NewInsert().
		Model(models.PackStatusFromDomain(status)).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, r.HandleError("create", "pack_status", status.UserID, nil, err)
	}
	return rowsAffected(res) > 0, nil
}

func (r *packStatusRepository) Save(ctx context.Context, status *packs.Status) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.conn(ctx).NewUpdate().
		Model((*models.PackStatus)(nil)).
		Set("packs_available = ?", status.PacksAvailable).
		Set("last_opened_at = ?", status.LastOpenedAt).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", status.UserID).
		Exec(ctx)
	if err != nil {
		return r.HandleError("save", "pack_status", status.UserID, nil, err)
	}
	if rowsAffected(res) == 0 {
		return &NotFoundError{Entity: "pack_status", ID: status.UserID, Err: packs.ErrStatusNotFound}
	}
	return nil
}
