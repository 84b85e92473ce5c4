package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/arcana-cards/arcana/internal/domain/collection"
	"github.com/arcana-cards/arcana/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

type collectionRepository struct {
	*BaseRepository
}

var _ collection.Store = &collectionRepository{}

func NewCollectionRepository(db *bun.DB) *collectionRepository {
	return &collectionRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *collectionRepository) GetByUserID(ctx context.Context, userID string) (*collection.Collection, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	c := new(models.Collection)
	err := r.conn(ctx).NewSelect().
		Model(c).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get", "collection", userID, collection.ErrNoCollection, err)
	}
	return c.ToDomain(), nil
}

func (r *collectionRepository) Lock(ctx context.Context, collectionID int64) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var id int64
	err := r.conn(ctx).NewSelect().
		Model((*models.Collection)(nil)).
		Column("id").
		Where("id = ?", collectionID).
		For("UPDATE").
		Scan(ctx, &id)
	return r.HandleError("lock", "collection", collectionID, collection.ErrNoCollection, err)
}

func (r *collectionRepository) Create(ctx context.Context, c *collection.Collection) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	m := &models.Collection{UserID: c.UserID}
	res, err := r.conn(ctx).NewInsert().
		Model(m).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, r.HandleError("create", "collection", c.UserID, nil, err)
	}
	return rowsAffected(res) > 0, nil
}

func (r *collectionRepository) OwnedCardIDs(ctx context.Context, collectionID int64) ([]int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var ids []int64
	err := r.conn(ctx).NewSelect().
		Model((*models.CollectionEntry)(nil)).
		Column("card_id").
		Where("collection_id = ?", collectionID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, r.HandleError("snapshot", "collection_entry", collectionID, nil, err)
	}
	return ids, nil
}

func (r *collectionRepository) Increment(ctx context.Context, collectionID, cardID int64) (int64, bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var quantity int64
	err := r.conn(ctx).NewUpdate().
		Model((*models.CollectionEntry)(nil)).
		Set("quantity = quantity + 1").
		Set("updated_at = ?", time.Now()).
		Where("collection_id = ? AND card_id = ?", collectionID, cardID).
		Returning("quantity").
		Scan(ctx, &quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, r.HandleError("increment", "collection_entry", cardID, nil, err)
	}
	return quantity, true, nil
}

func (r *collectionRepository) Insert(ctx context.Context, collectionID, cardID int64) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	res, err := r.conn(ctx).NewInsert().
		Model(&models.CollectionEntry{
			CollectionID: collectionID,
			CardID:       cardID,
			Quantity:     1,
			ObtainedAt:   now,
			UpdatedAt:    now,
		}).
		On("CONFLICT (collection_id, card_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, r.HandleError("insert", "collection_entry", cardID, nil, err)
	}
	return rowsAffected(res) > 0, nil
}

func (r *collectionRepository) ListOwned(ctx context.Context, collectionID int64) ([]collection.OwnedCard, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var entries []*models.CollectionEntry
	err := r.conn(ctx).NewSelect().
		Model(&entries).
		Relation("Card").
		Where("ce.collection_id = ?", collectionID).
		Order("ce.card_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "collection_entry", collectionID, nil, err)
	}

	out := make([]collection.OwnedCard, len(entries))
	for i, e := range entries {
		out[i] = e.ToDomain()
	}
	return out, nil
}

func (r *collectionRepository) CountOwnedBySet(ctx context.Context, collectionID int64) (map[int64]int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var rows []struct {
		SetID int64 `bun:"set_id"`
		Owned int   `bun:"owned"`
	}
	err := r.conn(ctx).NewSelect().
		TableExpr("collection_entries AS ce").
		Join("JOIN cards AS c ON c.id = ce.card_id").
		ColumnExpr("c.set_id").
		ColumnExpr("COUNT(*) AS owned").
		Where("ce.collection_id = ?", collectionID).
		Group("c.set_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, r.HandleError("count", "collection_entry", collectionID, nil, err)
	}

	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.SetID] = row.Owned
	}
	return counts, nil
}
