package repositories

import (
	"context"
	"time"

	"github.com/arcana-cards/arcana/internal/domain/catalog"
	"github.com/arcana-cards/arcana/internal/domain/rarity"
	"github.com/arcana-cards/arcana/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

type cardRepository struct {
	*BaseRepository
}

var _ catalog.Repository = &cardRepository{}

func NewCardRepository(db *bun.DB) *cardRepository {
	return &cardRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *cardRepository) GetSet(ctx context.Context, setID int64) (*catalog.CardSet, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	set := new(models.CardSet)
	err := r.conn(ctx).NewSelect().
		Model(set).
		Where("id = ?", setID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get", "card_set", setID, catalog.ErrSetNotFound, err)
	}

	out := set.ToDomain()
	return &out, nil
}

func (r *cardRepository) ListSets(ctx context.Context) ([]catalog.CardSet, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var sets []*models.CardSet
	err := r.conn(ctx).NewSelect().
		Model(&sets).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "card_set", nil, nil, err)
	}

	out := make([]catalog.CardSet, len(sets))
	for i, s := range sets {
		out[i] = s.ToDomain()
	}
	return out, nil
}

func (r *cardRepository) ListCardsBySet(ctx context.Context, setID int64) ([]catalog.Card, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var cards []*models.Card
	err := r.conn(ctx).NewSelect().
		Model(&cards).
		Where("set_id = ?", setID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "card", setID, nil, err)
	}
	return cardsToDomain(cards), nil
}

func (r *cardRepository) ListCards(ctx context.Context) ([]catalog.Card, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var cards []*models.Card
	err := r.conn(ctx).NewSelect().
		Model(&cards).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "card", nil, nil, err)
	}
	return cardsToDomain(cards), nil
}

func (r *cardRepository) ListRarities(ctx context.Context) ([]rarity.Rarity, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var rarities []*models.Rarity
	err := r.conn(ctx).NewSelect().
		Model(&rarities).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "rarity", nil, nil, err)
	}

	out := make([]rarity.Rarity, len(rarities))
	for i, m := range rarities {
		out[i] = m.ToDomain()
	}
	return out, nil
}

func (r *cardRepository) UpsertRarity(ctx context.Context, in *rarity.Rarity) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	m := &models.Rarity{Title: in.Title, Description: in.Description, Weight: in.Weight}
	_, err := r.conn(ctx).NewInsert().
		Model(m).
		On("CONFLICT (title) DO UPDATE").
		Set("description = EXCLUDED.description").
		Set("probability_weight = EXCLUDED.probability_weight").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return r.HandleError("upsert", "rarity", in.Title, nil, err)
	}
	in.ID = m.ID
	return nil
}

func (r *cardRepository) UpsertSet(ctx context.Context, in *catalog.CardSet) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	m := &models.CardSet{
		Title:       in.Title,
		Description: in.Description,
		ImageRef:    in.ImageRef,
		UpdatedAt:   time.Now(),
	}
	_, err := r.conn(ctx).NewInsert().
		Model(m).
		On("CONFLICT (title) DO UPDATE").
		Set("description = EXCLUDED.description").
		Set("image_ref = EXCLUDED.image_ref").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return r.HandleError("upsert", "card_set", in.Title, nil, err)
	}
	in.ID = m.ID
	return nil
}

func (r *cardRepository) UpsertCard(ctx context.Context, in *catalog.Card) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	m := models.CardFromDomain(in)
	m.ID = 0
	m.UpdatedAt = time.Now()
	_, err := r.conn(ctx).NewInsert().
		Model(m).
		On("CONFLICT (set_id, title) DO UPDATE").
		Set("description = EXCLUDED.description").
		Set("image_ref = EXCLUDED.image_ref").
		Set("rarity_id = EXCLUDED.rarity_id").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return r.HandleError("upsert", "card", in.Title, nil, err)
	}
	in.ID = m.ID
	return nil
}

func cardsToDomain(cards []*models.Card) []catalog.Card {
	out := make([]catalog.Card, len(cards))
	for i, c := range cards {
		out[i] = c.ToDomain()
	}
	return out
}
