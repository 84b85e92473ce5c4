package catalog

import (
	"context"

	"github.com/arcana-cards/arcana/internal/domain/rarity"
)

type Repository interface {
	GetSet(ctx context.Context, setID int64) (*CardSet, error)
	ListSets(ctx context.Context) ([]CardSet, error)
	ListCardsBySet(ctx context.Context, setID int64) ([]Card, error)
	ListCards(ctx context.Context) ([]Card, error)
	ListRarities(ctx context.Context) ([]rarity.Rarity, error)

	// Upserts are keyed by title and fill in the stored id.
	UpsertRarity(ctx context.Context, r *rarity.Rarity) error
	UpsertSet(ctx context.Context, set *CardSet) error
	UpsertCard(ctx context.Context, card *Card) error
}
