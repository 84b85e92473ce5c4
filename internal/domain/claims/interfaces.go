package claims

import (
	"context"

	"github.com/arcana-cards/arcana/internal/domain/catalog"
	"github.com/arcana-cards/arcana/internal/domain/collection"
	"github.com/arcana-cards/arcana/internal/domain/packs"
)

type PackConsumer interface {
	CheckAndConsume(ctx context.Context, userID string) (*packs.Status, error)
}

type Drawer interface {
	Draw(ctx context.Context, setID int64, count int) ([]catalog.Card, error)
}

type Ledger interface {
	Get(ctx context.Context, userID string) (*collection.Collection, error)
	Merge(ctx context.Context, collectionID int64, drawn []catalog.Card) ([]collection.MergedCard, error)
}

type CollectionProvisioner interface {
	EnsureCollection(ctx context.Context, userID string) (*collection.Collection, error)
}
