package collection

import (
	"time"

	"github.com/arcana-cards/arcana/internal/domain/catalog"
)

type Collection struct {
	ID        int64
	UserID    string
	CreatedAt time.Time
}

// MergedCard is one drawn card after it was merged into the collection.
// IsNew is relative to the collection as it was before the whole batch.
type MergedCard struct {
	Card        catalog.Card
	IsNew       bool
	NewQuantity int64
}

type OwnedCard struct {
	Card       catalog.Card
	Quantity   int64
	ObtainedAt time.Time
}

type SetProgress struct {
	Set   catalog.CardSet
	Owned int
	Total int
}
