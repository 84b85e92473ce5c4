package models

import (
	"time"

	"github.com/arcana-cards/arcana/internal/domain/collection"
	"github.com/uptrace/bun"
)

type Collection struct {
	bun.BaseModel `bun:"table:collections,alias:col"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    string    `bun:"user_id,notnull,unique,type:text"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func (c *Collection) ToDomain() *collection.Collection {
	return &collection.Collection{ID: c.ID, UserID: c.UserID, CreatedAt: c.CreatedAt}
}

type CollectionEntry struct {
	bun.BaseModel `bun:"table:collection_entries,alias:ce"`

	ID           int64     `bun:"id,pk,autoincrement"`
	CollectionID int64     `bun:"collection_id,notnull,unique:collection_card"`
	CardID       int64     `bun:"card_id,notnull,unique:collection_card"`
	Quantity     int64     `bun:"quantity,notnull,default:1"`
	ObtainedAt   time.Time `bun:"obtained_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	// Relations
	Card *Card `bun:"rel:belongs-to,join:card_id=id"`
}

func (e *CollectionEntry) ToDomain() collection.OwnedCard {
	owned := collection.OwnedCard{Quantity: e.Quantity, ObtainedAt: e.ObtainedAt}
	if e.Card != nil {
		owned.Card = e.Card.ToDomain()
	} else {
		owned.Card.ID = e.CardID
	}
	return owned
}
