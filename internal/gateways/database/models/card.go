package models

import (
	"time"

	"github.com/arcana-cards/arcana/internal/domain/catalog"
	"github.com/uptrace/bun"
)

type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Title       string    `bun:"title,notnull,unique:cards_set_id_title_key"`
	Description string    `bun:"description,notnull,default:''"`
	ImageRef    string    `bun:"image_ref,notnull,default:''"`
	RarityID    int64     `bun:"rarity_id,notnull"`
	SetID       int64     `bun:"set_id,notnull,unique:cards_set_id_title_key"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	// Relations
	Rarity *Rarity  `bun:"rel:belongs-to,join:rarity_id=id"`
	Set    *CardSet `bun:"rel:belongs-to,join:set_id=id"`
}

func (c *Card) ToDomain() catalog.Card {
	return catalog.Card{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		ImageRef:    c.ImageRef,
		RarityID:    c.RarityID,
		SetID:       c.SetID,
	}
}

func CardFromDomain(c *catalog.Card) *Card {
	return &Card{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		ImageRef:    c.ImageRef,
		RarityID:    c.RarityID,
		SetID:       c.SetID,
	}
}
