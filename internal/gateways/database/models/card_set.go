package models

import (
	"time"

	"github.com/arcana-cards/arcana/internal/domain/catalog"
	"github.com/uptrace/bun"
)

type CardSet struct {
	bun.BaseModel `bun:"table:card_sets,alias:cs"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Title       string    `bun:"title,notnull,unique"`
	Description string    `bun:"description,notnull,default:''"`
	ImageRef    string    `bun:"image_ref,notnull,default:''"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	// Relations
	Cards []*Card `bun:"rel:has-many,join:id=set_id"`
}

func (s *CardSet) ToDomain() catalog.CardSet {
	return catalog.CardSet{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		ImageRef:    s.ImageRef,
	}
}
