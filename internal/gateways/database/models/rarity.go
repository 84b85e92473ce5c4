package models

import (
	"github.com/arcana-cards/arcana/internal/domain/rarity"
	"github.com/uptrace/bun"
)

type Rarity struct {
	bun.BaseModel `bun:"table:rarities,alias:r"`

	ID          int64   `bun:"id,pk,autoincrement"`
	Title       string  `bun:"title,notnull,unique"`
	Description string  `bun:"description,notnull,default:''"`
	Weight      float64 `bun:"probability_weight,notnull"`
}

func (r *Rarity) ToDomain() rarity.Rarity {
	return rarity.Rarity{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Weight:      r.Weight,
	}
}
