package models

import (
	"time"

	"github.com/arcana-cards/arcana/internal/domain/packs"
	"github.com/uptrace/bun"
)

type PackStatus struct {
	bun.BaseModel `bun:"table:pack_statuses,alias:ps"`

	UserID         string    `bun:"user_id,pk,type:text"`
	PacksAvailable int       `bun:"packs_available,notnull"`
	LastOpenedAt   time.Time `bun:"last_opened_at,notnull"`
	UpdatedAt      time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func (p *PackStatus) ToDomain() *packs.Status {
	return &packs.Status{
		UserID:         p.UserID,
		PacksAvailable: p.PacksAvailable,
		LastOpenedAt:   p.LastOpenedAt,
	}
}

func PackStatusFromDomain(s *packs.Status) *PackStatus {
	return &PackStatus{
		UserID:         s.UserID,
		PacksAvailable: s.PacksAvailable,
		LastOpenedAt:   s.LastOpenedAt,
		UpdatedAt:      time.Now(),
	}
}
