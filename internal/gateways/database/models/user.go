package models

import (
	"time"

	"github.com/arcana-cards/arcana/internal/domain/accounts"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        string    `bun:"id,pk,type:text"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func (u *User) ToDomain() *accounts.User {
	return &accounts.User{ID: u.ID, CreatedAt: u.CreatedAt}
}

// UserUpload is the custom card a user uploaded.
type UserUpload struct {
	bun.BaseModel `bun:"table:user_uploads,alias:uu"`

	ID          int64     `bun:"id,pk,autoincrement"`
	UserID      string    `bun:"user_id,notnull,type:text"`
	Title       string    `bun:"title,notnull"`
	Description string    `bun:"description,notnull,default:''"`
	ImageRef    string    `bun:"image_ref,notnull"`
	RarityID    int64     `bun:"rarity_id,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func (u *UserUpload) ToDomain() accounts.UserCard {
	return accounts.UserCard{
		ID:          u.ID,
		UserID:      u.UserID,
		Title:       u.Title,
		Description: u.Description,
		ImageRef:    u.ImageRef,
		RarityID:    u.RarityID,
		CreatedAt:   u.CreatedAt,
	}
}
