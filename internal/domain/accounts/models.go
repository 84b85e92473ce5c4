package accounts

import "time"

type User struct {
	ID        string
	CreatedAt time.Time
}

// UserCard is the custom card a user uploaded. A user has at most one.
type UserCard struct {
	ID          int64
	UserID      string
	Title       string
	Description string
	ImageRef    string
	RarityID    int64
	CreatedAt   time.Time
}

type Upload struct {
	Title       string
	Description string
	RarityID    int64
	ContentType string
	Body        []byte
}
