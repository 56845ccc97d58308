package models

import (
	"time"
)

// Favorite is a plain join row between a user and a bookmarked post.
// The composite primary key enforces one favorite per (user, post) pair.
type Favorite struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	PostID    uint      `gorm:"primaryKey" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
