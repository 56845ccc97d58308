package models

import (
	"time"
)

// Like marks that a user liked a post. The composite unique index is the
// authority on "already liked"; services only translate the constraint
// violation, they never rely on a pre-check alone.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
