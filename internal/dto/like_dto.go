package dto

import "time"

type LikePostRequest struct {
	PostID uint `json:"post_id"`
}

type LikeResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	PostID    uint      `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

type LikeCountResponse struct {
	PostID     uint  `json:"post_id"`
	LikesCount int64 `json:"likes_count"`
}

type LikeCheckResponse struct {
	Liked bool `json:"liked"`
}

type FavoriteCheckResponse struct {
	IsFavorite bool `json:"is_favorite"`
}
