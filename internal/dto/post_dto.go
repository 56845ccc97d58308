package dto

import "time"

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePostRequest is a partial patch: nil means "leave the field alone",
// so an omitted field is never mistaken for an empty value.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type PostResponse struct {
	ID          uint      `json:"id"`
	AuthorID    uint      `json:"author_id"`
	AuthorLogin string    `json:"author_login"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
