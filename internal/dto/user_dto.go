package dto

import "time"

// UpdateUserRequest patches a profile; nil fields are untouched.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Login    *string `json:"login"`
	Password *string `json:"password"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Login     string    `json:"login"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
