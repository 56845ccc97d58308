package services

import "errors"

// Domain failures surfaced by the services. Handlers map these to HTTP
// status codes with errors.Is; anything else is an internal error and is
// logged rather than leaked.
var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrLoginTaken         = errors.New("login already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrLikeNotFound       = errors.New("like not found")
	ErrFavoriteNotFound   = errors.New("favorite not found")
	ErrAlreadyLiked       = errors.New("post already liked")
	ErrAlreadyFavorited   = errors.New("post already in favorites")
	ErrForbidden          = errors.New("not allowed")
	ErrSelfDelete         = errors.New("admins cannot delete their own account")
)
