package services

import "errors"

// Sentinel errors the handler layer maps to HTTP statuses with errors.Is.
// Anything else coming out of a service is treated as a store failure and
// answered with a generic 500; the wrapped detail only goes to the log.
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrCourseNotFound     = errors.New("course not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrBlogNotFound       = errors.New("blog not found")
	ErrAlreadyPurchased   = errors.New("course already purchased")
)
