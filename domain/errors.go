package domain

import "errors"

// Validation errors (400)
var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWeakPassword     = errors.New("password does not meet strength requirements")
	ErrEmailTaken       = errors.New("user with this email already exists")
	ErrInvalidRole      = errors.New("status must be either \"admin\", \"moderator\", or \"user\"")
	ErrSelfRoleChange   = errors.New("cannot change your own status")
	ErrSelfDelete       = errors.New("cannot delete your own account")
)

// Authentication errors (401)
var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrTokenInvalid         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// Authorization errors (403)
var (
	ErrForbidden = errors.New("insufficient role permissions")
)

// Not-found errors (404)
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
)

// Throttling errors (429)
var (
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// Infrastructure errors (500). These are logged with detail server-side and
// reduced to a generic message before reaching the client.
var (
	ErrHashingFailure = errors.New("password hashing failure")
)
