package services

import "errors"

// Caller-visible failure kinds. Handlers map these to status codes with
// errors.Is / errors.As; anything else is an infrastructure failure.
var (
	ErrArtworkNotFound = errors.New("artwork not found")
	ErrNotAuthorized   = errors.New("not authorized for this artwork")
	ErrAlreadyReported = errors.New("you have already reported this artwork")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError marks a missing or malformed required field.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
