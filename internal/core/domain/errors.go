package domain

import "errors"

// Sentinel errors form the service-layer taxonomy. The API boundary maps each
// to a transport status; anything else is reported generically and logged.
var (
	ErrValidation         = errors.New("invalid input")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)
