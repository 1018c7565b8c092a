package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Session gate failures. All of them unwrap to ErrUnauthorized so the HTTP
// layer maps every one to 401; the distinction exists for logs only.
var (
	ErrSessionMissing = fmt.Errorf("%w: session missing", ErrUnauthorized)
	ErrSessionExpired = fmt.Errorf("%w: session expired", ErrUnauthorized)
	ErrSessionInvalid = fmt.Errorf("%w: session invalid", ErrUnauthorized)
)
