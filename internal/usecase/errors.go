package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrSourceEmpty           = errors.New("primary source returned no players")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
