package service

import "errors"

// Taxonomía de errores de dominio. Los handlers los mapean a status
// HTTP con errors.Is; cualquier otro error se loguea y sale como
// "internal error" genérico.
var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrReviewNotFound = errors.New("review not found")
	ErrEntryNotFound  = errors.New("movie not found in watchlist")
	ErrUserNotFound   = errors.New("user not found")

	ErrNotOwner = errors.New("not authorized for this resource")

	ErrDuplicateReview = errors.New("you have already reviewed this movie")
	ErrDuplicateEntry  = errors.New("movie is already in your watchlist")
	ErrUsernameTaken   = errors.New("username is already taken")
	ErrEmailTaken      = errors.New("email is already registered")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError lleva mensajes por campo para reglas que el
// validador de structs no cubre (géneros canónicos, año máximo, etc).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
