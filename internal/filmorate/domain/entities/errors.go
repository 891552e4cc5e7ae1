package entities

import (
	"errors"
	"fmt"
)

// Базовые виды ошибок домена. Проверяются через errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// Ошибки NotFound по сущностям.
var (
	ErrFilmNotFound  = fmt.Errorf("film %w", ErrNotFound)
	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
	ErrGenreNotFound = fmt.Errorf("genre %w", ErrNotFound)
	ErrMpaNotFound   = fmt.Errorf("mpa rating %w", ErrNotFound)
	ErrLikeNotFound  = fmt.Errorf("like %w", ErrNotFound)
)

// Ошибки валидации.
var (
	ErrReleaseDateTooEarly = fmt.Errorf("%w: release date must not be before %s",
		ErrValidation, CinemaBirthday.Format(DateLayout))
	ErrMpaRequired    = fmt.Errorf("%w: mpa rating is required", ErrValidation)
	ErrSelfFriendship = fmt.Errorf("%w: user cannot befriend themselves", ErrValidation)
	ErrInvalidCount   = fmt.Errorf("%w: count must not be negative", ErrValidation)
	ErrNilEntity      = fmt.Errorf("%w: entity is required", ErrValidation)
)

// Validation оборачивает причину как ошибку валидации.
func Validation(cause error) error {
	return fmt.Errorf("%w: %w", ErrValidation, cause)
}
