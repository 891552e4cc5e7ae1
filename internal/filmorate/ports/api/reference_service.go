package api

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// GenreUseCase - чтение справочника жанров.
type GenreUseCase interface {
	GetAllGenres(ctx context.Context) ([]*entities.Genre, error)
	GetGenreByID(ctx context.Context, id int64) (*entities.Genre, error)
}

// MpaUseCase - чтение справочника рейтингов MPA.
type MpaUseCase interface {
	GetAllMpa(ctx context.Context) ([]*entities.MpaRating, error)
	GetMpaByID(ctx context.Context, id int64) (*entities.MpaRating, error)
}
