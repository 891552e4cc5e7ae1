package api

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// FilmUseCase определяет основной порт для операций с фильмами
type FilmUseCase interface {
	CreateFilm(ctx context.Context, film *entities.Film) (*entities.Film, error)
	UpdateFilm(ctx context.Context, film *entities.Film) (*entities.Film, error)
	GetAllFilms(ctx context.Context) ([]*entities.Film, error)
	GetFilmByID(ctx context.Context, id int64) (*entities.Film, error)
	DeleteFilm(ctx context.Context, id int64) error

	AddLike(ctx context.Context, filmID, userID int64) error
	DeleteLike(ctx context.Context, filmID, userID int64) error

	// GetPopularFilms: nil count означает 10 фильмов.
	GetPopularFilms(ctx context.Context, count *int) ([]*entities.Film, error)
}
