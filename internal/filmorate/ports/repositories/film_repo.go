package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// FilmRepository определяет интерфейс хранилища фильмов, их жанров и лайков.
type FilmRepository interface {
	Create(ctx context.Context, film *entities.Film) (*entities.Film, error)

	// Amend полностью заменяет скалярные поля и пересинхронизирует жанры и лайки.
	Amend(ctx context.Context, film *entities.Film) (*entities.Film, error)

	Delete(ctx context.Context, id int64) error

	Find(ctx context.Context, id int64) (*entities.Film, error)

	FindAll(ctx context.Context) ([]*entities.Film, error)
}
