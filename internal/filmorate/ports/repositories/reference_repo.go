package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// GenreRepository - справочник жанров только для чтения.
type GenreRepository interface {
	FindAll(ctx context.Context) ([]*entities.Genre, error)

	Find(ctx context.Context, id int64) (*entities.Genre, error)
}

// MpaRepository - справочник рейтингов MPA только для чтения.
type MpaRepository interface {
	FindAll(ctx context.Context) ([]*entities.MpaRating, error)

	Find(ctx context.Context, id int64) (*entities.MpaRating, error)
}
