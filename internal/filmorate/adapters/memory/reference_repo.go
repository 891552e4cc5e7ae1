package memory

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// DefaultGenres - стандартный справочник жанров, совпадает с миграцией.
var DefaultGenres = []entities.Genre{
	{ID: 1, Name: "Комедия"},
	{ID: 2, Name: "Драма"},
	{ID: 3, Name: "Мультфильм"},
	{ID: 4, Name: "Триллер"},
	{ID: 5, Name: "Документальный"},
	{ID: 6, Name: "Боевик"},
}

// DefaultMpaRatings - стандартный справочник рейтингов, совпадает с миграцией.
var DefaultMpaRatings = []entities.MpaRating{
	{ID: 1, Name: "G", Description: "у фильма нет возрастных ограничений"},
	{ID: 2, Name: "PG", Description: "детям рекомендуется смотреть фильм с родителями"},
	{ID: 3, Name: "PG-13", Description: "детям до 13 лет просмотр не желателен"},
	{ID: 4, Name: "R", Description: "лицам до 17 лет просматривать фильм можно только в присутствии взрослого"},
	{ID: 5, Name: "NC-17", Description: "лицам до 18 лет просмотр запрещён"},
}

type genreRepository struct {
	store *Store
}

func (r *genreRepository) FindAll(_ context.Context) ([]*entities.Genre, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*entities.Genre, 0, len(r.store.genres))
	for _, id := range sortedKeys(r.store.genres) {
		g := r.store.genres[id]
		out = append(out, &g)
	}
	return out, nil
}

func (r *genreRepository) Find(_ context.Context, id int64) (*entities.Genre, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	g, ok := r.store.genres[id]
	if !ok {
		return nil, entities.ErrGenreNotFound
	}
	return &g, nil
}

type mpaRepository struct {
	store *Store
}

func (r *mpaRepository) FindAll(_ context.Context) ([]*entities.MpaRating, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*entities.MpaRating, 0, len(r.store.mpa))
	for _, id := range sortedKeys(r.store.mpa) {
		m := r.store.mpa[id]
		out = append(out, &m)
	}
	return out, nil
}

func (r *mpaRepository) Find(_ context.Context, id int64) (*entities.MpaRating, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.mpa[id]
	if !ok {
		return nil, entities.ErrMpaNotFound
	}
	return &m, nil
}
