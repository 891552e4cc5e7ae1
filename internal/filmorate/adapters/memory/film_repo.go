package memory

import (
	"context"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/pkg/logger"
)

const (
	msgFilmCreated = "film created in memory"
	msgFilmAmended = "film amended in memory"
	msgFilmDeleted = "film deleted from memory"
)

type filmRepository struct {
	store *Store
}

func (r *filmRepository) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	if film == nil {
		return nil, entities.ErrNilEntity
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := film.Clone()
	if err := s.resolveFilmRefs(stored); err != nil {
		return nil, err
	}

	stored.ID = s.nextFilmID
	s.nextFilmID++
	s.films[stored.ID] = stored

	logger.Log(ctx).Debug(ctx, msgFilmCreated, zap.Int64("film_id", stored.ID))

	return stored.Clone(), nil
}

func (r *filmRepository) Amend(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	if film == nil {
		return nil, entities.ErrNilEntity
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return nil, entities.ErrFilmNotFound
	}

	stored := film.Clone()
	if err := s.resolveFilmRefs(stored); err != nil {
		return nil, err
	}
	s.films[stored.ID] = stored

	logger.Log(ctx).Debug(ctx, msgFilmAmended, zap.Int64("film_id", stored.ID))

	return stored.Clone(), nil
}

func (r *filmRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[id]; !ok {
		return entities.ErrFilmNotFound
	}
	delete(s.films, id)

	logger.Log(ctx).Debug(ctx, msgFilmDeleted, zap.Int64("film_id", id))

	return nil
}

func (r *filmRepository) Find(_ context.Context, id int64) (*entities.Film, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	film, ok := s.films[id]
	if !ok {
		return nil, entities.ErrFilmNotFound
	}
	return film.Clone(), nil
}

func (r *filmRepository) FindAll(_ context.Context) ([]*entities.Film, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Film, 0, len(s.films))
	for _, id := range sortedKeys(s.films) {
		out = append(out, s.films[id].Clone())
	}
	return out, nil
}
