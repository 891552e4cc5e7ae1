package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

const (
	querySelectGenres = `SELECT genre_id, genre_name FROM genres ORDER BY genre_id`
	querySelectGenre  = `SELECT genre_id, genre_name FROM genres WHERE genre_id = $1`
	querySelectMpas   = `SELECT mpa_id, mpa_name, description FROM mpa_ratings ORDER BY mpa_id`
	querySelectMpa    = `SELECT mpa_id, mpa_name, description FROM mpa_ratings WHERE mpa_id = $1`

	errCtxQueryGenre = "error querying genre"
	errCtxQueryMpa   = "error querying mpa rating"
)

// GenreRepository читает справочник жанров.
type GenreRepository struct {
	pool PgxPoolInterface
}

// NewGenreRepository создает новый экземпляр справочника жанров.
func NewGenreRepository(pool PgxPoolInterface) repositories.GenreRepository {
	return &GenreRepository{pool: pool}
}

func (r *GenreRepository) FindAll(ctx context.Context) ([]*entities.Genre, error) {
	log := logger.Log(ctx).With(zap.String("repository", "genre"), zap.String("method", "FindAll"))

	rows, err := r.pool.Query(ctx, querySelectGenres)
	if err != nil {
		log.Error(ctx, errCtxQueryGenre, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxQueryGenre, err)
	}

	genres := make([]*entities.Genre, 0)
	err = forEachRow(rows, func(row pgx.Rows) error {
		var g entities.Genre
		if err := row.Scan(&g.ID, &g.Name); err != nil {
			return err
		}
		genres = append(genres, &g)
		return nil
	})
	if err != nil {
		log.Error(ctx, errCtxQueryGenre, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxQueryGenre, err)
	}
	return genres, nil
}

func (r *GenreRepository) Find(ctx context.Context, id int64) (*entities.Genre, error) {
	log := logger.Log(ctx).With(zap.String("repository", "genre"), zap.String("method", "Find"))

	var g entities.Genre
	if err := r.pool.QueryRow(ctx, querySelectGenre, id).Scan(&g.ID, &g.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "genre not found", zap.Int64("genre_id", id))
			return nil, entities.ErrGenreNotFound
		}
		log.Error(ctx, errCtxQueryGenre, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxQueryGenre, err)
	}
	return &g, nil
}

// MpaRepository читает справочник рейтингов MPA.
type MpaRepository struct {
	pool PgxPoolInterface
}

// NewMpaRepository создает новый экземпляр справочника рейтингов.
func NewMpaRepository(pool PgxPoolInterface) repositories.MpaRepository {
	return &MpaRepository{pool: pool}
}

func (r *MpaRepository) FindAll(ctx context.Context) ([]*entities.MpaRating, error) {
	log := logger.Log(ctx).With(zap.String("repository", "mpa"), zap.String("method", "FindAll"))

	rows, err := r.pool.Query(ctx, querySelectMpas)
	if err != nil {
		log.Error(ctx, errCtxQueryMpa, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxQueryMpa, err)
	}

	ratings := make([]*entities.MpaRating, 0)
	err = forEachRow(rows, func(row pgx.Rows) error {
		var m entities.MpaRating
		if err := row.Scan(&m.ID, &m.Name, &m.Description); err != nil {
			return err
		}
		ratings = append(ratings, &m)
		return nil
	})
	if err != nil {
		log.Error(ctx, errCtxQueryMpa, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxQueryMpa, err)
	}
	return ratings, nil
}

func (r *MpaRepository) Find(ctx context.Context, id int64) (*entities.MpaRating, error) {
	log := logger.Log(ctx).With(zap.String("repository", "mpa"), zap.String("method", "Find"))

	var m entities.MpaRating
	if err := r.pool.QueryRow(ctx, querySelectMpa, id).Scan(&m.ID, &m.Name, &m.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "mpa rating not found", zap.Int64("mpa_id", id))
			return nil, entities.ErrMpaNotFound
		}
		log.Error(ctx, errCtxQueryMpa, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxQueryMpa, err)
	}
	return &m, nil
}
