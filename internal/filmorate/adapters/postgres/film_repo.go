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
	queryInsertFilm = `
        INSERT INTO films (title, description, release_date, duration, mpa_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING film_id
    `
	queryUpdateFilm = `
        UPDATE films
        SET title = $2, description = $3, release_date = $4, duration = $5, mpa_id = $6
        WHERE film_id = $1
    `
	queryDeleteFilm       = `DELETE FROM films WHERE film_id = $1`
	queryDeleteFilmGenres = `DELETE FROM film_genres WHERE film_id = $1`
	queryDeleteFilmLikes  = `DELETE FROM film_likes WHERE film_id = $1`
	queryInsertFilmGenres = `
        INSERT INTO film_genres (film_id, genre_id)
        SELECT $1, unnest($2::bigint[])
    `
	queryInsertFilmLikes = `
        INSERT INTO film_likes (film_id, user_id)
        SELECT $1, unnest($2::bigint[])
    `
	querySelectFilm = `
        SELECT f.film_id, f.title, f.description, f.release_date, f.duration,
               m.mpa_id, m.mpa_name, m.description
        FROM films f
        JOIN mpa_ratings m ON m.mpa_id = f.mpa_id
        WHERE f.film_id = $1
    `
	querySelectFilms = `
        SELECT f.film_id, f.title, f.description, f.release_date, f.duration,
               m.mpa_id, m.mpa_name, m.description
        FROM films f
        JOIN mpa_ratings m ON m.mpa_id = f.mpa_id
        ORDER BY f.film_id
    `
	querySelectFilmGenres = `
        SELECT fg.film_id, g.genre_id, g.genre_name
        FROM film_genres fg
        JOIN genres g ON g.genre_id = fg.genre_id
        WHERE fg.film_id = ANY($1)
        ORDER BY fg.film_id, g.genre_id
    `
	querySelectFilmLikes = `
        SELECT film_id, user_id
        FROM film_likes
        WHERE film_id = ANY($1)
    `

	errCtxCreateFilm  = "error creating film"
	errCtxAmendFilm   = "error amending film"
	errCtxDeleteFilm  = "error deleting film"
	errCtxQueryFilm   = "error querying film"
	errCtxQueryFilms  = "error querying films"
	errCtxQueryGenres = "error querying film genres"
	errCtxQueryLikes  = "error querying film likes"
	errCtxSyncGenres  = "error syncing film genres"
	errCtxSyncLikes   = "error syncing film likes"

	msgFilmNotFound = "film not found"
)

// FilmRepository реализует интерфейс repositories.FilmRepository для работы с Postgres.
type FilmRepository struct {
	pool PgxPoolInterface
}

// NewFilmRepository создает новый экземпляр репозитория фильмов.
func NewFilmRepository(pool PgxPoolInterface) repositories.FilmRepository {
	return &FilmRepository{pool: pool}
}

// Create сохраняет фильм вместе с жанрами и лайками.
func (r *FilmRepository) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "Create"))

	if film == nil || film.Mpa == nil {
		return nil, entities.ErrMpaRequired
	}

	var created *entities.Film
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, queryInsertFilm,
			film.Name,
			film.Description,
			film.ReleaseDate,
			film.Duration,
			film.Mpa.ID,
		).Scan(&id)
		if err != nil {
			return classify(errCtxCreateFilm, err)
		}

		if err := syncFilmAssociations(ctx, tx, id, film); err != nil {
			return err
		}

		created, err = loadFilm(ctx, tx, id)
		return err
	})
	if err != nil {
		if !isNotFound(err) {
			log.Error(ctx, errCtxCreateFilm, zap.Error(err))
		}
		return nil, err
	}

	log.Debug(ctx, "film created", zap.Int64("film_id", created.ID))

	return created, nil
}

// Amend заменяет поля фильма и пересоздает строки жанров и лайков.
func (r *FilmRepository) Amend(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "Amend"))

	if film == nil || film.Mpa == nil {
		return nil, entities.ErrMpaRequired
	}

	var amended *entities.Film
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, queryUpdateFilm,
			film.ID,
			film.Name,
			film.Description,
			film.ReleaseDate,
			film.Duration,
			film.Mpa.ID,
		)
		if err != nil {
			return classify(errCtxAmendFilm, err)
		}
		if tag.RowsAffected() == 0 {
			return entities.ErrFilmNotFound
		}

		if _, err := tx.Exec(ctx, queryDeleteFilmGenres, film.ID); err != nil {
			return fmt.Errorf("%s: %w", errCtxSyncGenres, err)
		}
		if _, err := tx.Exec(ctx, queryDeleteFilmLikes, film.ID); err != nil {
			return fmt.Errorf("%s: %w", errCtxSyncLikes, err)
		}

		if err := syncFilmAssociations(ctx, tx, film.ID, film); err != nil {
			return err
		}

		amended, err = loadFilm(ctx, tx, film.ID)
		return err
	})
	if err != nil {
		if isNotFound(err) {
			log.Debug(ctx, msgFilmNotFound, zap.Int64("film_id", film.ID))
		} else {
			log.Error(ctx, errCtxAmendFilm, zap.Error(err))
		}
		return nil, err
	}

	return amended, nil
}

// Delete удаляет фильм и все связанные с ним строки.
func (r *FilmRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "Delete"))

	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, queryDeleteFilmGenres, id); err != nil {
			return fmt.Errorf("%s: %w", errCtxDeleteFilm, err)
		}
		if _, err := tx.Exec(ctx, queryDeleteFilmLikes, id); err != nil {
			return fmt.Errorf("%s: %w", errCtxDeleteFilm, err)
		}

		tag, err := tx.Exec(ctx, queryDeleteFilm, id)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxDeleteFilm, err)
		}
		if tag.RowsAffected() == 0 {
			return entities.ErrFilmNotFound
		}
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			log.Debug(ctx, msgFilmNotFound, zap.Int64("film_id", id))
		} else {
			log.Error(ctx, errCtxDeleteFilm, zap.Error(err))
		}
		return err
	}

	return nil
}

// Find находит фильм по ID.
func (r *FilmRepository) Find(ctx context.Context, id int64) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "Find"))

	film, err := loadFilm(ctx, r.pool, id)
	if err != nil {
		if isNotFound(err) {
			log.Debug(ctx, msgFilmNotFound, zap.Int64("film_id", id))
		} else {
			log.Error(ctx, errCtxQueryFilm, zap.Error(err))
		}
		return nil, err
	}

	return film, nil
}

// FindAll возвращает все фильмы, упорядоченные по ID.
func (r *FilmRepository) FindAll(ctx context.Context) ([]*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "FindAll"))

	rows, err := r.pool.Query(ctx, querySelectFilms)
	if err != nil {
		log.Error(ctx, errCtxQueryFilms, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxQueryFilms, err)
	}

	films, err := scanFilms(rows)
	if err != nil {
		log.Error(ctx, errCtxQueryFilms, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxQueryFilms, err)
	}

	if err := attachFilmAssociations(ctx, r.pool, films); err != nil {
		log.Error(ctx, errCtxQueryFilms, zap.Error(err))
		return nil, err
	}

	return films, nil
}

// syncFilmAssociations вставляет текущие жанры (без повторов) и лайки фильма.
func syncFilmAssociations(ctx context.Context, q Querier, filmID int64, film *entities.Film) error {
	if genreIDs := film.GenreIDs(); len(genreIDs) > 0 {
		if _, err := q.Exec(ctx, queryInsertFilmGenres, filmID, genreIDs); err != nil {
			return classify(errCtxSyncGenres, err)
		}
	}
	if film.Likes.Len() > 0 {
		if _, err := q.Exec(ctx, queryInsertFilmLikes, filmID, film.Likes.Sorted()); err != nil {
			return classify(errCtxSyncLikes, err)
		}
	}
	return nil
}

func loadFilm(ctx context.Context, q Querier, id int64) (*entities.Film, error) {
	film, err := scanFilm(q.QueryRow(ctx, querySelectFilm, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrFilmNotFound
		}
		return nil, fmt.Errorf("%s: %w", errCtxQueryFilm, err)
	}

	if err := attachFilmAssociations(ctx, q, []*entities.Film{film}); err != nil {
		return nil, err
	}
	return film, nil
}

func scanFilm(row pgx.Row) (*entities.Film, error) {
	film := &entities.Film{
		Likes:  entities.NewIDSet(),
		Genres: []entities.Genre{},
		Mpa:    &entities.MpaRating{},
	}
	err := row.Scan(
		&film.ID,
		&film.Name,
		&film.Description,
		&film.ReleaseDate,
		&film.Duration,
		&film.Mpa.ID,
		&film.Mpa.Name,
		&film.Mpa.Description,
	)
	if err != nil {
		return nil, err
	}
	return film, nil
}

func scanFilms(rows pgx.Rows) ([]*entities.Film, error) {
	defer rows.Close()

	films := make([]*entities.Film, 0)
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		films = append(films, film)
	}
	return films, rows.Err()
}

// attachFilmAssociations читает жанры и лайки пачкой для всех переданных фильмов.
func attachFilmAssociations(ctx context.Context, q Querier, films []*entities.Film) error {
	if len(films) == 0 {
		return nil
	}

	byID := make(map[int64]*entities.Film, len(films))
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		byID[f.ID] = f
		ids = append(ids, f.ID)
	}

	rows, err := q.Query(ctx, querySelectFilmGenres, ids)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxQueryGenres, err)
	}
	err = forEachRow(rows, func(r pgx.Rows) error {
		var filmID int64
		var g entities.Genre
		if err := r.Scan(&filmID, &g.ID, &g.Name); err != nil {
			return err
		}
		if f, ok := byID[filmID]; ok {
			f.Genres = append(f.Genres, g)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxQueryGenres, err)
	}

	rows, err = q.Query(ctx, querySelectFilmLikes, ids)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxQueryLikes, err)
	}
	err = forEachRow(rows, func(r pgx.Rows) error {
		var filmID, userID int64
		if err := r.Scan(&filmID, &userID); err != nil {
			return err
		}
		if f, ok := byID[filmID]; ok {
			f.Likes.Add(userID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxQueryLikes, err)
	}

	return nil
}

func forEachRow(rows pgx.Rows, fn func(pgx.Rows) error) error {
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
