// Package postgres реализует хранилище filmorate поверх PostgreSQL (pgx/v5).
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"filmorate/internal/filmorate/domain/entities"
)

// PgxPoolInterface - подмножество *pgxpool.Pool, нужное репозиториям.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// Querier реализуют и пул, и pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

const (
	errBeginTx    = "begin transaction"
	errCommitTx   = "commit transaction"
	errRollbackTx = "rollback transaction"

	codeForeignKeyViolation = "23503"
)

// withTx выполняет fn в транзакции. Ошибка fn сохраняет свою классификацию.
func withTx(ctx context.Context, pool PgxPoolInterface, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("%s: %w", errRollbackTx, rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCommitTx, err)
	}
	return nil
}

// Имена внешних ключей из миграции migrations/filmorate.
var fkNotFound = map[string]error{
	"fk_films_mpa":          entities.ErrMpaNotFound,
	"fk_film_genres_genre":  entities.ErrGenreNotFound,
	"fk_film_genres_film":   entities.ErrFilmNotFound,
	"fk_film_likes_film":    entities.ErrFilmNotFound,
	"fk_film_likes_user":    entities.ErrUserNotFound,
	"fk_friendships_user":   entities.ErrUserNotFound,
	"fk_friendships_friend": entities.ErrUserNotFound,
}

// classify превращает нарушение внешнего ключа в NotFound.
func classify(errCtx string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		if notFound, ok := fkNotFound[pgErr.ConstraintName]; ok {
			return notFound
		}
		return fmt.Errorf("%s: %w", errCtx, entities.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", errCtx, err)
}

// isNotFound сообщает, что ошибка уже классифицирована доменом.
func isNotFound(err error) bool {
	return errors.Is(err, entities.ErrNotFound)
}
