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

// FriendshipStatus пишется в таблицу friendships. Дружба подтверждается сразу,
// статус сохраняется для совместимости схемы.
const FriendshipStatus = "pending"

const (
	queryInsertUser = `
        INSERT INTO users (email, login, name, birthday)
        VALUES ($1, $2, $3, $4)
        RETURNING user_id
    `
	queryUpdateUser = `
        UPDATE users
        SET email = $2, login = $3, name = $4, birthday = $5
        WHERE user_id = $1
    `
	queryDeleteUser            = `DELETE FROM users WHERE user_id = $1`
	queryDeleteUserFriendships = `DELETE FROM friendships WHERE user_id = $1 OR friend_id = $1`
	queryDeleteUserLikes       = `DELETE FROM film_likes WHERE user_id = $1`
	queryDeleteOutgoingFriends = `DELETE FROM friendships WHERE user_id = $1`
	queryInsertFriends         = `
        INSERT INTO friendships (user_id, friend_id, status)
        SELECT $1, unnest($2::bigint[]), $3
    `
	querySelectUser = `
        SELECT user_id, email, login, name, birthday
        FROM users
        WHERE user_id = $1
    `
	querySelectUsers = `
        SELECT user_id, email, login, name, birthday
        FROM users
        ORDER BY user_id
    `
	querySelectUsersByIDs = `
        SELECT user_id, email, login, name, birthday
        FROM users
        WHERE user_id = ANY($1)
        ORDER BY user_id
    `
	querySelectFriends = `
        SELECT user_id, friend_id
        FROM friendships
        WHERE user_id = ANY($1)
    `

	errCtxCreateUser   = "error creating user"
	errCtxAmendUser    = "error amending user"
	errCtxDeleteUser   = "error deleting user"
	errCtxQueryUser    = "error querying user"
	errCtxQueryUsers   = "error querying users"
	errCtxQueryFriends = "error querying friends"
	errCtxSyncFriends  = "error syncing friends"

	msgUserNotFound = "user not found"
)

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create сохраняет пользователя и его исходящие связи дружбы.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	if user == nil {
		return nil, entities.ErrNilEntity
	}

	var created *entities.User
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, queryInsertUser,
			user.Email,
			user.Login,
			user.Name,
			user.Birthday,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxCreateUser, err)
		}

		if err := insertFriends(ctx, tx, id, user.Friends); err != nil {
			return err
		}

		created, err = loadUser(ctx, tx, id)
		return err
	})
	if err != nil {
		if !isNotFound(err) {
			log.Error(ctx, errCtxCreateUser, zap.Error(err))
		}
		return nil, err
	}

	log.Debug(ctx, "user created", zap.Int64("user_id", created.ID))

	return created, nil
}

// Amend обновляет пользователя и пересоздает его исходящие связи дружбы.
func (r *UserRepository) Amend(ctx context.Context, user *entities.User) (*entities.User, error) {
	amended, err := r.AmendAll(ctx, user)
	if err != nil {
		return nil, err
	}
	return amended[0], nil
}

// AmendAll обновляет всех переданных пользователей в одной транзакции.
func (r *UserRepository) AmendAll(ctx context.Context, users ...*entities.User) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "AmendAll"))

	for _, u := range users {
		if u == nil {
			return nil, entities.ErrNilEntity
		}
	}

	amended := make([]*entities.User, 0, len(users))
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, u := range users {
			if err := amendUser(ctx, tx, u); err != nil {
				return err
			}
		}
		for _, u := range users {
			loaded, err := loadUser(ctx, tx, u.ID)
			if err != nil {
				return err
			}
			amended = append(amended, loaded)
		}
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			log.Debug(ctx, msgUserNotFound, zap.Error(err))
		} else {
			log.Error(ctx, errCtxAmendUser, zap.Error(err))
		}
		return nil, err
	}

	return amended, nil
}

// Delete удаляет пользователя, его дружбу в обе стороны и его лайки.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, queryDeleteUserFriendships, id); err != nil {
			return fmt.Errorf("%s: %w", errCtxDeleteUser, err)
		}
		if _, err := tx.Exec(ctx, queryDeleteUserLikes, id); err != nil {
			return fmt.Errorf("%s: %w", errCtxDeleteUser, err)
		}

		tag, err := tx.Exec(ctx, queryDeleteUser, id)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxDeleteUser, err)
		}
		if tag.RowsAffected() == 0 {
			return entities.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			log.Debug(ctx, msgUserNotFound, zap.Int64("user_id", id))
		} else {
			log.Error(ctx, errCtxDeleteUser, zap.Error(err))
		}
		return err
	}

	return nil
}

// Find находит пользователя по ID.
func (r *UserRepository) Find(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Find"))

	user, err := loadUser(ctx, r.pool, id)
	if err != nil {
		if isNotFound(err) {
			log.Debug(ctx, msgUserNotFound, zap.Int64("user_id", id))
		} else {
			log.Error(ctx, errCtxQueryUser, zap.Error(err))
		}
		return nil, err
	}

	return user, nil
}

// FindAll возвращает всех пользователей, упорядоченных по ID.
func (r *UserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindAll"))

	users, err := r.queryUsers(ctx, querySelectUsers)
	if err != nil {
		log.Error(ctx, errCtxQueryUsers, zap.Error(err))
		return nil, err
	}
	return users, nil
}

// GetUsersByIDs возвращает существующих пользователей из набора, упорядоченных по ID.
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids entities.IDSet) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "GetUsersByIDs"))

	if ids.Len() == 0 {
		return []*entities.User{}, nil
	}

	users, err := r.queryUsers(ctx, querySelectUsersByIDs, ids.Sorted())
	if err != nil {
		log.Error(ctx, errCtxQueryUsers, zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*entities.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxQueryUsers, err)
	}

	users := make([]*entities.User, 0)
	err = forEachRow(rows, func(row pgx.Rows) error {
		user, err := scanUser(row)
		if err != nil {
			return err
		}
		users = append(users, user)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxQueryUsers, err)
	}

	if err := attachFriends(ctx, r.pool, users); err != nil {
		return nil, err
	}
	return users, nil
}

func amendUser(ctx context.Context, q Querier, user *entities.User) error {
	tag, err := q.Exec(ctx, queryUpdateUser,
		user.ID,
		user.Email,
		user.Login,
		user.Name,
		user.Birthday,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxAmendUser, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrUserNotFound
	}

	if _, err := q.Exec(ctx, queryDeleteOutgoingFriends, user.ID); err != nil {
		return fmt.Errorf("%s: %w", errCtxSyncFriends, err)
	}
	return insertFriends(ctx, q, user.ID, user.Friends)
}

func insertFriends(ctx context.Context, q Querier, userID int64, friends entities.IDSet) error {
	if friends.Len() == 0 {
		return nil
	}
	if _, err := q.Exec(ctx, queryInsertFriends, userID, friends.Sorted(), FriendshipStatus); err != nil {
		return classify(errCtxSyncFriends, err)
	}
	return nil
}

func loadUser(ctx context.Context, q Querier, id int64) (*entities.User, error) {
	user, err := scanUser(q.QueryRow(ctx, querySelectUser, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errCtxQueryUser, err)
	}

	if err := attachFriends(ctx, q, []*entities.User{user}); err != nil {
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	user := &entities.User{Friends: entities.NewIDSet()}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Login,
		&user.Name,
		&user.Birthday,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func attachFriends(ctx context.Context, q Querier, users []*entities.User) error {
	if len(users) == 0 {
		return nil
	}

	byID := make(map[int64]*entities.User, len(users))
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		byID[u.ID] = u
		ids = append(ids, u.ID)
	}

	rows, err := q.Query(ctx, querySelectFriends, ids)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxQueryFriends, err)
	}
	err = forEachRow(rows, func(r pgx.Rows) error {
		var userID, friendID int64
		if err := r.Scan(&userID, &friendID); err != nil {
			return err
		}
		if u, ok := byID[userID]; ok {
			u.Friends.Add(friendID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxQueryFriends, err)
	}
	return nil
}
