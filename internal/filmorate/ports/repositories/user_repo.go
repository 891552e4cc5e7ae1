package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// UserRepository определяет интерфейс хранилища пользователей и дружбы.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	Amend(ctx context.Context, user *entities.User) (*entities.User, error)

	// AmendAll изменяет нескольких пользователей как одну атомарную операцию.
	AmendAll(ctx context.Context, users ...*entities.User) ([]*entities.User, error)

	// Delete удаляет пользователя вместе с его дружбой и лайками.
	Delete(ctx context.Context, id int64) error

	Find(ctx context.Context, id int64) (*entities.User, error)

	FindAll(ctx context.Context) ([]*entities.User, error)

	// GetUsersByIDs молча пропускает неизвестные идентификаторы.
	GetUsersByIDs(ctx context.Context, ids entities.IDSet) ([]*entities.User, error)
}
