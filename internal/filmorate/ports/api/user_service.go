package api

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// UserUseCase определяет основной порт для пользовательских операций
type UserUseCase interface {
	CreateUser(ctx context.Context, user *entities.User) (*entities.User, error)
	UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error)
	GetAllUsers(ctx context.Context) ([]*entities.User, error)
	GetUserByID(ctx context.Context, id int64) (*entities.User, error)
	DeleteUser(ctx context.Context, id int64) error

	AddFriends(ctx context.Context, userID, friendID int64) error
	DeleteFriends(ctx context.Context, userID, friendID int64) error
	GetFriends(ctx context.Context, userID int64) ([]*entities.User, error)
	GetMutualFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error)
}
