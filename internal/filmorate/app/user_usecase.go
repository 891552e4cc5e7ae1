package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/api"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

const (
	methodCreateUser       = "CreateUser"
	methodUpdateUser       = "UpdateUser"
	methodGetAllUsers      = "GetAllUsers"
	methodGetUserByID      = "GetUserByID"
	methodDeleteUser       = "DeleteUser"
	methodAddFriends       = "AddFriends"
	methodDeleteFriends    = "DeleteFriends"
	methodGetFriends       = "GetFriends"
	methodGetMutualFriends = "GetMutualFriends"

	msgCreatingUser       = "creating user"
	msgUserCreated        = "user successfully created"
	msgUserUpdated        = "user successfully updated"
	msgUserDeleted        = "user successfully deleted"
	msgFriendsAdded       = "friendship created"
	msgFriendsDeleted     = "friendship removed"
	msgInvalidUser        = "user rejected by validation"
	msgErrStoringUser     = "failed to store user"
	msgErrFindingUserByID = "failed to find user by ID"

	errCtxValidatingUser  = "validating user"
	errCtxCreatingUser    = "creating user"
	errCtxUpdatingUser    = "updating user"
	errCtxFetchingUser    = "fetching user"
	errCtxFetchingUsers   = "fetching users"
	errCtxDeletingUser    = "deleting user"
	errCtxStoringFriends  = "storing friendship"
	errCtxFetchingFriends = "fetching friends"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает новый экземпляр сервиса пользователя.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
	}
}

// CreateUser проверяет пользователя и сохраняет его. Пустое имя заменяется логином.
// Новый пользователь создается без друзей: дружба добавляется только через AddFriends.
func (u *UserUseCaseImpl) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser))
	log.Debug(ctx, msgCreatingUser)

	prepared, err := prepareUser(user)
	if err != nil {
		log.Debug(ctx, msgInvalidUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	prepared.Friends = entities.NewIDSet()

	created, err := u.userRepo.Create(ctx, prepared)
	if err != nil {
		log.Error(ctx, msgErrStoringUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.Int64("user_id", created.ID))
	return created, nil
}

// UpdateUser обновляет профиль. Множество друзей берется из хранилища,
// чтобы не нарушить симметрию дружбы.
func (u *UserUseCaseImpl) UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUser))

	prepared, err := prepareUser(user)
	if err != nil {
		log.Debug(ctx, msgInvalidUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	stored, err := u.userRepo.Find(ctx, prepared.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}
	prepared.Friends = stored.Friends

	updated, err := u.userRepo.Amend(ctx, prepared)
	if err != nil {
		log.Error(ctx, msgErrStoringUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgUserUpdated, zap.Int64("user_id", updated.ID))
	return updated, nil
}

// GetAllUsers возвращает всех пользователей по возрастанию id.
func (u *UserUseCaseImpl) GetAllUsers(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetAllUsers))

	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		log.Error(ctx, errCtxFetchingUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUsers, err)
	}
	return users, nil
}

// GetUserByID получает пользователя по ID.
func (u *UserUseCaseImpl) GetUserByID(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUserByID), zap.Int64("user_id", id))

	user, err := u.userRepo.Find(ctx, id)
	if err != nil {
		log.Debug(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}
	return user, nil
}

func (u *UserUseCaseImpl) DeleteUser(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.Int64("user_id", id))

	if _, err := u.userRepo.Find(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}
	if err := u.userRepo.Delete(ctx, id); err != nil {
		log.Error(ctx, errCtxDeletingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}

	log.Info(ctx, msgUserDeleted)
	return nil
}

// AddFriends записывает обе половины дружбы одним вызовом AmendAll.
func (u *UserUseCaseImpl) AddFriends(ctx context.Context, userID, friendID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodAddFriends),
		zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))

	if userID == friendID {
		return entities.ErrSelfFriendship
	}

	user, friend, err := u.findPair(ctx, userID, friendID)
	if err != nil {
		return err
	}

	user.Friends.Add(friendID)
	friend.Friends.Add(userID)

	if _, err := u.userRepo.AmendAll(ctx, user, friend); err != nil {
		log.Error(ctx, errCtxStoringFriends, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxStoringFriends, err)
	}

	log.Info(ctx, msgFriendsAdded)
	return nil
}

// DeleteFriends не считает ошибкой отсутствие дружбы.
func (u *UserUseCaseImpl) DeleteFriends(ctx context.Context, userID, friendID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteFriends),
		zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))

	user, friend, err := u.findPair(ctx, userID, friendID)
	if err != nil {
		return err
	}

	user.Friends.Remove(friendID)
	friend.Friends.Remove(userID)

	if _, err := u.userRepo.AmendAll(ctx, user, friend); err != nil {
		log.Error(ctx, errCtxStoringFriends, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxStoringFriends, err)
	}

	log.Info(ctx, msgFriendsDeleted)
	return nil
}

// GetFriends возвращает друзей пользователя по возрастанию id.
func (u *UserUseCaseImpl) GetFriends(ctx context.Context, userID int64) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetFriends), zap.Int64("user_id", userID))

	user, err := u.userRepo.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}

	friends, err := u.userRepo.GetUsersByIDs(ctx, user.Friends)
	if err != nil {
		log.Error(ctx, errCtxFetchingFriends, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingFriends, err)
	}
	return friends, nil
}

// GetMutualFriends возвращает пересечение множеств друзей двух пользователей.
func (u *UserUseCaseImpl) GetMutualFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetMutualFriends),
		zap.Int64("user_id", userID), zap.Int64("other_id", otherID))

	user, other, err := u.findPair(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}

	mutual, err := u.userRepo.GetUsersByIDs(ctx, user.Friends.Intersect(other.Friends))
	if err != nil {
		log.Error(ctx, errCtxFetchingFriends, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingFriends, err)
	}
	return mutual, nil
}

func (u *UserUseCaseImpl) findPair(ctx context.Context, firstID, secondID int64) (*entities.User, *entities.User, error) {
	first, err := u.userRepo.Find(ctx, firstID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %d: %w", errCtxFetchingUser, firstID, err)
	}
	second, err := u.userRepo.Find(ctx, secondID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %d: %w", errCtxFetchingUser, secondID, err)
	}
	return first, second, nil
}

func prepareUser(user *entities.User) (*entities.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	prepared := user.Clone()
	prepared.ApplyDefaultName()
	return prepared, nil
}
