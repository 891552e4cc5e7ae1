package memory

import (
	"context"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/pkg/logger"
)

const (
	msgUserCreated  = "user created in memory"
	msgUsersAmended = "users amended in memory"
	msgUserDeleted  = "user deleted from memory"
)

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	if user == nil {
		return nil, entities.ErrNilEntity
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUsers(user.Friends); err != nil {
		return nil, err
	}

	stored := user.Clone()
	stored.ID = s.nextUserID
	s.nextUserID++
	s.users[stored.ID] = stored

	logger.Log(ctx).Debug(ctx, msgUserCreated, zap.Int64("user_id", stored.ID))

	return stored.Clone(), nil
}

func (r *userRepository) Amend(ctx context.Context, user *entities.User) (*entities.User, error) {
	amended, err := r.AmendAll(ctx, user)
	if err != nil {
		return nil, err
	}
	return amended[0], nil
}

// AmendAll проверяет всех пользователей до первой записи, поэтому
// либо применяются все изменения, либо ни одного.
func (r *userRepository) AmendAll(ctx context.Context, users ...*entities.User) ([]*entities.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range users {
		if u == nil {
			return nil, entities.ErrNilEntity
		}
		if _, ok := s.users[u.ID]; !ok {
			return nil, entities.ErrUserNotFound
		}
		if err := s.checkUsers(u.Friends); err != nil {
			return nil, err
		}
	}

	out := make([]*entities.User, 0, len(users))
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		stored := u.Clone()
		s.users[stored.ID] = stored
		out = append(out, stored.Clone())
		ids = append(ids, stored.ID)
	}

	logger.Log(ctx).Debug(ctx, msgUsersAmended, zap.Int64s("user_ids", ids))

	return out, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return entities.ErrUserNotFound
	}
	delete(s.users, id)

	for _, other := range s.users {
		other.Friends.Remove(id)
	}
	for _, film := range s.films {
		film.Likes.Remove(id)
	}

	logger.Log(ctx).Debug(ctx, msgUserDeleted, zap.Int64("user_id", id))

	return nil
}

func (r *userRepository) Find(_ context.Context, id int64) (*entities.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return user.Clone(), nil
}

func (r *userRepository) FindAll(_ context.Context) ([]*entities.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.User, 0, len(s.users))
	for _, id := range sortedKeys(s.users) {
		out = append(out, s.users[id].Clone())
	}
	return out, nil
}

func (r *userRepository) GetUsersByIDs(_ context.Context, ids entities.IDSet) ([]*entities.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.User, 0, ids.Len())
	for _, id := range ids.Sorted() {
		if user, ok := s.users[id]; ok {
			out = append(out, user.Clone())
		}
	}
	return out, nil
}
