package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/app"
	"filmorate/internal/filmorate/domain/entities"
)

func sampleUser(id int64, friends ...int64) *entities.User {
	return &entities.User{
		ID:       id,
		Email:    "user@example.com",
		Login:    "login",
		Birthday: time.Date(1995, time.October, 10, 0, 0, 0, 0, time.UTC),
		Friends:  entities.NewIDSet(friends...),
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("blank name replaced by login", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Name == "login"
		})).Return(sampleUser(1), nil)

		_, err := app.NewUserUseCase(repo).CreateUser(ctx, sampleUser(0))
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("submitted friends are not stored", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Friends != nil && u.Friends.Len() == 0
		})).Return(sampleUser(2), nil)

		in := sampleUser(0)
		in.Friends = entities.NewIDSet(1)

		_, err := app.NewUserUseCase(repo).CreateUser(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 1, in.Friends.Len())
		repo.AssertExpectations(t)
	})

	t.Run("invalid user never reaches storage", func(t *testing.T) {
		repo := new(mockUserRepository)
		u := sampleUser(0)
		u.Login = "with space"

		_, err := app.NewUserUseCase(repo).CreateUser(ctx, u)
		require.ErrorIs(t, err, entities.ErrValidation)
		repo.AssertExpectations(t)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("missing user", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("Find", mock.Anything, int64(3)).Return(nil, entities.ErrUserNotFound)

		_, err := app.NewUserUseCase(repo).UpdateUser(ctx, sampleUser(3))
		require.ErrorIs(t, err, entities.ErrUserNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("friend set comes from storage", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("Find", mock.Anything, int64(3)).Return(sampleUser(3, 4), nil)
		repo.On("Amend", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Friends.Has(4) && !u.Friends.Has(9) && u.Name == "login"
		})).Return(sampleUser(3, 4), nil)

		_, err := app.NewUserUseCase(repo).UpdateUser(ctx, sampleUser(3, 9))
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestAddFriends(t *testing.T) {
	ctx := context.Background()

	t.Run("self friendship", func(t *testing.T) {
		repo := new(mockUserRepository)

		err := app.NewUserUseCase(repo).AddFriends(ctx, 1, 1)
		require.ErrorIs(t, err, entities.ErrValidation)
		repo.AssertExpectations(t)
	})

	t.Run("missing friend", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("Find", mock.Anything, int64(1)).Return(sampleUser(1), nil)
		repo.On("Find", mock.Anything, int64(2)).Return(nil, entities.ErrUserNotFound)

		err := app.NewUserUseCase(repo).AddFriends(ctx, 1, 2)
		require.ErrorIs(t, err, entities.ErrNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("both halves in one call", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("Find", mock.Anything, int64(1)).Return(sampleUser(1), nil)
		repo.On("Find", mock.Anything, int64(2)).Return(sampleUser(2), nil)
		repo.On("AmendAll", mock.Anything, mock.MatchedBy(func(users []*entities.User) bool {
			return len(users) == 2 && users[0].Friends.Has(2) && users[1].Friends.Has(1)
		})).Return([]*entities.User{sampleUser(1, 2), sampleUser(2, 1)}, nil)

		require.NoError(t, app.NewUserUseCase(repo).AddFriends(ctx, 1, 2))
		repo.AssertExpectations(t)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("Find", mock.Anything, int64(1)).Return(sampleUser(1), nil)
		repo.On("Find", mock.Anything, int64(2)).Return(sampleUser(2), nil)
		repo.On("AmendAll", mock.Anything, mock.Anything).Return(nil, errDatabaseOperation)

		err := app.NewUserUseCase(repo).AddFriends(ctx, 1, 2)
		require.ErrorIs(t, err, errDatabaseOperation)
		repo.AssertExpectations(t)
	})
}

func TestDeleteFriendsIsLenient(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("Find", mock.Anything, int64(1)).Return(sampleUser(1), nil)
	repo.On("Find", mock.Anything, int64(2)).Return(sampleUser(2), nil)
	repo.On("AmendAll", mock.Anything, mock.Anything).Return([]*entities.User{sampleUser(1), sampleUser(2)}, nil)

	require.NoError(t, app.NewUserUseCase(repo).DeleteFriends(context.Background(), 1, 2))
	repo.AssertExpectations(t)
}

func TestGetMutualFriends(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("Find", mock.Anything, int64(1)).Return(sampleUser(1, 3, 4, 5), nil)
	repo.On("Find", mock.Anything, int64(2)).Return(sampleUser(2, 4, 5, 6), nil)
	repo.On("GetUsersByIDs", mock.Anything, entities.NewIDSet(4, 5)).
		Return([]*entities.User{sampleUser(4), sampleUser(5)}, nil)

	mutual, err := app.NewUserUseCase(repo).GetMutualFriends(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, mutual, 2)
	repo.AssertExpectations(t)
}

func TestReferenceUseCases(t *testing.T) {
	ctx := context.Background()

	genres := new(mockGenreRepository)
	genres.On("Find", mock.Anything, int64(7)).Return(nil, entities.ErrGenreNotFound)
	genres.On("FindAll", mock.Anything).Return(nil, errDatabaseOperation)

	_, err := app.NewGenreUseCase(genres).GetGenreByID(ctx, 7)
	require.ErrorIs(t, err, entities.ErrNotFound)
	_, err = app.NewGenreUseCase(genres).GetAllGenres(ctx)
	require.ErrorIs(t, err, errDatabaseOperation)

	ratings := new(mockMpaRepository)
	ratings.On("Find", mock.Anything, int64(1)).Return(&entities.MpaRating{ID: 1, Name: "G"}, nil)

	mpa, err := app.NewMpaUseCase(ratings).GetMpaByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "G", mpa.Name)

	genres.AssertExpectations(t)
	ratings.AssertExpectations(t)
}
