package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"filmorate/internal/filmorate/domain/entities"
)

type mockFilmRepository struct {
	mock.Mock
}

func (m *mockFilmRepository) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	args := m.Called(ctx, film)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Film), args.Error(1)
}

func (m *mockFilmRepository) Amend(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	args := m.Called(ctx, film)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Film), args.Error(1)
}

func (m *mockFilmRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockFilmRepository) Find(ctx context.Context, id int64) (*entities.Film, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Film), args.Error(1)
}

func (m *mockFilmRepository) FindAll(ctx context.Context) ([]*entities.Film, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Film), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Amend(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) AmendAll(ctx context.Context, users ...*entities.User) ([]*entities.User, error) {
	args := m.Called(ctx, users)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepository) Find(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockUserRepository) GetUsersByIDs(ctx context.Context, ids entities.IDSet) ([]*entities.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

type mockGenreRepository struct {
	mock.Mock
}

func (m *mockGenreRepository) FindAll(ctx context.Context) ([]*entities.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Genre), args.Error(1)
}

func (m *mockGenreRepository) Find(ctx context.Context, id int64) (*entities.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Genre), args.Error(1)
}

type mockMpaRepository struct {
	mock.Mock
}

func (m *mockMpaRepository) FindAll(ctx context.Context) ([]*entities.MpaRating, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MpaRating), args.Error(1)
}

func (m *mockMpaRepository) Find(ctx context.Context, id int64) (*entities.MpaRating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MpaRating), args.Error(1)
}
