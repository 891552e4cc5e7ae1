package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/app"
	"filmorate/internal/filmorate/domain/entities"
)

func TestGenreUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("get all", func(t *testing.T) {
		repo := new(mockGenreRepository)
		genres := []*entities.Genre{{ID: 1, Name: "Комедия"}, {ID: 2, Name: "Драма"}}
		repo.On("FindAll", mock.Anything).Return(genres, nil)

		got, err := app.NewGenreUseCase(repo).GetAllGenres(ctx)
		require.NoError(t, err)
		assert.Equal(t, genres, got)
		repo.AssertExpectations(t)
	})

	t.Run("get all database error", func(t *testing.T) {
		repo := new(mockGenreRepository)
		repo.On("FindAll", mock.Anything).Return(nil, errDatabaseOperation)

		got, err := app.NewGenreUseCase(repo).GetAllGenres(ctx)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, errDatabaseOperation)
	})

	t.Run("get by id not found", func(t *testing.T) {
		repo := new(mockGenreRepository)
		repo.On("Find", mock.Anything, int64(99)).Return(nil, entities.ErrGenreNotFound)

		got, err := app.NewGenreUseCase(repo).GetGenreByID(ctx, 99)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestMpaUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("get by id", func(t *testing.T) {
		repo := new(mockMpaRepository)
		repo.On("Find", mock.Anything, int64(3)).Return(&entities.MpaRating{ID: 3, Name: "PG-13"}, nil)

		got, err := app.NewMpaUseCase(repo).GetMpaByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "PG-13", got.Name)
		repo.AssertExpectations(t)
	})

	t.Run("get by id not found", func(t *testing.T) {
		repo := new(mockMpaRepository)
		repo.On("Find", mock.Anything, int64(9)).Return(nil, entities.ErrMpaNotFound)

		_, err := app.NewMpaUseCase(repo).GetMpaByID(ctx, 9)
		assert.ErrorIs(t, err, entities.ErrMpaNotFound)
	})

	t.Run("get all database error", func(t *testing.T) {
		repo := new(mockMpaRepository)
		repo.On("FindAll", mock.Anything).Return(nil, errDatabaseOperation)

		_, err := app.NewMpaUseCase(repo).GetAllMpa(ctx)
		assert.ErrorIs(t, err, errDatabaseOperation)
	})
}
