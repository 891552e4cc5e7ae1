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
	errCtxFetchingGenres = "fetching genres"
	errCtxFetchingGenre  = "fetching genre"
	errCtxFetchingMpas   = "fetching mpa ratings"
	errCtxFetchingMpa    = "fetching mpa rating"
)

// GenreUseCaseImpl реализует интерфейс GenreUseCase.
type GenreUseCaseImpl struct {
	genreRepo repositories.GenreRepository
}

// NewGenreUseCase создает сервис справочника жанров.
func NewGenreUseCase(genreRepo repositories.GenreRepository) api.GenreUseCase {
	return &GenreUseCaseImpl{genreRepo: genreRepo}
}

func (s *GenreUseCaseImpl) GetAllGenres(ctx context.Context) ([]*entities.Genre, error) {
	genres, err := s.genreRepo.FindAll(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, errCtxFetchingGenres, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingGenres, err)
	}
	return genres, nil
}

func (s *GenreUseCaseImpl) GetGenreByID(ctx context.Context, id int64) (*entities.Genre, error) {
	genre, err := s.genreRepo.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingGenre, err)
	}
	return genre, nil
}

// MpaUseCaseImpl реализует интерфейс MpaUseCase.
type MpaUseCaseImpl struct {
	mpaRepo repositories.MpaRepository
}

// NewMpaUseCase создает сервис справочника рейтингов.
func NewMpaUseCase(mpaRepo repositories.MpaRepository) api.MpaUseCase {
	return &MpaUseCaseImpl{mpaRepo: mpaRepo}
}

func (s *MpaUseCaseImpl) GetAllMpa(ctx context.Context) ([]*entities.MpaRating, error) {
	ratings, err := s.mpaRepo.FindAll(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, errCtxFetchingMpas, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingMpas, err)
	}
	return ratings, nil
}

func (s *MpaUseCaseImpl) GetMpaByID(ctx context.Context, id int64) (*entities.MpaRating, error) {
	mpa, err := s.mpaRepo.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingMpa, err)
	}
	return mpa, nil
}
