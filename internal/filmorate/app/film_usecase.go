package app

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/api"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

// DefaultPopularCount - размер выборки популярных фильмов по умолчанию.
const DefaultPopularCount = 10

const (
	methodCreateFilm      = "CreateFilm"
	methodUpdateFilm      = "UpdateFilm"
	methodGetAllFilms     = "GetAllFilms"
	methodGetFilmByID     = "GetFilmByID"
	methodDeleteFilm      = "DeleteFilm"
	methodAddLike         = "AddLike"
	methodDeleteLike      = "DeleteLike"
	methodGetPopularFilms = "GetPopularFilms"

	msgCreatingFilm   = "creating film"
	msgFilmCreated    = "film successfully created"
	msgUpdatingFilm   = "updating film"
	msgFilmUpdated    = "film successfully updated"
	msgFilmDeleted    = "film successfully deleted"
	msgLikeAdded      = "like added"
	msgLikeDeleted    = "like deleted"
	msgInvalidFilm    = "film rejected by validation"
	msgErrStoringFilm = "failed to store film"

	errCtxValidatingFilm = "validating film"
	errCtxCreatingFilm   = "creating film"
	errCtxUpdatingFilm   = "updating film"
	errCtxFetchingFilm   = "fetching film"
	errCtxFetchingFilms  = "fetching films"
	errCtxDeletingFilm   = "deleting film"
	errCtxResolvingMpa   = "resolving mpa rating"
	errCtxResolvingGenre = "resolving genre"
	errCtxCheckingUser   = "checking user"
	errCtxStoringLike    = "storing like"
)

// FilmUseCaseImpl реализует интерфейс FilmUseCase.
type FilmUseCaseImpl struct {
	filmRepo  repositories.FilmRepository
	genreRepo repositories.GenreRepository
	mpaRepo   repositories.MpaRepository
	users     api.UserUseCase
}

// NewFilmUseCase создает новый экземпляр сервиса фильмов.
func NewFilmUseCase(
	filmRepo repositories.FilmRepository,
	genreRepo repositories.GenreRepository,
	mpaRepo repositories.MpaRepository,
	users api.UserUseCase,
) api.FilmUseCase {
	return &FilmUseCaseImpl{
		filmRepo:  filmRepo,
		genreRepo: genreRepo,
		mpaRepo:   mpaRepo,
		users:     users,
	}
}

// CreateFilm проверяет фильм, разрешает справочные ссылки и сохраняет его.
func (s *FilmUseCaseImpl) CreateFilm(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateFilm))
	log.Debug(ctx, msgCreatingFilm)

	prepared, err := s.prepareFilm(ctx, film)
	if err != nil {
		log.Debug(ctx, msgInvalidFilm, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingFilm, err)
	}

	created, err := s.filmRepo.Create(ctx, prepared)
	if err != nil {
		log.Error(ctx, msgErrStoringFilm, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingFilm, err)
	}

	log.Info(ctx, msgFilmCreated, zap.Int64("film_id", created.ID))
	return created, nil
}

// UpdateFilm проходит ту же проверку, что и CreateFilm. Лайки не меняются:
// они правятся только через AddLike и DeleteLike.
func (s *FilmUseCaseImpl) UpdateFilm(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateFilm))
	log.Debug(ctx, msgUpdatingFilm)

	prepared, err := s.prepareFilm(ctx, film)
	if err != nil {
		log.Debug(ctx, msgInvalidFilm, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingFilm, err)
	}

	stored, err := s.filmRepo.Find(ctx, prepared.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingFilm, err)
	}
	prepared.Likes = stored.Likes

	updated, err := s.filmRepo.Amend(ctx, prepared)
	if err != nil {
		log.Error(ctx, msgErrStoringFilm, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingFilm, err)
	}

	log.Info(ctx, msgFilmUpdated, zap.Int64("film_id", updated.ID))
	return updated, nil
}

// GetAllFilms возвращает все фильмы по возрастанию id.
func (s *FilmUseCaseImpl) GetAllFilms(ctx context.Context) ([]*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetAllFilms))

	films, err := s.filmRepo.FindAll(ctx)
	if err != nil {
		log.Error(ctx, errCtxFetchingFilms, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingFilms, err)
	}
	return films, nil
}

// GetFilmByID возвращает фильм по id.
func (s *FilmUseCaseImpl) GetFilmByID(ctx context.Context, id int64) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetFilmByID), zap.Int64("film_id", id))

	film, err := s.filmRepo.Find(ctx, id)
	if err != nil {
		log.Debug(ctx, errCtxFetchingFilm, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingFilm, err)
	}
	return film, nil
}

// DeleteFilm удаляет фильм вместе с его жанрами и лайками.
func (s *FilmUseCaseImpl) DeleteFilm(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteFilm), zap.Int64("film_id", id))

	if _, err := s.filmRepo.Find(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingFilm, err)
	}
	if err := s.filmRepo.Delete(ctx, id); err != nil {
		log.Error(ctx, errCtxDeletingFilm, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingFilm, err)
	}

	log.Info(ctx, msgFilmDeleted)
	return nil
}

// AddLike идемпотентен: повторный лайк ничего не меняет.
func (s *FilmUseCaseImpl) AddLike(ctx context.Context, filmID, userID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodAddLike),
		zap.Int64("film_id", filmID), zap.Int64("user_id", userID))

	film, err := s.filmRepo.Find(ctx, filmID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxFetchingFilm, err)
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}

	film.Likes.Add(userID)
	if _, err := s.filmRepo.Amend(ctx, film); err != nil {
		log.Error(ctx, errCtxStoringLike, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxStoringLike, err)
	}

	log.Info(ctx, msgLikeAdded)
	return nil
}

// DeleteLike возвращает NotFound, если пользователь не ставил лайк.
func (s *FilmUseCaseImpl) DeleteLike(ctx context.Context, filmID, userID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteLike),
		zap.Int64("film_id", filmID), zap.Int64("user_id", userID))

	film, err := s.filmRepo.Find(ctx, filmID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxFetchingFilm, err)
	}
	if !film.Likes.Remove(userID) {
		return entities.ErrLikeNotFound
	}

	if _, err := s.filmRepo.Amend(ctx, film); err != nil {
		log.Error(ctx, errCtxStoringLike, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxStoringLike, err)
	}

	log.Info(ctx, msgLikeDeleted)
	return nil
}

// GetPopularFilms сортирует фильмы по убыванию числа лайков, сохраняя
// порядок хранилища при равенстве.
func (s *FilmUseCaseImpl) GetPopularFilms(ctx context.Context, count *int) ([]*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetPopularFilms))

	limit := DefaultPopularCount
	if count != nil {
		limit = *count
	}
	if limit < 0 {
		return nil, entities.ErrInvalidCount
	}

	films, err := s.filmRepo.FindAll(ctx)
	if err != nil {
		log.Error(ctx, errCtxFetchingFilms, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingFilms, err)
	}

	slices.SortStableFunc(films, func(a, b *entities.Film) int {
		return b.Likes.Len() - a.Likes.Len()
	})

	return films[:min(limit, len(films))], nil
}

// prepareFilm возвращает копию фильма с разрешенными жанрами и рейтингом.
// Порядок проверок: форма, дата релиза, рейтинг, жанры.
func (s *FilmUseCaseImpl) prepareFilm(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	if err := film.Validate(); err != nil {
		return nil, err
	}
	if film.ReleasedBeforeCinema() {
		return nil, entities.ErrReleaseDateTooEarly
	}
	if film.Mpa == nil {
		return nil, entities.ErrMpaRequired
	}

	prepared := film.Clone()

	mpa, err := s.mpaRepo.Find(ctx, film.Mpa.ID)
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", errCtxResolvingMpa, film.Mpa.ID, err)
	}
	prepared.Mpa = mpa

	genres := make([]entities.Genre, 0, len(film.Genres))
	for _, id := range film.GenreIDs() {
		genre, err := s.genreRepo.Find(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", errCtxResolvingGenre, id, err)
		}
		genres = append(genres, *genre)
	}
	prepared.Genres = genres

	return prepared, nil
}
