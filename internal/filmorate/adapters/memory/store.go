// Package memory реализует хранилище filmorate в памяти процесса.
package memory

import (
	"maps"
	"slices"
	"sync"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

// Store владеет всеми данными и счетчиками идентификаторов.
// Один мьютекс защищает и фильмы, и пользователей: удаление пользователя
// затрагивает лайки фильмов.
type Store struct {
	mu sync.RWMutex

	films      map[int64]*entities.Film
	users      map[int64]*entities.User
	nextFilmID int64
	nextUserID int64

	genres map[int64]entities.Genre
	mpa    map[int64]entities.MpaRating
}

// NewStore создает пустое хранилище со стандартным справочником жанров и рейтингов.
func NewStore() *Store {
	s := &Store{
		films:      make(map[int64]*entities.Film),
		users:      make(map[int64]*entities.User),
		nextFilmID: 1,
		nextUserID: 1,
		genres:     make(map[int64]entities.Genre, len(DefaultGenres)),
		mpa:        make(map[int64]entities.MpaRating, len(DefaultMpaRatings)),
	}
	for _, g := range DefaultGenres {
		s.genres[g.ID] = g
	}
	for _, m := range DefaultMpaRatings {
		s.mpa[m.ID] = m
	}
	return s
}

// Films возвращает репозиторий фильмов.
func (s *Store) Films() repositories.FilmRepository { return &filmRepository{store: s} }

// Users возвращает репозиторий пользователей.
func (s *Store) Users() repositories.UserRepository { return &userRepository{store: s} }

// Genres возвращает справочник жанров.
func (s *Store) Genres() repositories.GenreRepository { return &genreRepository{store: s} }

// Mpa возвращает справочник рейтингов MPA.
func (s *Store) Mpa() repositories.MpaRepository { return &mpaRepository{store: s} }

var _ repositories.Factory = (*Store)(nil)

func sortedKeys[V any](m map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(m))
}

// checkUsers проверяет, что все id из набора существуют. Вызывается под блокировкой.
func (s *Store) checkUsers(ids entities.IDSet) error {
	for id := range ids {
		if _, ok := s.users[id]; !ok {
			return entities.ErrUserNotFound
		}
	}
	return nil
}

// resolveFilmRefs заменяет заглушки жанров и рейтинга записями справочника.
// Вызывается под блокировкой.
func (s *Store) resolveFilmRefs(film *entities.Film) error {
	if film.Mpa == nil {
		return entities.ErrMpaRequired
	}
	mpa, ok := s.mpa[film.Mpa.ID]
	if !ok {
		return entities.ErrMpaNotFound
	}
	film.Mpa = &mpa

	genres := make([]entities.Genre, 0, len(film.Genres))
	for _, id := range film.GenreIDs() {
		g, ok := s.genres[id]
		if !ok {
			return entities.ErrGenreNotFound
		}
		genres = append(genres, g)
	}
	film.Genres = genres
	film.SortGenres()

	return s.checkUsers(film.Likes)
}
