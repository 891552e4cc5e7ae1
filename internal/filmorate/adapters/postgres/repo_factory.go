package postgres

import (
	"filmorate/internal/filmorate/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	filmRepo  repositories.FilmRepository
	userRepo  repositories.UserRepository
	genreRepo repositories.GenreRepository
	mpaRepo   repositories.MpaRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		filmRepo:  NewFilmRepository(pool),
		userRepo:  NewUserRepository(pool),
		genreRepo: NewGenreRepository(pool),
		mpaRepo:   NewMpaRepository(pool),
	}
}

// Films возвращает репозиторий фильмов.
func (f *RepositoryFactory) Films() repositories.FilmRepository {
	return f.filmRepo
}

// Users возвращает репозиторий пользователей.
func (f *RepositoryFactory) Users() repositories.UserRepository {
	return f.userRepo
}

// Genres возвращает справочник жанров.
func (f *RepositoryFactory) Genres() repositories.GenreRepository {
	return f.genreRepo
}

// Mpa возвращает справочник рейтингов MPA.
func (f *RepositoryFactory) Mpa() repositories.MpaRepository {
	return f.mpaRepo
}

var _ repositories.Factory = (*RepositoryFactory)(nil)
