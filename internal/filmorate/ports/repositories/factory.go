package repositories

// Factory собирает все репозитории одного бэкенда.
type Factory interface {
	Films() FilmRepository
	Users() UserRepository
	Genres() GenreRepository
	Mpa() MpaRepository
}
