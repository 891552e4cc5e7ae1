// Package dto описывает JSON-представления сущностей filmorate.
package dto

import (
	"errors"
	"fmt"
	"time"

	"filmorate/internal/filmorate/domain/entities"
)

// ErrInvalidDate - дата не в формате YYYY-MM-DD.
var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// Ref - ссылка на справочную запись по id.
type Ref struct {
	ID int64 `json:"id"`
}

// Genre представляет жанр.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Mpa представляет рейтинг MPA.
type Mpa struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FilmRequest содержит данные для создания или обновления фильма.
type FilmRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ReleaseDate string `json:"releaseDate"`
	Duration    int    `json:"duration"`
	Mpa         *Ref   `json:"mpa"`
	Genres      []Ref  `json:"genres"`
}

// Film представляет фильм в ответе.
type Film struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ReleaseDate string  `json:"releaseDate"`
	Duration    int     `json:"duration"`
	Likes       []int64 `json:"likes"`
	Genres      []Genre `json:"genres"`
	Mpa         *Mpa    `json:"mpa"`
}

// UserRequest содержит данные для создания или обновления пользователя.
type UserRequest struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
}

// User представляет пользователя в ответе.
type User struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Login    string  `json:"login"`
	Name     string  `json:"name"`
	Birthday string  `json:"birthday"`
	Friends  []int64 `json:"friends"`
}

// ToEntity переводит запрос в сущность фильма.
func (r *FilmRequest) ToEntity() (*entities.Film, error) {
	releaseDate, err := parseDate(r.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("releaseDate: %w", err)
	}

	film := &entities.Film{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ReleaseDate: releaseDate,
		Duration:    r.Duration,
		Likes:       entities.NewIDSet(),
		Genres:      make([]entities.Genre, 0, len(r.Genres)),
	}
	if r.Mpa != nil {
		film.Mpa = &entities.MpaRating{ID: r.Mpa.ID}
	}
	for _, g := range r.Genres {
		film.Genres = append(film.Genres, entities.Genre{ID: g.ID})
	}
	return film, nil
}

// ToEntity переводит запрос в сущность пользователя.
func (r *UserRequest) ToEntity() (*entities.User, error) {
	birthday, err := parseDate(r.Birthday)
	if err != nil {
		return nil, fmt.Errorf("birthday: %w", err)
	}

	return &entities.User{
		ID:       r.ID,
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: birthday,
		Friends:  entities.NewIDSet(),
	}, nil
}

// FromFilm строит ответ по сущности фильма.
func FromFilm(f *entities.Film) *Film {
	out := &Film{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: formatDate(f.ReleaseDate),
		Duration:    f.Duration,
		Likes:       ids(f.Likes),
		Genres:      make([]Genre, 0, len(f.Genres)),
	}
	for _, g := range f.Genres {
		out.Genres = append(out.Genres, Genre{ID: g.ID, Name: g.Name})
	}
	if f.Mpa != nil {
		out.Mpa = FromMpa(f.Mpa)
	}
	return out
}

// FromFilms строит ответ по списку фильмов.
func FromFilms(films []*entities.Film) []*Film {
	out := make([]*Film, 0, len(films))
	for _, f := range films {
		out = append(out, FromFilm(f))
	}
	return out
}

// FromUser строит ответ по сущности пользователя.
func FromUser(u *entities.User) *User {
	return &User{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: formatDate(u.Birthday),
		Friends:  ids(u.Friends),
	}
}

// FromUsers строит ответ по списку пользователей.
func FromUsers(users []*entities.User) []*User {
	out := make([]*User, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}

// FromGenres строит ответ по списку жанров.
func FromGenres(genres []*entities.Genre) []Genre {
	out := make([]Genre, 0, len(genres))
	for _, g := range genres {
		out = append(out, Genre{ID: g.ID, Name: g.Name})
	}
	return out
}

// FromMpa строит ответ по рейтингу.
func FromMpa(m *entities.MpaRating) *Mpa {
	return &Mpa{ID: m.ID, Name: m.Name, Description: m.Description}
}

// FromMpas строит ответ по списку рейтингов.
func FromMpas(ratings []*entities.MpaRating) []*Mpa {
	out := make([]*Mpa, 0, len(ratings))
	for _, m := range ratings {
		out = append(out, FromMpa(m))
	}
	return out
}

func ids(s entities.IDSet) []int64 {
	out := s.Sorted()
	if out == nil {
		return []int64{}
	}
	return out
}

// parseDate допускает пустую строку: обязательность проверяет валидация сущности.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(entities.DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entities.DateLayout)
}
