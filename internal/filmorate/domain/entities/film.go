// Package entities defines the domain entities for the filmorate service.
package entities

import (
	"slices"
	"time"

	"filmorate/pkg/validation"
)

// DateLayout - формат дат в API и в логах.
const DateLayout = "2006-01-02"

// CinemaBirthday - самая ранняя допустимая дата релиза.
var CinemaBirthday = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// MaxDescriptionLength - ограничение длины описания в символах.
const MaxDescriptionLength = 200

// Film представляет фильм вместе с его связями.
type Film struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name" validate:"notblank"`
	Description string     `json:"description" validate:"max=200"`
	ReleaseDate time.Time  `json:"releaseDate" validate:"required"`
	Duration    int        `json:"duration" validate:"gt=0"`
	Likes       IDSet      `json:"likes"`
	Genres      []Genre    `json:"genres"`
	Mpa         *MpaRating `json:"mpa"`
}

// Validate проверяет форму полей фильма.
func (f *Film) Validate() error {
	if f == nil {
		return ErrNilEntity
	}
	if err := validation.Struct(f); err != nil {
		return Validation(err)
	}
	return nil
}

// ReleasedBeforeCinema сообщает, что дата релиза раньше 28.12.1895.
func (f *Film) ReleasedBeforeCinema() bool {
	return f.ReleaseDate.Before(CinemaBirthday)
}

// GenreIDs возвращает идентификаторы жанров без повторов в исходном порядке.
func (f *Film) GenreIDs() []int64 {
	seen := make(IDSet, len(f.Genres))
	ids := make([]int64, 0, len(f.Genres))
	for _, g := range f.Genres {
		if seen.Add(g.ID) {
			ids = append(ids, g.ID)
		}
	}
	return ids
}

// Clone возвращает глубокую копию фильма.
func (f *Film) Clone() *Film {
	if f == nil {
		return nil
	}
	out := *f
	out.Likes = f.Likes.Clone()
	out.Genres = slices.Clone(f.Genres)
	if out.Genres == nil {
		out.Genres = []Genre{}
	}
	if f.Mpa != nil {
		mpa := *f.Mpa
		out.Mpa = &mpa
	}
	return &out
}

// SortGenres упорядочивает жанры по id.
func (f *Film) SortGenres() {
	slices.SortFunc(f.Genres, func(a, b Genre) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
}
