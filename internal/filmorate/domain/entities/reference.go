package entities

// Genre - жанр фильма. Справочные данные.
type Genre struct {
	ID   int64
	Name string
}

// MpaRating - возрастной рейтинг MPA. Справочные данные.
type MpaRating struct {
	ID          int64
	Name        string
	Description string
}
