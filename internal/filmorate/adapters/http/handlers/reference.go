package handlers

import (
	"github.com/gofiber/fiber/v3"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/ports/api"
)

// ReferenceHandler обрабатывает запросы к справочникам /genres и /mpa.
type ReferenceHandler struct {
	genres api.GenreUseCase
	mpa    api.MpaUseCase
}

// NewReferenceHandler создает обработчик справочников.
func NewReferenceHandler(genres api.GenreUseCase, mpa api.MpaUseCase) *ReferenceHandler {
	return &ReferenceHandler{genres: genres, mpa: mpa}
}

func (h *ReferenceHandler) Genres(c fiber.Ctx) error {
	genres, err := h.genres.GetAllGenres(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return sendJSON(c, fiber.StatusOK, dto.FromGenres(genres))
}

func (h *ReferenceHandler) Genre(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	genre, err := h.genres.GetGenreByID(middleware.RequestContext(c), id)
	if err != nil {
		return err
	}
	return sendJSON(c, fiber.StatusOK, dto.Genre{ID: genre.ID, Name: genre.Name})
}

func (h *ReferenceHandler) MpaRatings(c fiber.Ctx) error {
	ratings, err := h.mpa.GetAllMpa(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return sendJSON(c, fiber.StatusOK, dto.FromMpas(ratings))
}

func (h *ReferenceHandler) Mpa(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	mpa, err := h.mpa.GetMpaByID(middleware.RequestContext(c), id)
	if err != nil {
		return err
	}
	return sendJSON(c, fiber.StatusOK, dto.FromMpa(mpa))
}
