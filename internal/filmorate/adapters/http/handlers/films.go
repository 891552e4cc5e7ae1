package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/api"
	"filmorate/pkg/logger"
)

// FilmHandler обрабатывает запросы /films.
type FilmHandler struct {
	films api.FilmUseCase
}

// NewFilmHandler создает новый экземпляр обработчика фильмов.
func NewFilmHandler(films api.FilmUseCase) *FilmHandler {
	return &FilmHandler{films: films}
}

func (h *FilmHandler) Create(c fiber.Ctx) error {
	return h.save(c, h.films.CreateFilm)
}

func (h *FilmHandler) Update(c fiber.Ctx) error {
	return h.save(c, h.films.UpdateFilm)
}

func (h *FilmHandler) save(c fiber.Ctx, op func(context.Context, *entities.Film) (*entities.Film, error)) error {
	ctx := middleware.RequestContext(c)

	var req dto.FilmRequest
	if err := c.Bind().Body(&req); err != nil {
		logger.Log(ctx).Debug(ctx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ErrMsgInvalidRequestBody, nil)
	}

	film, err := req.ToEntity()
	if err != nil {
		return badRequest(ErrMsgInvalidRequestBody, err)
	}

	saved, err := op(ctx, film)
	if err != nil {
		return err
	}
	return sendJSON(c, fiber.StatusOK, dto.FromFilm(saved))
}

func (h *FilmHandler) GetAll(c fiber.Ctx) error {
	films, err := h.films.GetAllFilms(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return sendJSON(c, fiber.StatusOK, dto.FromFilms(films))
}

func (h *FilmHandler) GetByID(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	film, err := h.films.GetFilmByID(middleware.RequestContext(c), id)
	if err != nil {
		return err
	}
	return sendJSON(c, fiber.StatusOK, dto.FromFilm(film))
}

func (h *FilmHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.films.DeleteFilm(middleware.RequestContext(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FilmHandler) AddLike(c fiber.Ctx) error {
	filmID, userID, err := likePath(c)
	if err != nil {
		return err
	}

	if err := h.films.AddLike(middleware.RequestContext(c), filmID, userID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *FilmHandler) DeleteLike(c fiber.Ctx) error {
	filmID, userID, err := likePath(c)
	if err != nil {
		return err
	}

	if err := h.films.DeleteLike(middleware.RequestContext(c), filmID, userID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

// Popular отдает популярные фильмы. Без параметра count возвращается 10 фильмов.
func (h *FilmHandler) Popular(c fiber.Ctx) error {
	var count *int
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ErrMsgInvalidCount, nil)
		}
		count = &n
	}

	films, err := h.films.GetPopularFilms(middleware.RequestContext(c), count)
	if err != nil {
		return err
	}
	return sendJSON(c, fiber.StatusOK, dto.FromFilms(films))
}

func likePath(c fiber.Ctx) (int64, int64, error) {
	filmID, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return 0, 0, err
	}
	return filmID, userID, nil
}
