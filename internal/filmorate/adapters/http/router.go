// Package http содержит компоненты для HTTP сервера.
package http

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"filmorate/internal/filmorate/adapters/http/handlers"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/ports/api"
)

// Services - сервисы, которые обслуживает HTTP слой.
type Services struct {
	Films  api.FilmUseCase
	Users  api.UserUseCase
	Genres api.GenreUseCase
	Mpa    api.MpaUseCase
}

// NewApp создает fiber приложение с обработчиком ошибок домена.
func NewApp(readTimeout, writeTimeout time.Duration) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "filmorate",
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		ErrorHandler: handlers.ErrorHandler,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, svc Services) {
	filmHandler := handlers.NewFilmHandler(svc.Films)
	userHandler := handlers.NewUserHandler(svc.Users)
	referenceHandler := handlers.NewReferenceHandler(svc.Genres, svc.Mpa)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	films := app.Group("/films")
	films.Post("/", filmHandler.Create)
	films.Put("/", filmHandler.Update)
	films.Get("/", filmHandler.GetAll)
	films.Get("/popular", filmHandler.Popular)
	films.Get("/:id", filmHandler.GetByID)
	films.Delete("/:id", filmHandler.Delete)
	films.Put("/:id/like/:userId", filmHandler.AddLike)
	films.Delete("/:id/like/:userId", filmHandler.DeleteLike)

	users := app.Group("/users")
	users.Post("/", userHandler.Create)
	users.Put("/", userHandler.Update)
	users.Get("/", userHandler.GetAll)
	users.Get("/:id", userHandler.GetByID)
	users.Delete("/:id", userHandler.Delete)
	users.Put("/:id/friends/:friendId", userHandler.AddFriend)
	users.Delete("/:id/friends/:friendId", userHandler.DeleteFriend)
	users.Get("/:id/friends", userHandler.Friends)
	users.Get("/:id/friends/common/:otherId", userHandler.CommonFriends)

	app.Get("/genres", referenceHandler.Genres)
	app.Get("/genres/:id", referenceHandler.Genre)
	app.Get("/mpa", referenceHandler.MpaRatings)
	app.Get("/mpa/:id", referenceHandler.Mpa)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "route not found")
	})
}
