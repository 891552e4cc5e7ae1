package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "filmorate/internal/filmorate/adapters/http"
	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/adapters/http/handlers"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/adapters/memory"
	"filmorate/internal/filmorate/app"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := memory.NewStore()
	users := app.NewUserUseCase(store.Users())

	fiberApp := httpadapter.NewApp(time.Second, time.Second)
	httpadapter.SetupRouter(fiberApp, httpadapter.Services{
		Films:  app.NewFilmUseCase(store.Films(), store.Genres(), store.Mpa(), users),
		Users:  users,
		Genres: app.NewGenreUseCase(store.Genres()),
		Mpa:    app.NewMpaUseCase(store.Mpa()),
	})
	return fiberApp
}

func do(t *testing.T, fiberApp *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := fiberApp.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

const (
	userJSON = `{"email":"a@b.com","login":"abc","name":"","birthday":"1990-01-01"}`
	filmJSON = `{"name":"Film","description":"d","releaseDate":"2000-01-01","duration":100,` +
		`"mpa":{"id":1},"genres":[{"id":2},{"id":1},{"id":2}]}`
)

func TestUsersEndpoints(t *testing.T) {
	fiberApp := newTestApp(t)

	resp, raw := do(t, fiberApp, http.MethodPost, "/users", userJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	created := decode[dto.User](t, raw)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "abc", created.Name)
	assert.Equal(t, "1990-01-01", created.Birthday)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

	resp, _ = do(t, fiberApp, http.MethodPost, "/users", `{"email":"c@d.com","login":"cd","birthday":"1991-02-02"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, fiberApp, http.MethodPut, "/users/1/friends/2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = do(t, fiberApp, http.MethodGet, "/users/2/friends", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	friends := decode[[]dto.User](t, raw)
	require.Len(t, friends, 1)
	assert.Equal(t, int64(1), friends[0].ID)

	resp, raw = do(t, fiberApp, http.MethodGet, "/users/1/friends/common/2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))

	resp, _ = do(t, fiberApp, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw = do(t, fiberApp, http.MethodGet, "/users/2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.User](t, raw).Friends)
}

func TestFilmsEndpoints(t *testing.T) {
	fiberApp := newTestApp(t)

	resp, raw := do(t, fiberApp, http.MethodPost, "/films", filmJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	film := decode[dto.Film](t, raw)
	assert.Equal(t, "2000-01-01", film.ReleaseDate)
	require.Len(t, film.Genres, 2)
	assert.Equal(t, int64(1), film.Genres[0].ID)
	assert.Equal(t, "G", film.Mpa.Name)
	assert.Equal(t, []int64{}, film.Likes)

	resp, _ = do(t, fiberApp, http.MethodPost, "/users", userJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, fiberApp, http.MethodPut, "/films/1/like/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = do(t, fiberApp, http.MethodGet, "/films/popular?count=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	popular := decode[[]dto.Film](t, raw)
	require.Len(t, popular, 1)
	assert.Equal(t, []int64{1}, popular[0].Likes)

	resp, _ = do(t, fiberApp, http.MethodDelete, "/films/1/like/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = do(t, fiberApp, http.MethodDelete, "/films/1/like/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, decode[handlers.ErrorResponse](t, raw).Error)

	resp, _ = do(t, fiberApp, http.MethodDelete, "/films/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, fiberApp, http.MethodGet, "/films/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestErrorMapping(t *testing.T) {
	fiberApp := newTestApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"malformed json", http.MethodPost, "/films", `{"name":`, http.StatusBadRequest},
		{"bad date format", http.MethodPost, "/users", `{"email":"a@b.com","login":"a","birthday":"01.01.1990"}`, http.StatusBadRequest},
		{"release date too early", http.MethodPost, "/films",
			`{"name":"old","releaseDate":"1895-12-27","duration":1,"mpa":{"id":1}}`, http.StatusBadRequest},
		{"missing mpa", http.MethodPost, "/films", `{"name":"f","releaseDate":"2000-01-01","duration":1}`, http.StatusBadRequest},
		{"unknown mpa", http.MethodPost, "/films",
			`{"name":"f","releaseDate":"2000-01-01","duration":1,"mpa":{"id":42}}`, http.StatusNotFound},
		{"update missing user", http.MethodPut, "/users",
			`{"id":9,"email":"a@b.com","login":"a","birthday":"1990-01-01"}`, http.StatusNotFound},
		{"bad path id", http.MethodGet, "/users/abc", "", http.StatusBadRequest},
		{"bad count", http.MethodGet, "/films/popular?count=x", "", http.StatusBadRequest},
		{"negative count", http.MethodGet, "/films/popular?count=-1", "", http.StatusBadRequest},
		{"self friendship", http.MethodPut, "/users/1/friends/1", "", http.StatusBadRequest},
		{"unknown genre id", http.MethodGet, "/genres/99", "", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := do(t, fiberApp, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, string(raw))
			assert.NotEmpty(t, decode[handlers.ErrorResponse](t, raw).Error)
		})
	}
}

func TestErrorBodyCarriesDomainMessage(t *testing.T) {
	fiberApp := newTestApp(t)

	resp, raw := do(t, fiberApp, http.MethodGet, "/genres/99", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	message := decode[handlers.ErrorResponse](t, raw).Error
	assert.True(t, strings.HasPrefix(message, "fetching genre:"), message)
	assert.Contains(t, message, "not found")
}

func TestReferenceEndpoints(t *testing.T) {
	fiberApp := newTestApp(t)

	resp, raw := do(t, fiberApp, http.MethodGet, "/genres", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.Genre](t, raw), 6)

	resp, raw = do(t, fiberApp, http.MethodGet, "/mpa", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.Mpa](t, raw), 5)

	resp, raw = do(t, fiberApp, http.MethodGet, "/mpa/3", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "PG-13", decode[dto.Mpa](t, raw).Name)
}

func TestRecoveryMiddleware(t *testing.T) {
	fiberApp := httpadapter.NewApp(time.Second, time.Second)
	fiberApp.Use(middleware.NewRequestIDMiddleware())
	fiberApp.Use(middleware.NewRecoveryMiddleware())
	fiberApp.Get("/panic", func(fiber.Ctx) error {
		panic("boom")
	})

	resp, raw := do(t, fiberApp, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(raw), "internal server error")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusInternalServerError, handlers.StatusFor(io.EOF))
	assert.Equal(t, fiber.StatusTeapot, handlers.StatusFor(fiber.NewError(fiber.StatusTeapot)))
}
