// Package handlers содержит HTTP-обработчики filmorate.
package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/domain/entities"
	"filmorate/pkg/logger"
)

const (
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidPathID      = "invalid path parameter"
	ErrMsgInvalidCount       = "count must be an integer"
	ErrMsgInternal           = "internal server error"
)

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor сопоставляет ошибке домена HTTP-статус.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, entities.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, entities.ErrNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler - обработчик ошибок fiber. Тексты внутренних ошибок клиенту не отдаются.
func ErrorHandler(c fiber.Ctx, err error) error {
	status := StatusFor(err)

	message := err.Error()
	var fiberErr *fiber.Error
	switch {
	case status == fiber.StatusInternalServerError:
		message = ErrMsgInternal
		ctx := middleware.RequestContext(c)
		logger.Log(ctx).Error(ctx, "unhandled error", zap.Error(err))
	case errors.As(err, &fiberErr):
		message = fiberErr.Message
	}

	if sendErr := c.Status(status).JSON(ErrorResponse{Error: message}); sendErr != nil {
		return fmt.Errorf("error sending error response: %w", sendErr)
	}
	return nil
}

func badRequest(message string, err error) error {
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, message)
	}
	return fiber.NewError(fiber.StatusBadRequest, message+": "+err.Error())
}

func pathID(c fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, badRequest(ErrMsgInvalidPathID+" "+name, nil)
	}
	return id, nil
}

func sendJSON(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
