// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// LocalsContextKey - ключ Locals, под которым хранится контекст запроса.
const LocalsContextKey = "requestContext"

// RequestContext возвращает контекст запроса, подготовленный RequestID.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(LocalsContextKey).(context.Context); ok {
		return ctx
	}
	var base context.Context = c.Context()
	return base
}
