package middleware

import (
	"github.com/gofiber/fiber/v3"

	"filmorate/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware кладет в контекст запроса идентификатор и логгер с ним.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := logger.NewRequestIDContext(RequestContext(c), c.Get(HeaderRequestID))
		requestID, _ := logger.GetRequestID(ctx)

		ctx = logger.NewContext(ctx, logger.Log(ctx).WithRequestID(ctx))
		c.Locals(LocalsContextKey, ctx)
		c.Set(HeaderRequestID, requestID)

		return c.Next()
	}
}
