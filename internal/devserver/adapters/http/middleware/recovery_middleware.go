package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesboard/pkg/logger"
)

// LogPanic - сообщение о перехваченной панике обработчика.
const LogPanic = "handler panic recovered"

// NewRecoveryMiddleware превращает панику обработчика в 500 с телом
// {"detail": "Internal Server Error"}. Паника пишется в лог вместе со стеком
// и полями запроса.
func NewRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			requestCtx := RequestContext(c)
			logger.Log(requestCtx).Error(requestCtx, LogPanic,
				zap.Any("panic", recovered),
				zap.Stack("stack"))

			err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal Server Error"})
		}()

		return c.Next()
	}
}
