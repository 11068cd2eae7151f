// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// HeaderRequestID несет идентификатор запроса от клиента и обратно.
const HeaderRequestID = "X-Request-ID"

type localsKey int

const (
	localsRequestContext localsKey = iota
	localsSubject
)

// RequestContext возвращает контекст запроса с идентификатором запроса,
// если его положил NewLoggerMiddleware.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(localsRequestContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

// Subject возвращает subject проверенного токена или пустую строку.
func Subject(c fiber.Ctx) string {
	subject, _ := c.Locals(localsSubject).(string)
	return subject
}
