package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesboard/internal/devserver/ports/services"
	"notesboard/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid token"
	ErrorTokenExpired       = "token has expired"
)

const bearerPrefix = "Bearer "

// NewAuthMiddleware создает промежуточное ПО, требующее валидный bearer-токен.
func NewAuthMiddleware(tokens services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return unauthorized(ctx, ErrorNoAuthHeader)
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return unauthorized(ctx, ErrorInvalidTokenFormat)
		}

		subject, err := tokens.ValidateToken(requestCtx, strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			if errors.Is(err, services.ErrExpiredJWTToken) {
				return unauthorized(ctx, ErrorTokenExpired)
			}
			return unauthorized(ctx, ErrorInvalidToken)
		}

		ctx.Locals(localsSubject, subject)

		return ctx.Next()
	}
}

func unauthorized(ctx fiber.Ctx, detail string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": detail,
	})
}
