// Package services описывает интерфейсы сервисов devserver.
package services

import (
	"context"
	"errors"
	"time"
)

// Ошибки проверки токенов.
var (
	ErrInvalidJWTToken    = errors.New("invalid token")
	ErrExpiredJWTToken    = errors.New("token has expired")
	ErrGeneratingJWTToken = errors.New("failed to generate token")
)

// TokenService выпускает и проверяет bearer-токены.
type TokenService interface {
	GenerateToken(ctx context.Context, subject string, ttl time.Duration) (string, time.Time, error)
	ValidateToken(ctx context.Context, token string) (string, error)
}
