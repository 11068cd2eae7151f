// Package services содержит реализации сервисов devserver.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"notesboard/internal/devserver/ports/services"
	"notesboard/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodGenerateToken = "GenerateToken"
	methodValidateToken = "ValidateToken"
	msgGeneratingToken  = "generating token"
	msgTokenGenerated   = "token generated successfully"
	msgValidatingToken  = "validating token"
	msgTokenValidated   = "token validated successfully"
	msgTokenExpired     = "token has expired"
	//nolint:gosec
	msgErrParsingToken = "error parsing token"
	errCtxGenerating   = "generating token"
	errCtxValidating   = "validating token"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// ServiceJWT реализует services.TokenService на HS256.
type ServiceJWT struct {
	secretKey []byte
	now       func() time.Time
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string) *ServiceJWT {
	return &ServiceJWT{
		secretKey: []byte(secretKey),
		now:       time.Now,
	}
}

// GenerateToken подписывает токен для subject со сроком жизни ttl.
func (s *ServiceJWT) GenerateToken(ctx context.Context, subject string, ttl time.Duration) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateToken),
		zap.String("subject", subject),
	)
	log.Debug(ctx, msgGeneratingToken)

	if len(s.secretKey) == 0 {
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGenerating, services.ErrGeneratingJWTToken)
	}
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("%s: %w: empty subject", errCtxGenerating, services.ErrGeneratingJWTToken)
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, "error signing token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w", errCtxGenerating, errors.Join(services.ErrGeneratingJWTToken, err))
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expires_at", expiresAt))
	return signed, expiresAt, nil
}

// ValidateToken проверяет подпись и срок действия токена и возвращает subject.
func (s *ServiceJWT) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))
	log.Debug(ctx, msgValidatingToken)

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return "", fmt.Errorf("%s: %w", errCtxValidating, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, msgErrParsingToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxValidating, services.ErrInvalidJWTToken)
	}

	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%s: %w", errCtxValidating, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("subject", claims.Subject))
	return claims.Subject, nil
}
