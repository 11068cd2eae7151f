// Package config содержит конфигурацию локального сервера заметок.
package config

import (
	"context"

	"go.uber.org/zap"

	pkgconfig "notesboard/pkg/config"
	"notesboard/pkg/logger"
)

const (
	serviceName     = "devserver"
	LogConfigLoaded = "devserver configuration"
)

// Config представляет полную конфигурацию devserver.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из файла path или из окружения.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName, path)
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.Bool("auth_enabled", cfg.JWT.Enabled()),
		zap.String("log_level", cfg.Logging.Level),
		zap.Duration("shutdown_timeout", cfg.Shutdown.GetTimeout()))

	return cfg, nil
}
