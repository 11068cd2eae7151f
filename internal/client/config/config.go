// Package config содержит конфигурацию клиента заметок.
package config

import (
	"context"
	"time"

	"go.uber.org/zap"

	"notesboard/internal/client/domain/entities"
	pkgconfig "notesboard/pkg/config"
	"notesboard/pkg/logger"
)

const (
	serviceName     = "notes-client"
	LogConfigLoaded = "client configuration"
)

// Config представляет полную конфигурацию клиента.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
	Form    FormConfig    `yaml:"form"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// APIConfig описывает подключение к серверу заметок.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"NOTES_API_BASE_URL" env-default:"http://localhost:8000/api"`
	Page    int           `yaml:"page" env:"NOTES_API_PAGE" env-default:"1"`
	Limit   int           `yaml:"limit" env:"NOTES_API_LIMIT" env-default:"10"`
	Timeout time.Duration `yaml:"timeout" env:"NOTES_API_TIMEOUT" env-default:"0s"`
	Token   string        `yaml:"token" env:"NOTES_API_TOKEN"`
}

// PageCursor возвращает курсор пагинации из конфигурации.
func (c *APIConfig) PageCursor() entities.Page {
	return entities.Page{Page: c.Page, Limit: c.Limit}.Normalize()
}

// LoggingConfig представляет конфигурацию логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTES_LOGGER_LEVEL" env-default:"warn"`
	Mode  string `yaml:"mode" env:"NOTES_LOGGER_MODE" env-default:"production"`
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	return logger.ParseEnvironment(c.Mode)
}

// FormConfig управляет поведением форм.
type FormConfig struct {
	KeepOpenOnError bool `yaml:"keep_open_on_error" env:"NOTES_FORM_KEEP_OPEN_ON_ERROR" env-default:"false"`
}

// MetricsConfig включает HTTP-эндпоинт с метриками клиента. Пустой адрес - выключено.
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"NOTES_METRICS_ADDR"`
}

// Load загружает конфигурацию из файла path или из окружения.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName, path)
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Debug(ctx, LogConfigLoaded,
		zap.String("base_url", cfg.API.BaseURL),
		zap.Int("page", cfg.API.Page),
		zap.Int("limit", cfg.API.Limit),
		zap.Duration("timeout", cfg.API.Timeout),
		zap.Bool("token_set", cfg.API.Token != ""),
		zap.Bool("keep_open_on_error", cfg.Form.KeepOpenOnError))

	return cfg, nil
}
