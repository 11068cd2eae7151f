// Package http содержит компоненты HTTP сервера devserver.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notesboard/internal/devserver/adapters/http/middleware"
	"notesboard/internal/devserver/adapters/http/notes"
	"notesboard/internal/devserver/ports/services"
	"notesboard/pkg/metrics"
)

// RouterConfig собирает зависимости маршрутизатора.
type RouterConfig struct {
	Notes notes.NoteService
	// Tokens включает проверку bearer-токенов на /api. Nil - без проверки.
	Tokens services.TokenService
	// Registry, если задан, получает серверные метрики и отдается на /metrics.
	Registry *prometheus.Registry
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, cfg RouterConfig) {
	notesHandler := notes.NewHandler(cfg.Notes)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	if cfg.Registry != nil {
		app.Use(middleware.NewMetricsMiddleware(metrics.NewServerMetrics(cfg.Registry)))
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	if cfg.Tokens != nil {
		api.Use(middleware.NewAuthMiddleware(cfg.Tokens))
	}

	api.Get("/notes", notesHandler.List)
	api.Get("/notes/:id", notesHandler.Get)
	api.Post("/notes", notesHandler.Create)
	api.Patch("/notes/:id", notesHandler.Update)
	api.Delete("/notes/:id", notesHandler.Delete)

	// Обработчик для несуществующих маршрутов.
	app.Use(fiber.Handler(notes.NotFound))
}
