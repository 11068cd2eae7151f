package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"notesboard/pkg/metrics"
)

// NewMetricsMiddleware считает запросы и их длительность по шаблону маршрута.
func NewMetricsMiddleware(m *metrics.ServerMetrics) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		route := ctx.Route().Path
		method := ctx.Method()
		m.RequestCounter.WithLabelValues(method, route, strconv.Itoa(ctx.Response().StatusCode())).Inc()
		m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return err
	}
}
