// Package notify показывает пользователю кратковременные уведомления.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"notesboard/pkg/logger"
)

// Level - тип уведомления.
type Level string

// Поддерживаемые типы уведомлений.
const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification - одно уведомление.
type Notification struct {
	Level   Level
	Message string
}

// Notifier доставляет уведомления пользователю.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Success отправляет уведомление об успехе.
func Success(ctx context.Context, n Notifier, msg string) {
	n.Notify(ctx, Notification{Level: LevelSuccess, Message: msg})
}

// Error отправляет уведомление об ошибке.
func Error(ctx context.Context, n Notifier, msg string) {
	n.Notify(ctx, Notification{Level: LevelError, Message: msg})
}

// Console пишет уведомления в writer и дублирует их в лог.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole создает Console поверх w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Notify реализует Notifier.
func (c *Console) Notify(ctx context.Context, n Notification) {
	log := logger.Log(ctx).With(zap.String("notification", string(n.Level)))
	log.Debug(ctx, n.Message)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintf(c.w, "[%s] %s\n", n.Level, n.Message); err != nil {
		log.Warn(ctx, "failed to write notification", zap.Error(err))
	}
}
