// Package shutdown предоставляет функциональность для корректного завершения приложения
// по сигналу SIGINT/SIGTERM или отмене родительского контекста.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"notesboard/pkg/logger"
)

const (
	logShutdownStarted  = "shutdown started"
	logShutdownTimedOut = "shutdown timed out"
	logHookFailed       = "shutdown hook failed"
)

// Hook освобождает ресурс при завершении.
type Hook func(context.Context) error

// Wait блокирует выполнение до получения сигнала или отмены ctx,
// затем параллельно выполняет все hooks в рамках timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	log := logger.Log(ctx)
	log.Info(ctx, logShutdownStarted, zap.Duration("timeout", timeout))

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Warn(hookCtx, logHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, logShutdownTimedOut)
	}
}
