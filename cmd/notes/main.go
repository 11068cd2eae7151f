// Package main реализует консольный клиент доски заметок.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"notesboard/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger = "failed to initialize logger"
	ErrSyncLogger = "failed to sync logger"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run выполняет команду и возвращает код выхода.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	log, err := logger.NewLogger(logger.Production, "warn")
	if err != nil {
		fmt.Fprintf(errOut, "%s: %v\n", ErrInitLogger, err)
		return 1
	}
	logger.SetGlobalLogger(log)

	c := &cli{in: in, out: out, errOut: errOut}
	defer c.syncLogger()

	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	ctx = logger.NewRequestIDContext(ctx, "")
	err = root.ExecuteContext(ctx)
	c.close(ctx)

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *cli) syncLogger() {
	if err := logger.Log(context.Background()).Sync(); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
			return
		}
		fmt.Fprintf(c.errOut, "%s: %v\n", ErrSyncLogger, err)
	}
}
