// Package main реализует локальный сервер заметок для разработки клиента.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"notesboard/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "DEVSERVER_LOGGER_MODE"
	EnvLoggerLevel = "DEVSERVER_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateRepository     = "failed to create note repository"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

func main() {
	log, err := logger.NewLogger(logger.ParseEnvironment(os.Getenv(EnvLoggerMode)), os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	exitCode := 0
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		exitCode = 1
	}

	if err := logger.Log(context.Background()).Sync(); err != nil {
		errMsg := err.Error()
		if !strings.Contains(errMsg, ErrSyncStderr) && !strings.Contains(errMsg, ErrSyncStdout) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err)
		}
	}

	os.Exit(exitCode)
}
