package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpServer "notesboard/internal/devserver/adapters/http"
	"notesboard/internal/devserver/adapters/memory"
	"notesboard/internal/devserver/adapters/redisstore"
	"notesboard/internal/devserver/adapters/services"
	"notesboard/internal/devserver/app"
	"notesboard/internal/devserver/config"
	"notesboard/internal/devserver/ports/repositories"
	"notesboard/pkg/logger"
	"notesboard/pkg/shutdown"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "devserver started"
	LogServiceShutdownDone = "devserver shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingStorage      = "closing note repository"
	LogInitStorage         = "initializing storage"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogAuthEnabled         = "bearer token auth enabled"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "devserver",
		Short:         "Local notes API for developing the notes client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (environment is used otherwise)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the notes API until SIGINT/SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	}

	var subject string
	var ttl time.Duration
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token signed with DEVSERVER_JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx, configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("ttl") {
				ttl = cfg.JWT.TokenTTL
			}

			token, expiresAt, err := services.NewJWT(cfg.JWT.Secret).GenerateToken(ctx, subject, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			logger.Log(ctx).Info(ctx, "token issued",
				zap.String("subject", subject),
				zap.Time("expires_at", expiresAt))
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&subject, "subject", "notes-cli", "Token subject")
	tokenCmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default from DEVSERVER_JWT_TOKEN_TTL)")

	root.AddCommand(serveCmd, tokenCmd)
	return root
}

// newRepository выбирает хранилище по конфигурации.
func newRepository(ctx context.Context, cfg *config.Config) (repositories.NoteRepository, error) {
	kind, err := cfg.Storage.Kind()
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, LogInitStorage, zap.String("storage", kind))
	if kind == config.StorageRedis {
		return redisstore.NewNoteRepository(ctx, &cfg.Redis)
	}
	return memory.NewNoteRepository(), nil
}

// newApp собирает fiber-приложение со всеми зависимостями.
func newApp(cfg *config.Config, repo repositories.NoteRepository) *fiber.App {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	routerCfg := httpServer.RouterConfig{
		Notes:    app.NewNoteUseCase(repo),
		Registry: registry,
	}
	if cfg.JWT.Enabled() {
		routerCfg.Tokens = services.NewJWT(cfg.JWT.Secret)
	}

	fiberApp := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	})
	httpServer.SetupRouter(fiberApp, routerCfg)

	return fiberApp
}

func serve(ctx context.Context, configPath string) error {
	ctx = logger.NewRequestIDContext(ctx, "")
	log := logger.Log(ctx)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return err
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(finalLogger)
	log = finalLogger

	log.Info(ctx, LogServiceStarted,
		zap.Int("pid", os.Getpid()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	repo, err := newRepository(ctx, cfg)
	if err != nil {
		log.Error(ctx, ErrCreateRepository, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateRepository, err)
	}

	if cfg.JWT.Enabled() {
		log.Info(ctx, LogAuthEnabled)
	}

	log.Info(ctx, LogInitHTTPServer)
	fiberApp := newApp(cfg, repo)

	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	go func() {
		if err := fiberApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
		}
	}()

	shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), stopHook(fiberApp, repo))

	log.Info(ctx, LogServiceShutdownDone)
	return nil
}

type httpStopper interface {
	ShutdownWithContext(ctx context.Context) error
}

// stopHook сначала дожидается завершения запросов, затем закрывает хранилище.
// Хранилище закрывается и тогда, когда сервер не уложился в срок.
func stopHook(server httpStopper, repo io.Closer) shutdown.Hook {
	return func(ctx context.Context) error {
		log := logger.Log(ctx)

		log.Info(ctx, LogStoppingHTTP)
		serverErr := server.ShutdownWithContext(ctx)

		log.Info(ctx, LogClosingStorage)
		return errors.Join(serverErr, repo.Close())
	}
}
