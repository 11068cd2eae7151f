package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notesboard/internal/client/adapters/rest"
	"notesboard/internal/client/config"
	"notesboard/internal/client/form"
	"notesboard/internal/client/notify"
	"notesboard/internal/client/store"
	"notesboard/internal/client/view"
	"notesboard/pkg/logger"
	"notesboard/pkg/metrics"
	"notesboard/pkg/shutdown"
)

// errReported означает, что пользователь уже увидел сообщение об ошибке.
var errReported = errors.New("reported")

const (
	LogMetricsListening = "client metrics listening"
	ErrMetricsServer    = "client metrics server failed"
	metricsStopTimeout  = 2 * time.Second
)

// cli хранит состояние одного запуска.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	verbose    bool
	page       int
	limit      int

	cfg     *config.Config
	board   *view.Board
	closers []shutdown.Hook
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "notes",
		Short: "Notes board client",
		Long: `notes talks to a notes REST API: list, create, edit and delete notes,
or open an interactive board session with "notes shell".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to a YAML config file (environment is used otherwise)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newListCmd(c),
		newCreateCmd(c),
		newUpdateCmd(c),
		newDeleteCmd(c),
		newShellCmd(c),
	)

	return root
}

// addPageFlags регистрирует флаги пагинации, переопределяющие конфигурацию.
func addPageFlags(cmd *cobra.Command, c *cli) {
	cmd.Flags().IntVar(&c.page, "page", 0, "Page number (default from config)")
	cmd.Flags().IntVar(&c.limit, "limit", 0, "Notes per page (default from config)")
}

func (c *cli) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx, c.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("page") {
		cfg.API.Page = c.page
	}
	if cmd.Flags().Changed("limit") {
		cfg.API.Limit = c.limit
	}
	c.cfg = cfg

	level := cfg.Logging.Level
	if c.verbose {
		level = "debug"
	}
	log, err := logger.NewLogger(cfg.Logging.GetEnvironment(), level)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitLogger, err)
	}
	logger.SetGlobalLogger(log)

	opts := []rest.Option{rest.WithTimeout(cfg.API.Timeout)}
	if cfg.API.Token != "" {
		opts = append(opts, rest.WithToken(cfg.API.Token))
	}
	if cfg.Metrics.Addr != "" {
		m, err := c.serveMetrics(ctx, cfg.Metrics.Addr)
		if err != nil {
			return err
		}
		opts = append(opts, rest.WithMetrics(m))
	}

	client, err := rest.New(cfg.API.BaseURL, opts...)
	if err != nil {
		return err
	}

	c.board = view.NewBoard(client, store.New(), notify.NewConsole(c.out),
		view.WithPage(cfg.API.PageCursor()),
		view.WithFormOptions(form.WithKeepOpenOnError(cfg.Form.KeepOpenOnError)),
	)

	return nil
}

// serveMetrics поднимает /metrics на addr до завершения команды.
func (c *cli) serveMetrics(ctx context.Context, addr string) (*metrics.ClientMetrics, error) {
	reg := prometheus.NewRegistry()
	m := metrics.NewClientMetrics(reg)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	log := logger.Log(ctx)
	log.Info(ctx, LogMetricsListening, zap.String("address", ln.Addr().String()))
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, ErrMetricsServer, zap.Error(err))
		}
	}()

	c.closers = append(c.closers, srv.Shutdown)
	return m, nil
}

func (c *cli) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsStopTimeout)
	defer cancel()

	for _, closeFn := range c.closers {
		if err := closeFn(ctx); err != nil {
			logger.Log(ctx).Warn(ctx, "close failed", zap.Error(err))
		}
	}
	c.closers = nil
}
