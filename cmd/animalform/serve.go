package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pthm/animalform"
	animalecho "github.com/pthm/animalform/adapters/echo"
	"github.com/pthm/animalform/internal/config"
	"github.com/pthm/animalform/internal/logging"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		configFile string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the animal creation form",
		Long: `Start an HTTP server with a page containing the animal creation form.

Configuration is read from the YAML file given with --config and can be
overridden with ANIMALFORM_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to YAML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger, closer, err := logging.New(cfg.LoggingConfig())
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	e, _ := newServer(cfg, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", cfg.Server.Addr))
		errCh <- e.Start(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newServer wires the form, its registry and the metrics endpoint into an
// Echo instance.
func newServer(cfg *config.Config, logger *slog.Logger) (*echo.Echo, *animalform.Component) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency))
			return nil
		},
	}))

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var key []byte
	if cfg.Security.Key != "" {
		key = []byte(cfg.Security.Key)
	} else {
		logger.Warn("no security key configured, using a random key; forms rendered before a restart will be rejected")
	}
	reg := animalecho.Mount(e, animalecho.WithKey(key), animalecho.WithLogger(logger))

	opts := []animalform.Option{
		animalform.WithName(cfg.Form.Name),
		animalform.WithLogger(logger),
		animalform.WithMetrics(animalform.NewMetrics(promReg)),
	}
	if cfg.Form.Sensitive {
		opts = append(opts, animalform.Sensitive())
	}

	comp := animalform.New(func(name, pictureURL string) {
		logger.Info("animal received",
			slog.String("name", name),
			slog.String("picture_url", pictureURL))
	}, opts...)
	reg.Add(comp)

	e.GET("/", func(c echo.Context) error {
		return animalecho.Render(c, page(comp))
	})
	if cfg.Metrics.Enabled {
		e.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})))
	}

	return e, comp
}
