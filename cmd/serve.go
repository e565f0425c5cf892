package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/f1predict/internal/adapters/http/api"
	"github.com/okian/f1predict/internal/adapters/http/middleware"
	"github.com/okian/f1predict/internal/adapters/http/site"
	app "github.com/okian/f1predict/internal/app"
	"github.com/okian/f1predict/internal/config"
	"github.com/okian/f1predict/internal/inference"
	"github.com/okian/f1predict/pkg/logger"
	"github.com/okian/f1predict/pkg/metrics"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the model and serve the prediction page (default)",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "HTTP listen address (overrides "+config.EnvPrefix+"ADDR)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var logOpts []logger.Option
	if cfg.LogFile != "" {
		logOpts = append(logOpts, logger.WithFile(cfg.LogFile))
	}
	if err := logger.Init(logOpts...); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() { _ = logger.Close() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// The model is loaded before the listener opens; there is no fallback.
	handler, info, err := buildHandler(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", logger.String("model_path", cfg.ModelPath), logger.Error(err))
		return err
	}
	log.Info(ctx, "model loaded",
		logger.String("model", info.Name),
		logger.String("estimator", info.Estimator),
		logger.Bool("probabilistic", info.Probabilistic),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return serve(ctx, srv, time.Duration(cfg.ShutdownTimeoutSec)*time.Second, log)
}

// buildHandler loads the model once and wires every route around it.
func buildHandler(ctx context.Context, cfg *config.Config, log logger.Logger) (http.Handler, inference.Info, error) {
	clf, err := inference.MemoLoader(cfg.ModelPath)()
	if err != nil {
		return nil, inference.Info{}, fmt.Errorf("load model: %w", err)
	}
	predictor, err := inference.NewPredictor(clf, inference.WithCacheSize(cfg.CacheSize))
	if err != nil {
		return nil, inference.Info{}, err
	}
	svc, err := app.New(predictor, app.WithLogger(log.Named("service")))
	if err != nil {
		return nil, inference.Info{}, err
	}

	mux := http.NewServeMux()
	site.Register(ctx, mux, svc, site.WithLogger(log.Named("site")))
	api.NewServer(svc).Register(ctx, mux)

	return middleware.Recover(log, mux), svc.Model(), nil
}

// serve runs srv until ctx is cancelled, then shuts it down within timeout.
func serve(ctx context.Context, srv *http.Server, timeout time.Duration, log logger.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		log.Info(shutdownCtx, "server stopped")
		return nil
	})

	g.Go(func() error {
		startSystemMetricsUpdater(gctx)
		return nil
	})

	return g.Wait()
}

// startSystemMetricsUpdater refreshes system gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
