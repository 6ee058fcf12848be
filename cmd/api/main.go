package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"scicalc/internal/api"
	"scicalc/internal/config"
	"scicalc/internal/coordinator"
	"scicalc/internal/display"
	"scicalc/internal/observability"
	"scicalc/internal/server"
	"scicalc/internal/state"
	"scicalc/internal/storage"
)

func main() {

	ctx := context.Background()

	if err := loadDotEnv(); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing
	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		panic(err)
	}
	defer traceShutdown(ctx)

	// Log export
	logShutdown, err := observability.InitLogging(ctx)
	if err != nil {
		panic(err)
	}
	defer logShutdown(ctx)

	// Metrics
	metricShutdown, err := initMetrics(ctx)
	if err != nil {
		panic(err)
	}
	defer metricShutdown(ctx)

	logger := observability.Logger

	// Calculator core
	mgr := state.NewManager(logger,
		state.WithHistoryLimit(cfg.HistoryLimit),
		state.WithUndoLimit(cfg.UndoLimit),
	)
	disp := display.NewLogging(logger)
	mgr.AddListener("display", func(newState, _ state.State) {
		disp.UpdateDisplay(newState.CurrentValue, display.Options{})
	})

	// Snapshot persistence
	if cfg.SnapshotDBPath != "" {
		persister, err := storage.Open(cfg.SnapshotDBPath, logger)
		if err != nil {
			panic(err)
		}
		defer persister.Close()

		if snapshot, ok, err := persister.LoadLatest(ctx); err != nil {
			logger.Warn("restore snapshot", zap.Error(err))
		} else if ok {
			storage.Restore(mgr, snapshot)
			logger.Info("session restored",
				zap.String("current_value", snapshot.CurrentValue),
				zap.Time("taken_at", snapshot.CreatedAt),
			)
		}

		mgr.AddListener("storage", persister.Listener())
	}

	coord := coordinator.New(mgr, disp, logger)

	// Router
	router := server.NewRouter(api.NewHandler(coord, mgr))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("server started", zap.String("addr", cfg.Addr))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	waitForShutdown(srv, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	srv.Shutdown(ctx)
}
