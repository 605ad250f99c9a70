// cmd/ops-manager/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"jobsearch-ops/internal/common/config"
	"jobsearch-ops/internal/common/database"
	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/common/observability"
	"jobsearch-ops/internal/doctor"
	"jobsearch-ops/internal/server"
	"jobsearch-ops/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	// Deferred as a closure so the logger swapped in after config load is the
	// one that gets synced.
	defer func() { _ = zapLog.Sync() }()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting ops manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Re-init logging with the configured level/format
	_ = zapLog.Sync()
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log = logger.NewZapAdapter(zapLog)

	obs := observability.New("ops-manager")
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Check registry ---
	reg, err := registry.LoadRegistry(cfg.Doctor.RegistryPath)
	if err != nil {
		zapLog.Fatal("check registry load failed", zap.Error(err))
	}
	zapLog.Info("check registry loaded", zap.Int("checks", len(reg.Checks)))

	// --- Session store warm-up with retry ---
	// The store sits on /tmp which may not exist yet in a fresh container;
	// give it a few attempts before the first suite run records a failure.
	sessionPath, err := cfg.Sessions.Path()
	if err != nil {
		zapLog.Fatal("invalid session store URI", zap.Error(err))
	}
	err = retryWithBackoff(func() error {
		client, err := database.NewSQLite(sessionPath)
		if err != nil {
			return err
		}
		defer client.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return client.Ping(pingCtx)
	}, 5, 1*time.Second, zapLog, "session store connection")
	if err != nil {
		zapLog.Warn("session store unavailable at startup, doctor will keep reporting it", zap.Error(err))
	} else {
		zapLog.Info("session store reachable", zap.String("path", sessionPath))
	}

	// --- Doctor ---
	doc := doctor.BuildFromRegistry(cfg, reg, obs, log)
	zapLog.Info("doctor built", zap.Int("registered", doc.Checks()))

	report := doc.Run(ctx)
	zapLog.Info("initial suite run complete",
		zap.String("runId", report.RunID),
		zap.String("status", string(report.Status)),
		zap.Bool("healthy", report.Healthy()),
	)

	interval := config.GetDuration(cfg.Doctor.Interval)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				doc.Run(ctx)
			}
		}
	}()

	// --- HTTP server ---
	srv := server.New(cfg.Server, doc, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		zapLog.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}

	shutdownCtx := context.Background()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
		os.Exit(1)
	}
	zapLog.Info("ops manager stopped")
}
