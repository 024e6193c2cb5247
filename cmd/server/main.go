package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/kasir/internal/config"
	"github.com/mmynk/kasir/internal/ledgersync"
	"github.com/mmynk/kasir/internal/recorder"
	"github.com/mmynk/kasir/internal/service"
	"github.com/mmynk/kasir/internal/storage"
	"github.com/mmynk/kasir/internal/storage/memory"
	"github.com/mmynk/kasir/internal/storage/sqlite"
	"github.com/mmynk/kasir/pkg/logging"
	"github.com/mmynk/kasir/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.SeedMenu {
		n, err := service.SeedMenu(ctx, store, service.DefaultMenu)
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Info("Seeded menu", "items", n)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	syncClient := newSyncClient(ctx, cfg.Sync)
	rec := recorder.New(store, syncClient, recorder.WithMetrics(m))

	pos := service.NewPosService(rec, store, syncClient)
	go pos.SweepIdleSessions(ctx, cfg.SessionIdleTTL, sweepInterval(cfg.SessionIdleTTL))

	handler := newRouter(routerDeps{
		pos:      pos,
		catalog:  service.NewCatalogService(store),
		metrics:  m,
		gatherer: reg,
	})

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		// Wrap with h2c for HTTP/2 without TLS (required for Connect)
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.LedgerDriver == config.DriverMemory {
		slog.Warn("Using in-memory ledger; transactions are lost on restart")
		return memory.New(), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	slog.Info("Storage initialized", "database", cfg.DBPath)
	return store, nil
}

// newSyncClient builds the remote ledger client. Without credentials every
// sync reports a configuration error and transactions stay local.
// sweepInterval checks for idle sessions a few times per TTL and at least
// once a minute.
func sweepInterval(ttl time.Duration) time.Duration {
	return max(min(ttl/4, time.Minute), time.Millisecond)
}

func newSyncClient(ctx context.Context, cfg config.SyncConfig) *ledgersync.Client {
	creds, err := cfg.Credentials()
	if err != nil {
		slog.Warn("Ignoring unreadable Google credentials", "error", err)
		creds = nil
	}

	client := ledgersync.NewClient(ledgersync.Config{
		SheetName:   cfg.SheetName,
		Credentials: creds,
		ShareWith:   cfg.ShareWith,
		Timeout:     cfg.Timeout,
		MaxAttempts: cfg.MaxAttempts,
	}, nil)

	if creds == nil {
		slog.Warn("No Google credentials configured; running in local-only mode")
		return client
	}

	// Connect in the background so an unreachable remote never delays startup.
	go func() {
		if err := client.Connect(ctx); err != nil {
			slog.Warn("Remote ledger unavailable at startup", "mode", client.Mode(), "error", err)
		}
	}()
	return client
}
