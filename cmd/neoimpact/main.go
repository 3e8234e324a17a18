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

	httpadapter "github.com/couchcryptid/neo-impact-service/internal/adapter/http"
	"github.com/couchcryptid/neo-impact-service/internal/adapter/nasa"
	"github.com/couchcryptid/neo-impact-service/internal/adapter/overpass"
	"github.com/couchcryptid/neo-impact-service/internal/config"
	"github.com/couchcryptid/neo-impact-service/internal/impact"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/jessevdk/go-flags"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	nasaClient := nasa.NewClient(cfg.NASABaseURL, cfg.NASAAPIKey, cfg.NASAConnectTimeout, metrics, logger)
	feeds := nasa.NewCachedFeed(nasaClient, cfg.NEOCacheTTL, cfg.NASAFetchTimeout, clockwork.NewRealClock(), metrics, logger)
	logger.Info("neo feed configured", "base_url", cfg.NASABaseURL, "cache_ttl", cfg.NEOCacheTTL)

	overpassClient := overpass.NewClient(cfg.OverpassURL, cfg.OverpassTimeout, metrics, logger)
	aggregator := impact.NewAggregator(overpassClient, metrics, logger)
	logger.Info("overpass configured", "url", cfg.OverpassURL, "timeout", cfg.OverpassTimeout)

	srv := httpadapter.NewServer(cfg, feeds, aggregator, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
