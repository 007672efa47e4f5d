package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"pandaledger/config"
	httpLayer "pandaledger/http"
	"pandaledger/repository"
	"pandaledger/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("cache", "memory", "Projection cache: memory or redis")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Redis address for the redis cache")
	serveCmd.Flags().String("store", "memory", "Projection history store: memory or sqlite")
	serveCmd.Flags().String("db", "pandaledger.db", "SQLite database path for the sqlite store")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeRepo()

	cache, closeCache := openCache(ctx, cfg.Cache, logger)
	defer closeCache()

	wealthService := service.NewWealthService(repo, cache, logger)
	wealthHandler := httpLayer.NewWealthHandler(wealthService, logger)

	portfolioHandler := httpLayer.NewPortfolioHandler(
		service.NewPerformanceService(),
		service.NewAnalyticsService(logger),
		logger,
	)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpLayer.NewRouter(wealthHandler, portfolioHandler, rateLimiter, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", cfg.Server.Addr, "cache", cfg.Cache.Driver, "store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("starting server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

func openStore(cfg config.StoreConfig) (repository.ProjectionRepository, func(), error) {
	if cfg.Driver == "sqlite" {
		repo, err := repository.OpenProjectionRepositorySQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	}
	return repository.NewProjectionRepositoryMemory(), func() {}, nil
}

// openCache falls back to the in-memory cache when Redis is unreachable.
func openCache(
	ctx context.Context,
	cfg config.CacheConfig,
	logger *log.Logger,
) (repository.CacheRepository, func()) {
	if cfg.Driver == "redis" {
		cache := repository.NewRedisCache(cfg.RedisAddr, cfg.TTL)
		err := cache.Ping(ctx)
		if err == nil {
			return cache, func() { _ = cache.Close() }
		}
		logger.Warn("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "err", err)
		_ = cache.Close()
	}
	return repository.NewMemoryCache(cfg.TTL), func() {}
}
