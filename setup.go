package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"card-payoff/config"
	httpLayer "card-payoff/http"
	"card-payoff/repository"
)

func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// newCache returns Redis when it is configured and reachable, otherwise an
// in-memory cache.
func newCache(ctx context.Context, cfg *config.Config) (repository.CacheRepository, func()) {
	memoryCache := func() (repository.CacheRepository, func()) {
		return repository.NewMemoryCache(cfg.Cache.MaxEntries, cfg.Cache.TTL), func() {}
	}

	if cfg.Redis.Addr == "" {
		slog.Info("redis not configured, caching in memory",
			"max_entries", cfg.Cache.MaxEntries, "ttl", cfg.Cache.TTL.String())
		return memoryCache()
	}

	redisCache := repository.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Cache.TTL)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		slog.Warn("redis unreachable, caching in memory", "addr", cfg.Redis.Addr, "error", err)
		redisCache.Close()
		return memoryCache()
	}

	slog.Info("caching in redis", "addr", cfg.Redis.Addr, "ttl", cfg.Cache.TTL.String())
	return redisCache, func() { redisCache.Close() }
}

// newRunRepository prefers Postgres, then SQLite, and falls back to memory
// when neither can be opened.
func newRunRepository(cfg *config.Config) repository.RunRepository {
	if cfg.Database.PostgresDSN != "" {
		repo, err := repository.NewRunRepositoryPostgres(cfg.Database.PostgresDSN, cfg.Database.MaxOpenConns)
		if err == nil {
			return repo
		}
		slog.Warn("init postgres run repository failed", "error", err)
	}

	if cfg.Database.SQLitePath != "" {
		if dir := filepath.Dir(cfg.Database.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				slog.Warn("create sqlite directory", "dir", dir, "error", err)
			}
		}
		repo, err := repository.NewRunRepositorySQLite(cfg.Database.SQLitePath)
		if err == nil {
			return repo
		}
		slog.Warn("init sqlite run repository failed", "error", err)
	}

	slog.Warn("run history kept in memory only")
	return repository.NewRunRepositoryMemory()
}

func newRouter(
	scenarioHandler *httpLayer.ScenarioHandler,
	runHandler *httpLayer.RunHandler,
	rateLimiter *httpLayer.RateLimiter,
) http.Handler {
	mux := http.NewServeMux()

	mux.Handle(
		"/scenarios/simulate",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(scenarioHandler.Simulate),
		),
	)

	mux.Handle(
		"/scenarios/minimum-payment",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(scenarioHandler.MinimumPayment),
		),
	)

	mux.Handle(
		"/scenarios/runs",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(runHandler.ListRuns),
		),
	)

	mux.HandleFunc("/health", httpLayer.Health)

	return httpLayer.LoggingMiddleware(mux)
}
