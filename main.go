package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"card-payoff/config"
	httpLayer "card-payoff/http"
	"card-payoff/payoff"
	"card-payoff/scheduler"
	"card-payoff/service"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	flag.Parse()
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		*cfgPath = v
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("config validation", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))
	slog.Info("card-payoff starting", "config", *cfgPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache, closeCache := newCache(ctx, cfg)
	defer closeCache()

	runRepo := newRunRepository(cfg)
	defer runRepo.Close()

	sched := scheduler.NewScheduler(ctx, runRepo, cfg.RetentionPeriod())
	if err := sched.RegisterAll(cfg.Retention.PruneCron); err != nil {
		slog.Error("register cron tasks", "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	simulator := payoff.NewSimulator(payoff.Policy{
		MinimumPaymentFloor: decimal.NewFromFloat(*cfg.Simulation.MinPaymentFloor).Round(2),
		MaxMonths:           cfg.Simulation.MaxMonths,
	})
	insightService := service.NewInsightService(cfg.Insight.APIKey, cfg.Insight.APIURL, cfg.Insight.Model, cfg.Insight.Timeout)
	recommendationService := service.NewRecommendationService(insightService)
	scenarioService := service.NewScenarioService(simulator, cache, runRepo, recommendationService)

	scenarioHandler := httpLayer.NewScenarioHandler(scenarioService)
	runHandler := httpLayer.NewRunHandler(scenarioService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(scenarioHandler, runHandler, rateLimiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("API listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("server failed", "error", err)
		return
	case <-quit:
		slog.Info("shutting down server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}

	slog.Info("server exited")
}
