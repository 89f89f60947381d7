package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rukkie/storefront/api/routes"
	"github.com/rukkie/storefront/internal/cart"
	"github.com/rukkie/storefront/internal/reconcile"
	"github.com/rukkie/storefront/pkg/config"
	"github.com/rukkie/storefront/pkg/gateway"
	"github.com/rukkie/storefront/pkg/logger"
	"github.com/rukkie/storefront/pkg/metrics"
	"github.com/rukkie/storefront/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	apiClient, err := gateway.NewClient(cfg.API.BaseURL,
		gateway.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		gateway.WithCSRFCookieName(cfg.API.CSRFCookieName),
		gateway.WithMetrics(metrics.NewRequestMetrics(registry)),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build api gateway", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(apiClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build cart store", err)
		os.Exit(1)
	}

	flow, err := reconcile.NewFlow(apiClient, cartStore, cfg.Reconcile,
		reconcile.WithMetrics(metrics.NewReconcileMetrics(registry)),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build reconcile flow", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, flow, cartStore, redisClient, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront server stopped unexpectedly", err)
		os.Exit(1)
	}
}
