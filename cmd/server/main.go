package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/folio/backend/internal/config"
	"github.com/folio/backend/internal/database"
	"github.com/folio/backend/internal/handler"
	"github.com/folio/backend/internal/logging"
	"github.com/folio/backend/internal/metrics"
	"github.com/folio/backend/internal/ratelimit"
	"github.com/folio/backend/internal/repository"
	"github.com/folio/backend/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logging.Fatal("failed to load config", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	if cfg.MigrateOnStart {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			logging.Fatal("failed to run migrations", "error", err)
		}
		slog.Info("migrations applied")
	}

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	contactRepo := repository.NewPgContactRepository(pool)
	contactService := service.NewContactService(contactRepo)

	deps := handler.RouterDeps{
		DB:                pool,
		ContactService:    contactService,
		FrontendURL:       cfg.FrontendURL,
		PerMinute:         cfg.RateLimit.PerMinute,
		TrustedProxyCount: cfg.RateLimit.TrustedProxyCount,
	}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		deps.Metrics = metrics.NewCollector(reg)
		deps.Gatherer = reg
	}

	if cfg.RateLimit.Enabled() {
		limiter, err := newLimiter(cfg.RateLimit)
		if err != nil {
			logging.Fatal("failed to create rate limiter", "error", err)
		}
		defer limiter.Close()
		deps.Limiter = limiter
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler.NewRouter(deps),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

// newLimiter prefers Redis so every instance shares one quota.
func newLimiter(rl config.RateLimit) (ratelimit.Limiter, error) {
	if rl.RedisAddr != "" {
		limiter, err := ratelimit.NewRedisFixedWindow(rl.RedisAddr, rl.RedisPassword, rl.RedisPrefix, rl.PerMinute, time.Minute)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := limiter.Ping(ctx); err != nil {
			slog.Warn("rate limiter redis unreachable at startup", "addr", rl.RedisAddr, "error", err)
		}
		slog.Info("rate limiting enabled", "backend", "redis", "per_minute", rl.PerMinute)
		return limiter, nil
	}
	slog.Info("rate limiting enabled", "backend", "memory", "per_minute", rl.PerMinute)
	return ratelimit.NewTokenBucket(rl.PerMinute, 5*time.Minute), nil
}
