package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gofinances/internal/config"
	"gofinances/internal/database"
	"gofinances/internal/middleware"
	"gofinances/internal/repositories"
	"gofinances/internal/server"
	"gofinances/internal/services"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	repo, closeStore, err := newLedgerRepository(cfg)
	if err != nil {
		logger.Error("Failed to initialize ledger storage", "error", err, "driver", cfg.Database.Driver)
		os.Exit(1)
	}
	defer closeStore()

	metrics := services.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	breaker := services.NewCircuitBreaker(services.CircuitBreakerConfig{
		MaxFailures:     cfg.Ledger.BreakerFailureThreshold,
		ResetTimeout:    cfg.Ledger.BreakerResetTimeout,
		HalfOpenMaxSucc: 1,
		OnStateChange:   services.BreakerStateGauge(metrics, "ledger"),
	})
	formatter := services.NewTransactionFormatter(cfg.Ledger.CurrencySymbol, cfg.Ledger.Location)
	rateLimiter := middleware.NewIPRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst)

	e := server.New(cfg, server.Dependencies{
		Ledger:      services.NewLedgerService(repo, formatter, breaker, metrics),
		Categories:  services.NewCategoryService(),
		Tokens:      services.NewTokenService(&cfg.JWT),
		Seeds:       services.NewSeedGenerator(uint64(time.Now().UnixNano())),
		RateLimiter: rateLimiter,
		Gatherer:    prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           e,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go rateLimiter.RunCleanup(ctx)

	go func() {
		logger.Info("Starting gofinances server",
			"addr", srv.Addr,
			"environment", cfg.Server.Environment,
			"driver", cfg.Database.Driver,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err, "addr", srv.Addr)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped gracefully")
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}

	format := cfg.Log.Format
	if format == "" && cfg.IsProduction() {
		format = "json"
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// newLedgerRepository picks the storage backend from DB_DRIVER
func newLedgerRepository(cfg *config.Config) (repositories.LedgerRepositoryInterface, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		slog.Info("Initialized memory ledger backend, data is lost on restart")
		return repositories.NewMemoryLedgerRepository(cfg.Ledger.Namespace), func() {}, nil
	}

	db, err := database.Initialize(cfg)
	if err != nil {
		return nil, nil, err
	}

	closeStore := func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}
	return repositories.NewLedgerRepository(db.DB, cfg.Ledger.Namespace), closeStore, nil
}
