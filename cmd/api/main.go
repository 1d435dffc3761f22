// Package main is the entry point for the catering booking API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/catering-booking/internal/cache"
	"github.com/pkordes/catering-booking/internal/config"
	"github.com/pkordes/catering-booking/internal/events"
	"github.com/pkordes/catering-booking/internal/handler"
	"github.com/pkordes/catering-booking/internal/middleware"
	"github.com/pkordes/catering-booking/internal/repo"
	"github.com/pkordes/catering-booking/internal/service"
	"github.com/pkordes/catering-booking/migrations"
)

// submissionLockTTL bounds how long a crashed submission can block its
// idempotency key.
const submissionLockTTL = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	slog.Info("database connection established")

	if err := migrate(ctx, pool); err != nil {
		return err
	}

	// --- Redis (optional) -------------------------------------------------
	var (
		catalogCache *cache.Cache
		lockOpt      []service.BookingOption
	)
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewClient(ctx, cache.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer rdb.Close()
		catalogCache = cache.New(rdb)
		lockOpt = append(lockOpt, service.WithSubmissionLock(cache.NewSubmissionLock(rdb, submissionLockTTL)))
		slog.Info("redis connection established", "addr", cfg.RedisAddr)
	} else {
		slog.Warn("REDIS_ADDR not set: catalog cache and submission lock disabled")
	}

	// --- Events (optional) ------------------------------------------------
	var publisher service.EventPublisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			return fmt.Errorf("connect to rabbitmq: %w", err)
		}
		defer p.Close()
		publisher = p
		slog.Info("rabbitmq connection established")
	} else {
		slog.Warn("AMQP_URL not set: booking events disabled")
	}

	// --- Services ---------------------------------------------------------
	closedDayRepo := repo.NewClosedDayRepo(pool)
	catalogSvc := service.NewCatalogService(repo.NewCatalogRepo(pool), catalogCache, cfg.CatalogCacheTTL)
	closedDaySvc := service.NewClosedDayService(closedDayRepo)
	bookingOpts := append([]service.BookingOption{
		service.WithPublisher(publisher),
		service.WithLogger(logger),
		service.WithClock(time.Now, cfg.BusinessLocation),
	}, lockOpt...)
	bookingSvc := service.NewBookingService(catalogSvc, closedDayRepo, repo.NewBookingRepo(pool), bookingOpts...)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srv := handler.NewServer(catalogSvc, closedDaySvc, bookingSvc, logger)
	r.Mount("/", srv.Routes(cfg.JWTSecret))

	// --- HTTP Server ------------------------------------------------------
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	// Graceful shutdown: give in-flight requests up to 15 seconds to complete.
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// migrate applies pending goose migrations through a database/sql view of pool.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}
	return nil
}
