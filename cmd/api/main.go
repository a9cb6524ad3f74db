// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/mpke-dev/beatstore/internal/admin"
	"github.com/mpke-dev/beatstore/internal/auth"
	"github.com/mpke-dev/beatstore/internal/beat"
	"github.com/mpke-dev/beatstore/internal/cart"
	"github.com/mpke-dev/beatstore/internal/config"
	"github.com/mpke-dev/beatstore/internal/core"
	"github.com/mpke-dev/beatstore/internal/health"
	"github.com/mpke-dev/beatstore/internal/license"
	"github.com/mpke-dev/beatstore/internal/mail"
	"github.com/mpke-dev/beatstore/internal/middleware"
	"github.com/mpke-dev/beatstore/internal/opinion"
	"github.com/mpke-dev/beatstore/internal/order"
	"github.com/mpke-dev/beatstore/internal/server"
	"github.com/mpke-dev/beatstore/internal/storage"
	"github.com/mpke-dev/beatstore/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	//nolint:errcheck // .env is optional
	_ = godotenv.Load()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	store, err := storage.NewClient(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("object storage initialized",
		"bucket", cfg.Storage.Bucket,
		"region", cfg.Storage.Region,
	)

	if err := ensureDevKeys(cfg, logger); err != nil {
		return err
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	mailer := mail.NewMailer(cfg.SMTP, logger)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)

	authSvc := auth.NewService(jwtManager, userSvc)
	authHandler := auth.NewHandler(authSvc)

	beatRepo := beat.NewRepository(db.DB)
	beatSvc := beat.NewService(beatRepo, store, store, cfg.Storage)
	beatHandler := beat.NewHandler(beatSvc)

	licenseSvc := license.NewService(license.NewRepository(db.DB))
	licenseHandler := license.NewHandler(licenseSvc)

	cartSvc := cart.NewService(cart.NewRepository(db.DB))
	cartHandler := cart.NewHandler(cartSvc)

	orderRepo := order.NewRepository(db.DB)
	orderSvc := order.NewService(orderRepo, store, mailer, cfg.Storage)
	orderHandler := order.NewHandler(orderSvc)

	opinionSvc := opinion.NewService(opinion.NewRepository(db.DB))
	opinionHandler := opinion.NewHandler(opinionSvc)

	healthHandler := health.NewHandler(db, redis, store)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:       db.Stats,
		RedisStats:    redis.PoolStats,
		DBPing:        db.Ping,
		RedisPing:     redis.Ping,
		StoragePing:   store.Ping,
		CatalogCounts: catalogCounts(db.DB),
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager, userSvc)
	optionalAuth := middleware.OptionalAuth(jwtManager, userSvc)
	adminOnly := middleware.RequireAdmin

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		beatHandler.RegisterRoutes(r)
		licenseHandler.RegisterRoutes(r)
		orderHandler.RegisterPublicRoutes(r)
		opinionHandler.RegisterRoutes(r, optionalAuth, authenticator)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			cartHandler.RegisterRoutes(r)
			orderHandler.RegisterRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)
			beatHandler.RegisterUploadRoutes(r)
		})

		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// ensureDevKeys generates a signing key pair on first run outside
// production, so a fresh checkout starts without manual key setup.
func ensureDevKeys(cfg *config.Config, logger *slog.Logger) error {
	if cfg.App.Environment == "production" {
		return nil
	}

	if _, err := os.Stat(cfg.JWT.PrivateKeyPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat private key: %w", err)
	}

	logger.Warn("signing keys missing, generating development key pair",
		"private_key_path", cfg.JWT.PrivateKeyPath,
	)

	return auth.GenerateKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath)
}

func catalogCounts(
	db *sqlx.DB,
) func(ctx context.Context) (*admin.CatalogStats, error) {
	return func(ctx context.Context) (*admin.CatalogStats, error) {
		const query = `
			SELECT
				(SELECT COUNT(*) FROM beats) AS beats,
				(SELECT COUNT(*) FROM users) AS users,
				(SELECT COUNT(*) FROM orders) AS orders,
				(SELECT COUNT(*) FROM orders WHERE is_paid) AS paid_orders,
				(SELECT COUNT(*) FROM opinions) AS opinions`

		var stats admin.CatalogStats
		if err := db.GetContext(ctx, &stats, query); err != nil {
			return nil, fmt.Errorf("catalog counts: %w", err)
		}

		return &stats, nil
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
