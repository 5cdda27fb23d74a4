// Command api runs the property management HTTP service.
//
// Usage:
//
//	api [serve]      start the HTTP server (default)
//	api init-db      drop and recreate all tables
//	api populate-db  insert sample users and properties into an empty database
//
//	@title			Property Management API
//	@version		1.0
//	@description	Users, properties and rooms with owner-only writes.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/property-management/property-api/internal/api"
	"github.com/property-management/property-api/internal/api/handler"
	"github.com/property-management/property-api/internal/core/ports"
	"github.com/property-management/property-api/internal/core/service"
	"github.com/property-management/property-api/internal/infrastructure/cache"
	"github.com/property-management/property-api/internal/infrastructure/db/mongo"
	"github.com/property-management/property-api/internal/infrastructure/db/redis"
	"github.com/property-management/property-api/internal/infrastructure/db/sqlstore"
	"github.com/property-management/property-api/internal/pkg/config"
	"github.com/property-management/property-api/pkg/logger"
)

const localIdempotencyKeys = 10000

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [serve|init-db|populate-db]\n", os.Args[0])
	}
	flag.Parse()

	// A missing .env file is fine; real environments set variables directly.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "property-api",
	})

	if err := runCommand(ctx, flag.Arg(0), cfg, log); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// runCommand opens the relational store, runs the named command and closes
// the store before returning, so callers may exit right after.
func runCommand(ctx context.Context, name string, cfg *config.Config, log zerolog.Logger) error {
	db, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver:       cfg.DB.Driver,
		DSN:          cfg.DB.URL,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
	}, log)
	if err != nil {
		return fmt.Errorf("open %s database: %w", cfg.DB.Driver, err)
	}
	defer func() {
		if err := sqlstore.Close(db); err != nil {
			log.Warn().Err(err).Msg("failed to close database")
		}
	}()

	switch name {
	case "", "serve":
		return serve(ctx, cfg, db, log)
	case "init-db":
		return initDB(ctx, db, log)
	case "populate-db":
		return populateDB(ctx, db, log)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", name)
	}
}

func initDB(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	log.Info().Msg("dropping and recreating tables")
	if err := sqlstore.Reset(ctx, db); err != nil {
		return err
	}
	log.Info().Msg("database initialized")
	return nil
}

func populateDB(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := sqlstore.Migrate(ctx, db); err != nil {
		return err
	}
	inserted, err := sqlstore.Populate(ctx, db)
	if err != nil {
		return err
	}
	if !inserted {
		log.Info().Msg("database already contains users, nothing inserted")
		return nil
	}
	log.Info().Msg("sample data inserted")
	return nil
}

func serve(ctx context.Context, cfg *config.Config, db *gorm.DB, log zerolog.Logger) error {
	if err := sqlstore.Migrate(ctx, db); err != nil {
		return err
	}

	checks := map[string]handler.CheckFunc{
		"database": func(ctx context.Context) error { return sqlstore.Ping(ctx, db) },
	}

	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		store, err := redis.Open(ctx, redis.Config{
			Addr:   cfg.Redis.Addr,
			DB:     cfg.Redis.DB,
			KeyTTL: cfg.Redis.IdempotencyTTL,
		})
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		idem = store
		checks["redis"] = store.Ping
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis idempotency store enabled")
	} else {
		local := cache.NewIdempotencyStore(localIdempotencyKeys, cfg.Redis.IdempotencyTTL)
		defer local.Close()
		idem = local
		log.Info().Msg("REDIS_ADDR not set, using in-process idempotency cache")
	}

	var audit ports.AuditRepository
	if cfg.Mongo.URI != "" {
		store, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = store.Close(context.Background()) }()
		repo := store.AuditLog()
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		audit = repo
		checks["mongodb"] = store.Ping
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb audit log enabled")
	}

	userRepo := sqlstore.NewUserRepository(db)
	propertyRepo := sqlstore.NewPropertyRepository(db)

	e := api.NewRouter(api.Deps{
		Users:          service.NewUserService(userRepo, audit, idem, log),
		Properties:     service.NewPropertyService(propertyRepo, userRepo, audit, idem, log),
		Checks:         checks,
		Logger:         log,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-sigCtx.Done():
	}
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
