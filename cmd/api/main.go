package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/staffdesk/employee-api/internal/api"
	"github.com/staffdesk/employee-api/internal/core/ports"
	"github.com/staffdesk/employee-api/internal/core/service"
	mongodb "github.com/staffdesk/employee-api/internal/infrastructure/db/mongo"
	redisdb "github.com/staffdesk/employee-api/internal/infrastructure/db/redis"
	"github.com/staffdesk/employee-api/internal/pkg/config"
	"github.com/staffdesk/employee-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The store is a hard dependency: without it there is nothing to serve.
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	employeeRepo := mongodb.NewEmployeeRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	if err := employeeRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create employee indexes")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	if cfg.SeedOnStart {
		if err := mongodb.Seed(ctx, db, log); err != nil {
			log.Fatal().Err(err).Msg("failed to seed database")
		}
	}

	// Redis is optional: when absent the login throttle is disabled and
	// everything else works unchanged.
	var rdb *goredis.Client
	var throttle ports.LoginThrottle
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, login throttle disabled")
			rdb = nil
		} else {
			throttle = redisdb.NewLoginThrottle(rdb, log)
			defer rdb.Close()
		}
	}

	tokens := service.NewTokenIssuer(cfg.JWTSecret, service.DefaultTokenTTL)
	authService := service.NewAuthService(userRepo, tokens, throttle, log)
	employeeService := service.NewEmployeeService(employeeRepo, log)

	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     rdb,
		Employees: employeeService,
		Auth:      authService,
		Tokens:    tokens,
		Users:     userRepo,
		Logger:    log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
