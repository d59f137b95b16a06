package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/distributed-systems/internal/api"
	"github.com/beka-birhanu/distributed-systems/internal/api/handler"
	"github.com/beka-birhanu/distributed-systems/internal/core/ports"
	"github.com/beka-birhanu/distributed-systems/internal/core/service"
	"github.com/beka-birhanu/distributed-systems/internal/infrastructure/config"
	memorystore "github.com/beka-birhanu/distributed-systems/internal/infrastructure/db/memory"
	mongostore "github.com/beka-birhanu/distributed-systems/internal/infrastructure/db/mongo"
	redisstore "github.com/beka-birhanu/distributed-systems/internal/infrastructure/db/redis"
	"github.com/beka-birhanu/distributed-systems/pkg/logger"

	_ "github.com/beka-birhanu/distributed-systems/docs"
)

// @title           Identity API
// @version         1.0
// @description     Credential and token issuance service.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, readiness, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to initialise user store")
	}
	defer cleanup()

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	accounts := service.NewAccountService(store, hasher, tokens, log)

	e := api.NewRouter(accounts, tokens, readiness, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("driver", cfg.Storage.Driver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
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

// buildStore constructs the configured user store driver together with its
// readiness dependencies and a cleanup function for shutdown.
func buildStore(ctx context.Context, cfg *config.Config) (ports.UserRepository, map[string]handler.Pinger, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		repo := memorystore.NewUserRepository()
		return repo, map[string]handler.Pinger{"store": repo}, func() {}, nil

	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		repo := mongostore.NewUserRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, nil, err
		}
		cleanup := func() { _ = client.Disconnect(context.Background()) }
		return repo, map[string]handler.Pinger{"mongodb": repo}, cleanup, nil

	case "redis":
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		repo := redisstore.NewUserRepository(client)
		cleanup := func() { _ = client.Close() }
		return repo, map[string]handler.Pinger{"redis": repo}, cleanup, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
