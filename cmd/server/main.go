// Package main boots the point-of-sale backend: a single-process ledger
// for clients, products, credit sales and loan repayments, persisted as
// one snapshot document and served over HTTP.
//
// @title           POS Ledger API
// @version         1.0
// @description     Ledger and analytics backend for a small retail shop.
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mannager/pos-system/internal/api"
	"github.com/mannager/pos-system/internal/infrastructure/snapshot"
	"github.com/mannager/pos-system/internal/pkg/config"
	"github.com/mannager/pos-system/internal/store"
	"github.com/mannager/pos-system/pkg/logger"
)

func main() {
	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") != "production",
	})

	cfg := config.Load(log)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var gw interface {
		store.Gateway
		Ping(ctx context.Context) error
	}
	switch cfg.Snapshot.Backend {
	case "mongo":
		client, db, err := snapshot.ConnectMongo(ctx, snapshot.MongoConfig{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()
		gw = snapshot.NewMongo(db, log)
	case "file":
		gw = snapshot.NewFile(cfg.Snapshot.Path, log)
	default:
		log.Fatal().Str("backend", cfg.Snapshot.Backend).Msg("unknown snapshot backend")
	}

	st := store.Open(gw, store.Seed(cfg.Admin.Username, cfg.Admin.Password, log), log)

	e := api.NewRouter(st, api.RouterConfig{
		JWTSecret:   cfg.JWTSecret,
		SabbathLock: cfg.SabbathLock,
		Snapshot:    gw,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped gracefully")
}
