// @title        Todo API
// @version      1.0
// @description  Multi-tenant to-do list backend with token-based authentication.
// @BasePath     /
package main

import (
	"context"
	"time"

	"github.com/taskvault/todo-api/internal/api"
	"github.com/taskvault/todo-api/internal/infrastructure/config"
	mongodb "github.com/taskvault/todo-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskvault/todo-api/internal/infrastructure/db/redis"
	"github.com/taskvault/todo-api/pkg/logger"
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

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewTodoRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("todo index creation failed")
	}

	// Redis backs the optional token cache; the service degrades to
	// store-only token resolution when it is unreachable.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, token cache disabled")
		rdb = nil
	}

	e := api.NewRouter(db, rdb, cfg.JWTSecret, log)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
