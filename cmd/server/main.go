// Command server runs the fieldgate API: credential issuance plus the
// field-level authorization gateway in front of the graph operation surface.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldgate/fieldgate/internal/api"
	"github.com/fieldgate/fieldgate/internal/core/ports"
	"github.com/fieldgate/fieldgate/internal/infrastructure/config"
	"github.com/fieldgate/fieldgate/internal/infrastructure/db/memory"
	"github.com/fieldgate/fieldgate/internal/infrastructure/db/mongo"
	"github.com/fieldgate/fieldgate/internal/infrastructure/db/redis"
	"github.com/fieldgate/fieldgate/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	var (
		repo ports.PrincipalRepository
		db   *gomongo.Database
		rdb  *goredis.Client
	)

	switch cfg.StoreBackend {
	case config.StoreMongo:
		client, database, err := mongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		mongoRepo := mongo.NewPrincipalRepository(database)
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}
		repo, db = mongoRepo, database
	default:
		repo = memory.NewPrincipalRepository()
		log.Info().Msg("using in-memory principal store; principals do not survive restarts")
	}

	if cfg.PrincipalCache {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			_ = client.Close()
		}()

		repo, rdb = redis.NewPrincipalCache(repo, client, log), client
	}

	e := api.NewRouter(cfg, repo, db, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("store", cfg.StoreBackend).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
