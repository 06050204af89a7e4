package commands

import (
	"context"
	"fmt"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/studyplanner/internal/config"
	"github.com/fastygo/studyplanner/internal/infrastructure/boltdb"
	redisInfra "github.com/fastygo/studyplanner/internal/infrastructure/redis"
	sqliteInfra "github.com/fastygo/studyplanner/internal/infrastructure/sqlite"
	boltRepo "github.com/fastygo/studyplanner/repository/bolt"
	redisRepo "github.com/fastygo/studyplanner/repository/redis"
	"github.com/fastygo/studyplanner/repository/remote"
	sqliteRepo "github.com/fastygo/studyplanner/repository/sqlite"
	"github.com/fastygo/studyplanner/usecase/planner"
)

// OpenRepository builds the Repository over the store named by
// ACTIVITY_STORE. The returned func releases the store's resources.
func OpenRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*planner.Repository, func(), error) {
	opts := planner.Config{OptimisticWrites: cfg.Store.OptimisticWrites}
	logger = logger.With(zap.String("store", cfg.Store.Kind))

	switch cfg.Store.Kind {
	case config.StoreBolt:
		db, err := boltdb.Open(cfg.Store.BoltPath, cfg.Store.BoltBucket)
		if err != nil {
			return nil, nil, fmt.Errorf("open bolt store: %w", err)
		}
		store, err := boltRepo.NewActivityStore(db, cfg.Store.BoltBucket, cfg.Store.Key)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return planner.NewLocal(store, opts, logger), func() { db.Close() }, nil

	case config.StoreRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		store := redisRepo.NewActivityStore(client, cfg.AppName+":", cfg.Store.Key)
		return planner.NewLocal(store, opts, logger), func() { client.Close() }, nil

	case config.StoreSQLite:
		db, err := sqliteInfra.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		store, err := sqliteRepo.NewActivityStore(ctx, db, cfg.Store.Key)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return planner.NewLocal(store, opts, logger), func() { db.Close() }, nil

	case config.StoreRemote:
		client := &fasthttp.Client{
			Name:         cfg.AppName,
			ReadTimeout:  cfg.Remote.Timeout,
			WriteTimeout: cfg.Remote.Timeout,
		}
		store, err := remote.NewActivityClient(remote.Config{
			BaseURL: cfg.Remote.URL,
			Token:   cfg.Remote.Token,
			Client:  client,
		})
		if err != nil {
			return nil, nil, err
		}
		return planner.NewRemote(store, opts, logger), func() { client.CloseIdleConnections() }, nil
	}
	return nil, nil, fmt.Errorf("unknown activity store %q", cfg.Store.Kind)
}
