// Package storage elige y abre el backend de mascotas según la config.
package storage

import (
	"context"
	"fmt"

	"pets-api/internal/adapters/storage/memory"
	mongostore "pets-api/internal/adapters/storage/mongo"
	"pets-api/internal/adapters/storage/postgres"
	redisstore "pets-api/internal/adapters/storage/redis"
	"pets-api/internal/adapters/storage/sqlite"
	"pets-api/internal/domain/pets"
	"pets-api/internal/platform/config"
	"pets-api/internal/platform/logger"
)

// CloseFunc libera las conexiones del backend. Nunca es nil.
type CloseFunc func() error

func noopClose() error { return nil }

// Open abre el backend configurado, aplica schema/índices y devuelve el repo listo.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (pets.Repository, CloseFunc, error) {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.With(map[string]any{"store": string(cfg.Store)})

	switch cfg.Store {
	case config.StoreMemory:
		log.Info("using in-memory store", nil)
		return memory.NewPetRepo(), noopClose, nil

	case config.StorePostgres:
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("storage: postgres schema: %w", err)
		}
		log.Info("connected to postgres", nil)
		return postgres.NewPetsRepo(db), db.Close, nil

	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		if err := sqlite.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("storage: sqlite schema: %w", err)
		}
		log.Info("opened sqlite database", map[string]any{"path": cfg.SQLitePath})
		return sqlite.NewPetsRepo(db), db.Close, nil

	case config.StoreMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: %w", err)
		}
		closeFn := func() error { return client.Disconnect(context.Background()) }

		db := client.Database(cfg.MongoDatabase)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = closeFn()
			return nil, nil, fmt.Errorf("storage: %w", err)
		}
		repo, err := mongostore.NewPetsRepo(ctx, db)
		if err != nil {
			_ = closeFn()
			return nil, nil, fmt.Errorf("storage: %w", err)
		}
		log.Info("connected to mongodb", map[string]any{"database": cfg.MongoDatabase})
		return repo, closeFn, nil

	case config.StoreRedis:
		client, err := redisstore.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: %w", err)
		}
		log.Info("connected to redis", nil)
		return redisstore.NewPetsRepo(client), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("storage: %w: %q", config.ErrUnknownStore, cfg.Store)
	}
}
