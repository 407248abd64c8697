package repo

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/stockbook/internal/config"
	"github.com/rogerio-castellano/stockbook/internal/db"
	"github.com/rogerio-castellano/stockbook/internal/redissvc"
)

// OpenBlobStore builds the configured backend. The returned close function
// releases its connections and is never nil.
func OpenBlobStore(ctx context.Context, cfg *config.Config) (BlobStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return NewInMemoryBlobStore(), noop, nil

	case config.BackendFile:
		store, err := NewFileBlobStore(cfg.Storage.Path)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case config.BackendRedis:
		svc, err := redissvc.Connect(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, noop, err
		}
		return NewRedisBlobStore(svc.Rdb(), cfg.Storage.KeyPrefix), svc.Close, nil

	case config.BackendPostgres, config.BackendMySQL:
		driver, dialect := db.DriverPostgres, Postgres
		if cfg.Storage.Backend == config.BackendMySQL {
			driver, dialect = db.DriverMySQL, MySQL
		}

		database, err := db.Connect(ctx, driver, cfg.Database.URL)
		if err != nil {
			return nil, noop, err
		}
		store, err := NewSQLBlobStore(database, dialect)
		if err != nil {
			database.Close()
			return nil, noop, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, noop, err
		}
		return store, database.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
