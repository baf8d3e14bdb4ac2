package storage

import (
	"context"
	"fmt"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/repository"
)

// Open builds the backend selected by cfg.Storage. The returned close
// function releases connections and is never nil.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage {
	case config.StorageMemory:
		return NewMemory(), noop, nil
	case config.StorageFile, "":
		return NewFile(cfg.StateFile), noop, nil
	case config.StorageRedis:
		r, err := NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.KeyPrefix)
		if err != nil {
			return nil, noop, err
		}
		if err := r.Ping(ctx); err != nil {
			r.Close()
			return nil, noop, fmt.Errorf("connect redis: %w", err)
		}
		return r, r.Close, nil
	case config.StorageMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, noop, err
		}
		if err := db.Migrate(gormDB); err != nil {
			return nil, noop, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, noop, fmt.Errorf("mysql handle: %w", err)
		}
		return NewSQL(repository.NewEntryRepository(gormDB), cfg.KeyPrefix), sqlDB.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
