package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/mysterioushouse/server/internal/config"
	"github.com/mysterioushouse/server/internal/database"
	"github.com/mysterioushouse/server/internal/logger"
	"github.com/mysterioushouse/server/internal/profile"
)

// Store is a profile store that holds resources until closed.
type Store interface {
	profile.Store
	io.Closer
}

type memoryStore struct {
	*profile.MemoryStore
}

func (memoryStore) Close() error { return nil }

// Open opens the profile store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warning("Using in-memory profile store, progress is lost on restart")
		return memoryStore{profile.NewMemoryStore()}, nil

	case config.DriverSQLite, config.DriverPostgres:
		dbCfg := database.Config{Driver: cfg.Driver, SQLitePath: cfg.SQLitePath}
		if cfg.Driver == config.DriverPostgres {
			dbCfg.Postgres = database.PostgresConfig{
				Host:            cfg.Postgres.Host,
				Port:            cfg.Postgres.Port,
				User:            cfg.Postgres.User,
				Password:        cfg.Postgres.Password,
				Database:        cfg.Postgres.Database,
				SSLMode:         cfg.Postgres.SSLMode,
				MaxOpenConns:    cfg.Postgres.MaxOpenConns,
				MaxIdleConns:    cfg.Postgres.MaxIdleConns,
				ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
			}
		}
		db, err := database.OpenWithConfig(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("open %s profile store: %w", cfg.Driver, err)
		}
		logger.Info("Profile database opened", "driver", cfg.Driver)
		return db, nil

	case config.DriverRedis:
		store, err := NewRedisStore(ctx, RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis profile store: %w", err)
		}
		logger.Info("Profile store connected", "driver", cfg.Driver, "addr", cfg.Redis.Addr)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
