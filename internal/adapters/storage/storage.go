package storage

import (
	"context"
	"fmt"
	"strings"

	mem "pillpal/internal/adapters/storage/memory"
	pg "pillpal/internal/adapters/storage/postgres"
	"pillpal/internal/adapters/storage/sqlite"
	"pillpal/internal/config"
	"pillpal/internal/platform/logger"
	"pillpal/internal/ports/kv"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open elige el backend según config.
func Open(ctx context.Context, cfg config.Storage, log logger.Logger) (kv.Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	log = log.With(map[string]any{"component": "storage", "driver": driver})

	switch driver {
	case DriverMemory:
		log.Warn("using in-memory storage; data is lost on exit", nil)
		return mem.NewKV(), nil
	case DriverSQLite, "":
		s, err := sqlite.Open(cfg.SQLite.Path, log)
		if err != nil {
			return nil, err
		}
		log.Info("storage ready", map[string]any{"path": cfg.SQLite.Path})
		return s, nil
	case DriverPostgres:
		db, err := pg.Open(cfg.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		s, err := pg.NewKV(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("prepare postgres: %w", err)
		}
		log.Info("storage ready", nil)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
