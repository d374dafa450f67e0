package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard/internal/config"
	"taskboard/internal/repositories"
)

const pingTimeout = 3 * time.Second

// OpenSlot builds the storage slot for the configured driver. The returned
// close func releases the underlying connection and is never nil.
func OpenSlot(ctx context.Context, cfg config.StorageConfig) (repositories.Slot, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "", "file":
		log.Printf("[storage] file dir=%s slot=%s", cfg.File.Dir, cfg.Slot)
		return repositories.NewFileSlot(cfg.File.Dir, cfg.Slot), noop, nil

	case "postgres":
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres: %w", err)
		}
		slot := repositories.NewPostgresSlot(db, cfg.Slot)

		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := slot.EnsureSchema(pctx); err != nil {
			// retried on the next read or write
			log.Printf("[storage][postgres][warn] schema: %v", err)
		}
		log.Printf("[storage] postgres slot=%s", cfg.Slot)
		return slot, db.Close, nil

	case "sqlite":
		if dir := filepath.Dir(cfg.SQLite.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, noop, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		db, err := gorm.Open(sqlite.Open(cfg.SQLite.Path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite %s: %w", cfg.SQLite.Path, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, noop, fmt.Errorf("sqlite handle: %w", err)
		}
		slot, err := repositories.NewSQLiteSlot(db, cfg.Slot)
		if err != nil {
			_ = sqlDB.Close()
			return nil, noop, err
		}
		log.Printf("[storage] sqlite path=%s slot=%s", cfg.SQLite.Path, cfg.Slot)
		return slot, sqlDB.Close, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(pctx).Err(); err != nil {
			log.Printf("[storage][redis][warn] ping %s: %v", cfg.Redis.Addr, err)
		}
		log.Printf("[storage] redis addr=%s key=%s%s", cfg.Redis.Addr, cfg.Redis.Prefix, cfg.Slot)
		return repositories.NewRedisSlot(client, cfg.Redis.Prefix, cfg.Slot), client.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
