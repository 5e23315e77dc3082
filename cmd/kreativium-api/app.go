package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	goredis "github.com/redis/go-redis/v9"

	"github.com/whoamaiii/kreativium/backend/internal/config"
	"github.com/whoamaiii/kreativium/backend/internal/logger"
	"github.com/whoamaiii/kreativium/backend/internal/repository"
)

// setupLogger builds the configured logger and makes it the process default
func setupLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Format:  cfg.Log.Format,
		Backend: cfg.Log.Backend,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger.SetDefault(log)
	return log, nil
}

// openStore opens the configured storage backend
func openStore(cfg config.StorageConfig) (*repository.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return repository.NewMemoryStore(), nil
	case config.DriverBadger:
		return repository.NewBadgerStore(repository.BadgerOptions{Dir: cfg.BadgerDir, SyncWrites: true})
	case config.DriverPostgres:
		db, err := repository.OpenGorm(config.DriverPostgres, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return repository.NewGormStore(db)
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		db, err := repository.OpenGorm(config.DriverSQLite, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repository.NewGormStore(db)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// openIdempotency returns a redis-backed cache when an address is
// configured and an in-process one otherwise. The returned client is nil
// in the latter case.
func openIdempotency(ctx context.Context, cfg config.RedisConfig) (repository.IdempotencyRepository, *goredis.Client, error) {
	if cfg.Addr == "" {
		return repository.NewMemoryIdempotencyRepository(cfg.IdempotencyTTL), nil, nil
	}
	rdb, err := repository.NewRedisClient(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return repository.NewRedisIdempotencyRepository(rdb, cfg.IdempotencyTTL), rdb, nil
}
