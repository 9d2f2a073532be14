package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brandonbohn/adebackend/common/database"
	commonredis "github.com/brandonbohn/adebackend/common/redis"
	"github.com/brandonbohn/adebackend/internal/store"

	"go.uber.org/zap"
)

// openDB connects to the configured Postgres. Admin commands never fall back
// to the memory store.
func (a *app) openDB() (*sql.DB, error) {
	db, err := database.NewPostgresDB(&a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", a.cfg.Database.Database, err)
	}
	return db, nil
}

// openRedis returns nil when Redis is disabled.
func (a *app) openRedis(ctx context.Context) (*commonredis.Client, error) {
	if !a.cfg.RedisEnabled {
		return nil, nil
	}
	return commonredis.Connect(ctx, &a.cfg.Redis, 2*time.Second)
}

// contentCache is the Redis KV when reachable so seeding clears stale entries.
func (a *app) contentCache(ctx context.Context) (store.KV, func()) {
	c, err := a.openRedis(ctx)
	if err != nil {
		a.logger.Warn("Content cache unavailable, cached entries expire by TTL", zap.Error(err))
	}
	if c == nil {
		return store.NopKV{}, func() {}
	}
	return store.NewRedisKV(c), func() { _ = commonredis.Close(c) }
}
