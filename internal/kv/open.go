package kv

import (
	"context"
	"fmt"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

// Open constructs the key-value backend selected by cfg.Driver.
func Open(ctx context.Context, cfg model.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLiteStore(cfg.Path)
	case "redis":
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
