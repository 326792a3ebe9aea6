// Package contracts defines the internal interfaces the implementation
// must honor. This file covers the durable key-value backend every
// collection blob is persisted into.
package contracts

import "context"

// BackendKind identifies a key-value backend implementation.
type BackendKind string

const (
	BackendSQLite BackendKind = "sqlite"
	BackendRedis  BackendKind = "redis"
	BackendMemory BackendKind = "memory"
)

// Backend is the contract every key-value store must implement. Values
// are opaque strings; the backend never inspects them.
type Backend interface {
	// Get returns the value under key. A missing key reports
	// found=false and a nil error; only transport or storage failures
	// produce errors.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set writes value under key, overwriting unconditionally.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key succeeds.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources. Safe to call once after
	// the last operation has returned.
	Close() error
}

// Backend mapping:
//
// sqlite (default):
//   Single-file database via modernc.org/sqlite (no cgo), accessed
//   through sqlx. One `blobs` table: key TEXT PRIMARY KEY, value TEXT.
//   WAL journaling; schema created by an in-process migration list.
//
// redis:
//   go-redis v9 client, plain GET/SET/DEL on string keys.
//   redis.Nil maps to found=false.
//
// memory:
//   Mutex-guarded map. Not durable; used by tests and available as an
//   explicit driver choice for throwaway runs.
