// Package kv provides the durable key-value backends the storage façade
// persists its collection blobs into. Every backend stores opaque string
// values under string keys; interpretation of the values is the caller's
// business.
package kv

import "context"

// Store is the contract shared by all key-value backends.
//
// Get reports found=false for a missing key; an absent key is not an
// error. Set overwrites unconditionally. Delete is a no-op for keys
// that do not exist.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
