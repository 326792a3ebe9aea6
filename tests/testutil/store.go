package testutil

import (
	"testing"
	"time"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/kv"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/store"
)

// Clock is the fixed instant test services stamp records with.
var Clock = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// NewTestService creates a storage façade over an in-memory backend
// with a fixed clock and no artificial latency. The backend is closed
// automatically when the test completes.
func NewTestService(t *testing.T) *store.Service {
	t.Helper()

	backend := kv.NewMemoryStore()
	t.Cleanup(func() {
		if err := backend.Close(); err != nil {
			t.Errorf("closing test backend: %v", err)
		}
	})

	return store.New(backend, store.Options{
		Now: func() time.Time { return Clock },
	})
}
