// Package store implements the storage and auth façade all durable
// state flows through. Each entity class lives in its own flat
// collection, serialized as a single JSON array blob under a fixed
// namespace key; every mutation is a whole-collection read-modify-write.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/kv"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/logging"
)

// Namespace keys for the three durable collections. Existing data is
// orphaned if these ever change, so they are fixed for good.
const (
	tasksKey         = "congviec:tasks"
	notificationsKey = "congviec:notifications"
	usersKey         = "congviec:users"
)

// Options tunes a Service beyond its defaults.
type Options struct {
	// Logger receives corruption recoveries and write failures.
	// Nil discards them.
	Logger *logrus.Logger

	// LatencyMin and LatencyMax bound the artificial delay applied to
	// every operation, emulating a network round-trip. A zero
	// LatencyMax disables the delay entirely; semantics are identical
	// either way.
	LatencyMin time.Duration
	LatencyMax time.Duration

	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
}

// Service is the storage/auth façade. Its collections are independent:
// each is guarded by its own mutex, which serializes the non-atomic
// read-modify-write cycle against concurrent callers.
type Service struct {
	kv     kv.Store
	logger *logrus.Logger
	now    func() time.Time

	latencyMin time.Duration
	latencyMax time.Duration

	tasksMu         sync.Mutex
	notificationsMu sync.Mutex
	usersMu         sync.Mutex
}

// New creates a Service on top of the given key-value backend.
func New(store kv.Store, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		kv:         store,
		logger:     logger,
		now:        now,
		latencyMin: opts.LatencyMin,
		latencyMax: opts.LatencyMax,
	}
}

// wait applies the configured artificial latency. It returns early if
// ctx is cancelled; the delay itself never fails.
func (s *Service) wait(ctx context.Context) {
	if s.latencyMax <= 0 {
		return
	}
	d := s.latencyMin
	if span := s.latencyMax - s.latencyMin; span > 0 {
		d += time.Duration(rand.Int63n(int64(span)))
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// readCollection decodes the JSON array stored under key. A missing
// key, an unreadable backend, or a malformed payload all yield an
// empty collection; corruption is logged and recovered, never surfaced.
func readCollection[T any](ctx context.Context, s *Service, key string) []T {
	value, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).
			Warn("blob read failed, treating collection as empty")
		return nil
	}
	if !found || value == "" {
		return nil
	}

	var items []T
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		s.logger.WithError(err).WithField("key", key).
			Warn("blob is not a valid collection, treating as empty")
		return nil
	}
	return items
}

// writeCollection serializes items and rewrites the whole blob under
// key. Failures are logged before being returned so callers may
// ignore them without losing the trace.
func writeCollection[T any](ctx context.Context, s *Service, key string, items []T) error {
	payload, err := json.Marshal(items)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Error("blob encode failed")
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(payload)); err != nil {
		s.logger.WithError(err).WithField("key", key).Error("blob write failed")
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
