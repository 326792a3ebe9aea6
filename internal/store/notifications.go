package store

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

// Notifications returns userID's notifications, most recent first.
func (s *Service) Notifications(ctx context.Context, userID string) ([]model.Notification, error) {
	s.notificationsMu.Lock()
	defer s.notificationsMu.Unlock()
	s.wait(ctx)

	var owned []model.Notification
	for _, n := range readCollection[model.Notification](ctx, s, notificationsKey) {
		if n.UserID == userID {
			owned = append(owned, n)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned, nil
}

// AddNotification stores n unless the collection already holds an
// entry with the same (UserID, TaskID, Kind) triple, in which case the
// call is a silent no-op. The uniqueness check happens here, at write
// time; the backend knows nothing about it.
func (s *Service) AddNotification(ctx context.Context, n model.Notification) error {
	s.notificationsMu.Lock()
	defer s.notificationsMu.Unlock()
	s.wait(ctx)

	all := readCollection[model.Notification](ctx, s, notificationsKey)
	for _, existing := range all {
		if existing.UserID == n.UserID && existing.TaskID == n.TaskID && existing.Kind == n.Kind {
			return nil
		}
	}

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}

	all = append(all, n)
	return writeCollection(ctx, s, notificationsKey, all)
}

// MarkNotificationRead sets the read flag on the single matching
// notification; it is a no-op if the ID is absent.
func (s *Service) MarkNotificationRead(ctx context.Context, id string) error {
	s.notificationsMu.Lock()
	defer s.notificationsMu.Unlock()
	s.wait(ctx)

	all := readCollection[model.Notification](ctx, s, notificationsKey)
	for i := range all {
		if all[i].ID == id {
			all[i].Read = true
			break
		}
	}
	return writeCollection(ctx, s, notificationsKey, all)
}

// MarkAllNotificationsRead sets the read flag on every notification
// owned by userID.
func (s *Service) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	s.notificationsMu.Lock()
	defer s.notificationsMu.Unlock()
	s.wait(ctx)

	all := readCollection[model.Notification](ctx, s, notificationsKey)
	for i := range all {
		if all[i].UserID == userID {
			all[i].Read = true
		}
	}
	return writeCollection(ctx, s, notificationsKey, all)
}
