package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

// Tasks returns every task owned by userID. An absent or corrupt
// collection reads as empty; filtering is a full scan of the blob.
func (s *Service) Tasks(ctx context.Context, userID string) ([]model.Task, error) {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()
	s.wait(ctx)

	var owned []model.Task
	for _, t := range readCollection[model.Task](ctx, s, tasksKey) {
		if t.UserID == userID {
			owned = append(owned, t)
		}
	}
	return owned, nil
}

// SaveTask upserts by ID: an entry with the same ID is replaced in
// place, otherwise the task is appended. A task arriving without an ID
// is treated as new and assigned one, along with a creation timestamp
// and the pending status. Field contents are otherwise trusted.
// The stored task is returned.
func (s *Service) SaveTask(ctx context.Context, task model.Task) (model.Task, error) {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()
	s.wait(ctx)

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.now()
	}
	if task.Status == "" {
		task.Status = model.TaskStatusPending
	}

	all := readCollection[model.Task](ctx, s, tasksKey)
	replaced := false
	for i, existing := range all {
		if existing.ID == task.ID {
			all[i] = task
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, task)
	}

	if err := writeCollection(ctx, s, tasksKey, all); err != nil {
		return task, err
	}
	return task, nil
}

// DeleteTask removes every entry with the given ID (normally zero or
// one). An absent ID is not an error.
func (s *Service) DeleteTask(ctx context.Context, taskID string) error {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()
	s.wait(ctx)

	all := readCollection[model.Task](ctx, s, tasksKey)
	kept := all[:0]
	for _, t := range all {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	return writeCollection(ctx, s, tasksKey, kept)
}

// DeleteAllTasks removes every task owned by userID, leaving other
// users' tasks untouched.
func (s *Service) DeleteAllTasks(ctx context.Context, userID string) error {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()
	s.wait(ctx)

	all := readCollection[model.Task](ctx, s, tasksKey)
	kept := all[:0]
	for _, t := range all {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	return writeCollection(ctx, s, tasksKey, kept)
}
