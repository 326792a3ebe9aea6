package model

import "time"

// Task status constants.
const (
	TaskStatusPending = "pending"
	TaskStatusDone    = "done"
)

// Task is a single to-do item owned by one account.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`

	// UserID identifies the owning account. Assigned at creation,
	// never reassigned afterwards.
	UserID string `json:"user_id"`

	// Title is the short human-readable summary of the task.
	Title string `json:"title"`

	// Description is the optional long-form body text.
	Description string `json:"description,omitempty"`

	// Deadline is when the task is due.
	Deadline time.Time `json:"deadline"`

	// Status is the lifecycle state (use TaskStatus* constants).
	Status string `json:"status"`

	// CompletedAt records when the task transitioned to done.
	// It is cleared when the task is reverted to pending.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`
}

// Done reports whether the task has been completed.
func (t Task) Done() bool { return t.Status == TaskStatusDone }

// ToggleStatus returns a copy of the task with its status flipped and
// the completion timestamp maintained: stamped when the task becomes
// done, cleared when it reverts to pending.
func (t Task) ToggleStatus(now time.Time) Task {
	if t.Done() {
		t.Status = TaskStatusPending
		t.CompletedAt = nil
	} else {
		t.Status = TaskStatusDone
		completed := now
		t.CompletedAt = &completed
	}
	return t
}

// Overdue reports whether the task's deadline has passed without completion.
func (t Task) Overdue(now time.Time) bool {
	return !t.Done() && t.Deadline.Before(now)
}

// DueWithin reports whether the task's deadline falls inside [now, now+d].
// Completed and already-overdue tasks are never due.
func (t Task) DueWithin(now time.Time, d time.Duration) bool {
	if t.Done() || t.Deadline.Before(now) {
		return false
	}
	return !t.Deadline.After(now.Add(d))
}
