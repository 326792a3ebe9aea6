package model

import "time"

// NotificationKind classifies why a notification was raised.
type NotificationKind string

const (
	// NotificationUpcoming marks a task whose deadline is less than a day away.
	NotificationUpcoming NotificationKind = "upcoming"

	// NotificationOverdue marks a task whose deadline has passed.
	NotificationOverdue NotificationKind = "overdue"
)

// Notification represents a deadline alert surfaced to the user
// about one of their tasks. At most one notification exists per
// (UserID, TaskID, Kind) triple; the store enforces this with an
// existence check at write time.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// UserID identifies the owning account.
	UserID string `json:"user_id"`

	// TaskID links this notification to the originating task.
	TaskID string `json:"task_id"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Kind records the deadline classification that raised this
	// notification (use Notification* constants).
	Kind NotificationKind `json:"kind"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// EmailSent records whether an email for this notification was
	// handed to the outbox.
	EmailSent bool `json:"email_sent"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
