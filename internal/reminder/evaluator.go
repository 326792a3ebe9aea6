// Package reminder evaluates task deadlines and raises the
// notifications shown in the bell view. Evaluation runs after every
// change to the task collection and is idempotent: each (task, kind)
// pair is notified at most once over the task's life.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/logging"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

// Window is how far ahead a deadline may sit and still count as upcoming.
const Window = 24 * time.Hour

// Store is the slice of the storage façade the evaluator writes through.
type Store interface {
	AddNotification(ctx context.Context, n model.Notification) error
}

// Mailer records the simulated email send for a raised notification.
type Mailer interface {
	Send(to model.User, subject, body string) (string, error)
}

// Options tunes an Evaluator beyond its defaults.
type Options struct {
	Logger *logrus.Logger
	Now    func() time.Time
}

// Evaluator classifies tasks by time-to-deadline and persists a fresh
// notification for each classification not yet on record.
type Evaluator struct {
	store  Store
	mailer Mailer
	logger *logrus.Logger
	now    func() time.Time
}

// New creates an Evaluator writing through store and mailer.
func New(store Store, mailer Mailer, opts Options) *Evaluator {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Evaluator{
		store:  store,
		mailer: mailer,
		logger: logger,
		now:    now,
	}
}

// Sweep scans the user's tasks, classifies each non-done one by
// time-to-deadline, and persists a notification for every (task, kind)
// pair missing from existing. The caller passes its current notification
// list; newly created notifications are returned so the caller knows to
// reload. Persistence failures are logged and skipped; the sweep itself
// never fails.
func (e *Evaluator) Sweep(
	ctx context.Context,
	user model.User,
	tasks []model.Task,
	existing []model.Notification,
) []model.Notification {
	seen := make(map[string]bool, len(existing))
	for _, n := range existing {
		if n.UserID == user.ID {
			seen[dedupKey(n.TaskID, n.Kind)] = true
		}
	}

	now := e.now()
	var created []model.Notification
	for _, t := range tasks {
		if t.UserID != user.ID || t.Done() {
			continue
		}

		kind, ok := classify(t, now)
		if !ok || seen[dedupKey(t.ID, kind)] {
			continue
		}

		n := model.Notification{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			TaskID:    t.ID,
			Message:   message(t, kind),
			Kind:      kind,
			Read:      false,
			EmailSent: true,
			CreatedAt: now,
		}
		if err := e.store.AddNotification(ctx, n); err != nil {
			e.logger.WithError(err).WithField("task_id", t.ID).
				Error("persisting deadline notification failed")
			continue
		}
		seen[dedupKey(t.ID, kind)] = true
		created = append(created, n)

		if _, err := e.mailer.Send(user, subject(t, kind), body(user, t, kind)); err != nil {
			e.logger.WithError(err).WithField("task_id", t.ID).
				Error("recording notification email failed")
		}
	}

	return created
}

// classify maps time-to-deadline onto a notification kind. A deadline
// strictly in the past is overdue; one inside the upcoming window is
// upcoming; anything farther out classifies as nothing.
func classify(t model.Task, now time.Time) (model.NotificationKind, bool) {
	switch {
	case t.Deadline.Before(now):
		return model.NotificationOverdue, true
	case !t.Deadline.After(now.Add(Window)):
		return model.NotificationUpcoming, true
	default:
		return "", false
	}
}

func dedupKey(taskID string, kind model.NotificationKind) string {
	return taskID + "|" + string(kind)
}

// message is the in-app notification text.
func message(t model.Task, kind model.NotificationKind) string {
	when := t.Deadline.Format("Jan 02 15:04")
	if kind == model.NotificationOverdue {
		return fmt.Sprintf("Task %q is overdue (deadline was %s).", t.Title, when)
	}
	return fmt.Sprintf("Task %q is due soon (deadline %s).", t.Title, when)
}

// subject is the simulated email subject line.
func subject(t model.Task, kind model.NotificationKind) string {
	if kind == model.NotificationOverdue {
		return "Overdue: " + t.Title
	}
	return "Due soon: " + t.Title
}

// body is the simulated email body.
func body(user model.User, t model.Task, kind model.NotificationKind) string {
	verb := "is due soon"
	if kind == model.NotificationOverdue {
		verb = "is overdue"
	}
	text := fmt.Sprintf(
		"Hi %s,\n\nYour task %q %s.\nDeadline: %s\n",
		user.Name, t.Title, verb, t.Deadline.Format("Mon, 02 Jan 2006 15:04"),
	)
	if t.Description != "" {
		text += "\n" + t.Description + "\n"
	}
	return text + "\nCông Việc\n"
}
