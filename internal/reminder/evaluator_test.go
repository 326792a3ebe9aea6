package reminder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/kv"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/store"
)

var sweepStart = time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)

// recordingMailer counts sends instead of writing files.
type recordingMailer struct {
	sends []string
	err   error
}

func (m *recordingMailer) Send(_ model.User, subject, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sends = append(m.sends, subject)
	return "outbox/" + subject + ".eml", nil
}

// failingStore rejects every notification write.
type failingStore struct{ err error }

func (s *failingStore) AddNotification(context.Context, model.Notification) error {
	return s.err
}

// newFixture wires an evaluator to a real façade over an in-memory
// backend, with a movable clock shared by both.
func newFixture(t *testing.T) (*Evaluator, *store.Service, *recordingMailer, *time.Time) {
	t.Helper()

	now := sweepStart
	clock := func() time.Time { return now }

	svc := store.New(kv.NewMemoryStore(), store.Options{Now: clock})
	mailer := &recordingMailer{}
	ev := New(svc, mailer, Options{Now: clock})
	return ev, svc, mailer, &now
}

var sweepUser = model.User{
	ID:       "user-a",
	Name:     "alice",
	Email:    "alice@congviec.local",
	Provider: model.ProviderPassword,
}

func TestSweepUpcomingThenOverdue(t *testing.T) {
	ctx := context.Background()
	ev, svc, mailer, now := newFixture(t)

	task, err := svc.SaveTask(ctx, model.Task{
		UserID:   sweepUser.ID,
		Title:    "Nộp hồ sơ",
		Deadline: sweepStart.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	tasks, _ := svc.Tasks(ctx, sweepUser.ID)

	// First sweep raises exactly one upcoming notification.
	created := ev.Sweep(ctx, sweepUser, tasks, nil)
	if len(created) != 1 {
		t.Fatalf("first sweep created %d notifications, want 1", len(created))
	}
	if created[0].Kind != model.NotificationUpcoming {
		t.Errorf("Kind = %q, want %q", created[0].Kind, model.NotificationUpcoming)
	}
	if created[0].TaskID != task.ID {
		t.Errorf("TaskID = %q, want %q", created[0].TaskID, task.ID)
	}
	if !created[0].EmailSent {
		t.Error("EmailSent should be recorded as true")
	}
	if created[0].Read {
		t.Error("new notifications must start unread")
	}
	if len(mailer.sends) != 1 {
		t.Errorf("mailer recorded %d sends, want 1", len(mailer.sends))
	}

	// Re-running with unchanged inputs is a no-op.
	existing, _ := svc.Notifications(ctx, sweepUser.ID)
	if again := ev.Sweep(ctx, sweepUser, tasks, existing); len(again) != 0 {
		t.Fatalf("idempotent re-sweep created %d notifications, want 0", len(again))
	}

	// Move past the deadline: one additional overdue, never a second upcoming.
	*now = sweepStart.Add(3 * time.Hour)
	existing, _ = svc.Notifications(ctx, sweepUser.ID)
	created = ev.Sweep(ctx, sweepUser, tasks, existing)
	if len(created) != 1 {
		t.Fatalf("post-deadline sweep created %d notifications, want 1", len(created))
	}
	if created[0].Kind != model.NotificationOverdue {
		t.Errorf("Kind = %q, want %q", created[0].Kind, model.NotificationOverdue)
	}

	all, _ := svc.Notifications(ctx, sweepUser.ID)
	if len(all) != 2 {
		t.Fatalf("stored %d notifications total, want 2", len(all))
	}

	// And one more sweep stays quiet.
	if again := ev.Sweep(ctx, sweepUser, tasks, all); len(again) != 0 {
		t.Errorf("final re-sweep created %d notifications, want 0", len(again))
	}
}

func TestSweepClassification(t *testing.T) {
	tests := []struct {
		name     string
		deadline time.Time
		status   string
		wantKind model.NotificationKind
		wantNone bool
	}{
		{"past deadline is overdue", sweepStart.Add(-time.Minute), model.TaskStatusPending, model.NotificationOverdue, false},
		{"within a day is upcoming", sweepStart.Add(23 * time.Hour), model.TaskStatusPending, model.NotificationUpcoming, false},
		{"exactly now is upcoming", sweepStart, model.TaskStatusPending, model.NotificationUpcoming, false},
		{"beyond a day is quiet", sweepStart.Add(25 * time.Hour), model.TaskStatusPending, "", true},
		{"done tasks are exempt", sweepStart.Add(-time.Hour), model.TaskStatusDone, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			ev, svc, _, _ := newFixture(t)

			if _, err := svc.SaveTask(ctx, model.Task{
				UserID:   sweepUser.ID,
				Title:    "task",
				Deadline: tt.deadline,
				Status:   tt.status,
			}); err != nil {
				t.Fatalf("SaveTask: %v", err)
			}
			tasks, _ := svc.Tasks(ctx, sweepUser.ID)

			created := ev.Sweep(ctx, sweepUser, tasks, nil)
			if tt.wantNone {
				if len(created) != 0 {
					t.Fatalf("created %d notifications, want 0", len(created))
				}
				return
			}
			if len(created) != 1 {
				t.Fatalf("created %d notifications, want 1", len(created))
			}
			if created[0].Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", created[0].Kind, tt.wantKind)
			}
		})
	}
}

func TestSweepIgnoresOtherUsersTasks(t *testing.T) {
	ctx := context.Background()
	ev, _, _, _ := newFixture(t)

	tasks := []model.Task{
		{ID: "t1", UserID: "someone-else", Title: "not mine",
			Deadline: sweepStart.Add(-time.Hour), Status: model.TaskStatusPending},
	}

	if created := ev.Sweep(ctx, sweepUser, tasks, nil); len(created) != 0 {
		t.Errorf("sweep notified on another user's task: %+v", created)
	}
}

func TestSweepMessageText(t *testing.T) {
	ctx := context.Background()
	ev, svc, _, _ := newFixture(t)

	if _, err := svc.SaveTask(ctx, model.Task{
		UserID:   sweepUser.ID,
		Title:    "Gia hạn hộ chiếu",
		Deadline: sweepStart.Add(-time.Hour),
	}); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	tasks, _ := svc.Tasks(ctx, sweepUser.ID)

	created := ev.Sweep(ctx, sweepUser, tasks, nil)
	if len(created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(created))
	}
	msg := created[0].Message
	if !strings.Contains(msg, "Gia hạn hộ chiếu") || !strings.Contains(msg, "overdue") {
		t.Errorf("message %q should name the task and the condition", msg)
	}
}

func TestSweepSurvivesMailerFailure(t *testing.T) {
	ctx := context.Background()
	now := sweepStart
	clock := func() time.Time { return now }

	svc := store.New(kv.NewMemoryStore(), store.Options{Now: clock})
	mailer := &recordingMailer{err: errors.New("outbox unwritable")}
	ev := New(svc, mailer, Options{Now: clock})

	if _, err := svc.SaveTask(ctx, model.Task{
		UserID:   sweepUser.ID,
		Title:    "task",
		Deadline: sweepStart.Add(time.Hour),
	}); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	tasks, _ := svc.Tasks(ctx, sweepUser.ID)

	created := ev.Sweep(ctx, sweepUser, tasks, nil)
	if len(created) != 1 {
		t.Fatalf("mailer failure should not block the notification, got %d", len(created))
	}

	stored, _ := svc.Notifications(ctx, sweepUser.ID)
	if len(stored) != 1 {
		t.Errorf("stored %d notifications, want 1", len(stored))
	}
}

func TestSweepSkipsFailedPersistence(t *testing.T) {
	ctx := context.Background()
	ev := New(
		&failingStore{err: errors.New("write refused")},
		&recordingMailer{},
		Options{Now: func() time.Time { return sweepStart }},
	)

	tasks := []model.Task{
		{ID: "t1", UserID: sweepUser.ID, Title: "task",
			Deadline: sweepStart.Add(time.Hour), Status: model.TaskStatusPending},
	}

	if created := ev.Sweep(ctx, sweepUser, tasks, nil); len(created) != 0 {
		t.Errorf("failed persistence must not count as created, got %d", len(created))
	}
}
