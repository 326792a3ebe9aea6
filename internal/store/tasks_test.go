package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/kv"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

// testClock is the fixed instant used across store tests.
var testClock = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

// newTestService builds a Service on a fresh in-memory backend with a
// fixed clock and no artificial latency.
func newTestService(t *testing.T) (*Service, kv.Store) {
	t.Helper()
	backend := kv.NewMemoryStore()
	svc := New(backend, Options{Now: func() time.Time { return testClock }})
	return svc, backend
}

func TestSaveTaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	completed := testClock.Add(-time.Hour)
	task := model.Task{
		ID:          "task-1",
		UserID:      "user-a",
		Title:       "Nộp báo cáo tuần",
		Description: "Gửi cho trưởng nhóm trước buổi họp",
		Deadline:    testClock.Add(48 * time.Hour),
		Status:      model.TaskStatusDone,
		CompletedAt: &completed,
		CreatedAt:   testClock.Add(-24 * time.Hour),
	}

	saved, err := svc.SaveTask(ctx, task)
	if err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	if !reflect.DeepEqual(saved, task) {
		t.Errorf("SaveTask returned %+v, want %+v", saved, task)
	}

	tasks, err := svc.Tasks(ctx, "user-a")
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if !reflect.DeepEqual(tasks[0], task) {
		t.Errorf("fetched %+v, want %+v", tasks[0], task)
	}
}

func TestSaveTaskAssignsDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	saved, err := svc.SaveTask(ctx, model.Task{
		UserID:   "user-a",
		Title:    "Mua quà sinh nhật",
		Deadline: testClock.Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	if saved.ID == "" {
		t.Error("expected a generated ID")
	}
	if !saved.CreatedAt.Equal(testClock) {
		t.Errorf("CreatedAt = %v, want %v", saved.CreatedAt, testClock)
	}
	if saved.Status != model.TaskStatusPending {
		t.Errorf("Status = %q, want %q", saved.Status, model.TaskStatusPending)
	}

	// A second save must not mint a second ID.
	again, err := svc.SaveTask(ctx, model.Task{UserID: "user-a", Title: "Khác"})
	if err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	if again.ID == saved.ID {
		t.Error("two created tasks share an ID")
	}
}

func TestSaveTaskUpsertKeepsCollectionSize(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	seed := []model.Task{
		{ID: "t1", UserID: "user-a", Title: "one", CreatedAt: testClock},
		{ID: "t2", UserID: "user-a", Title: "two", CreatedAt: testClock},
		{ID: "t3", UserID: "user-b", Title: "three", CreatedAt: testClock},
	}
	for _, task := range seed {
		if _, err := svc.SaveTask(ctx, task); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	updated := seed[1]
	updated.Title = "two, renamed"
	if _, err := svc.SaveTask(ctx, updated); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	a, _ := svc.Tasks(ctx, "user-a")
	b, _ := svc.Tasks(ctx, "user-b")
	if len(a)+len(b) != 3 {
		t.Fatalf("collection size changed: got %d tasks, want 3", len(a)+len(b))
	}

	var found bool
	for _, task := range a {
		switch task.ID {
		case "t2":
			found = true
			if task.Title != "two, renamed" {
				t.Errorf("t2 title = %q, want %q", task.Title, "two, renamed")
			}
		case "t1":
			if task.Title != "one" {
				t.Errorf("t1 was disturbed by upsert of t2: title = %q", task.Title)
			}
		}
	}
	if !found {
		t.Error("updated task t2 missing from owner's tasks")
	}
	if len(b) != 1 || b[0].Title != "three" {
		t.Errorf("user-b's task was disturbed: %+v", b)
	}
}

func TestTasksOwnerFilter(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, task := range []model.Task{
		{ID: "t1", UserID: "user-a", Title: "mine"},
		{ID: "t2", UserID: "user-b", Title: "theirs"},
		{ID: "t3", UserID: "user-a", Title: "also mine"},
	} {
		if _, err := svc.SaveTask(ctx, task); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	tasks, err := svc.Tasks(ctx, "user-a")
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.UserID != "user-a" {
			t.Errorf("task %s belongs to %s, expected user-a only", task.ID, task.UserID)
		}
	}
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, task := range []model.Task{
		{ID: "t1", UserID: "user-a"},
		{ID: "t2", UserID: "user-a"},
	} {
		if _, err := svc.SaveTask(ctx, task); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	if err := svc.DeleteTask(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	tasks, _ := svc.Tasks(ctx, "user-a")
	if len(tasks) != 1 || tasks[0].ID != "t2" {
		t.Errorf("after delete got %+v, want only t2", tasks)
	}

	// Deleting an unknown ID succeeds silently.
	if err := svc.DeleteTask(ctx, "no-such-task"); err != nil {
		t.Errorf("DeleteTask of absent id: %v", err)
	}
}

func TestDeleteAllTasksOwnerIsolation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, task := range []model.Task{
		{ID: "t1", UserID: "user-a"},
		{ID: "t2", UserID: "user-b"},
		{ID: "t3", UserID: "user-a"},
		{ID: "t4", UserID: "user-c"},
		{ID: "t5", UserID: "user-a"},
	} {
		if _, err := svc.SaveTask(ctx, task); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	if err := svc.DeleteAllTasks(ctx, "user-a"); err != nil {
		t.Fatalf("DeleteAllTasks: %v", err)
	}

	if remaining, _ := svc.Tasks(ctx, "user-a"); len(remaining) != 0 {
		t.Errorf("user-a still has %d tasks", len(remaining))
	}
	if b, _ := svc.Tasks(ctx, "user-b"); len(b) != 1 {
		t.Errorf("user-b's tasks were touched: %+v", b)
	}
	if c, _ := svc.Tasks(ctx, "user-c"); len(c) != 1 {
		t.Errorf("user-c's tasks were touched: %+v", c)
	}
}

func TestTasksCorruptBlobReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, backend := newTestService(t)

	corrupt := []string{
		"{not json",
		`"a string, not an array"`,
		`{"an":"object"}`,
	}
	for _, payload := range corrupt {
		if err := backend.Set(ctx, tasksKey, payload); err != nil {
			t.Fatalf("seeding corrupt blob: %v", err)
		}
		tasks, err := svc.Tasks(ctx, "user-a")
		if err != nil {
			t.Errorf("payload %q: corruption surfaced as error: %v", payload, err)
		}
		if len(tasks) != 0 {
			t.Errorf("payload %q: got %d tasks, want 0", payload, len(tasks))
		}
	}

	// A save on top of a corrupt blob starts a fresh collection.
	if _, err := svc.SaveTask(ctx, model.Task{ID: "t1", UserID: "user-a"}); err != nil {
		t.Fatalf("SaveTask over corrupt blob: %v", err)
	}
	tasks, _ := svc.Tasks(ctx, "user-a")
	if len(tasks) != 1 {
		t.Errorf("got %d tasks after recovery, want 1", len(tasks))
	}
}

func TestOperationsProceedWithCancelledContext(t *testing.T) {
	svc := New(kv.NewMemoryStore(), Options{
		LatencyMin: 50 * time.Millisecond,
		LatencyMax: 100 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if _, err := svc.SaveTask(ctx, model.Task{ID: "t1", UserID: "user-a"}); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 40*time.Millisecond {
		t.Errorf("cancelled context should skip the latency wait, took %v", elapsed)
	}

	tasks, err := svc.Tasks(ctx, "user-a")
	if err != nil || len(tasks) != 1 {
		t.Errorf("Tasks after cancelled-context save: %v (%d tasks)", err, len(tasks))
	}
}
