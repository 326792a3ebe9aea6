package taskview

import (
	"reflect"
	"testing"
	"time"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

var base = time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)

func taskAt(id string, deadline, created time.Time) model.Task {
	return model.Task{
		ID:        id,
		UserID:    "user-a",
		Title:     "task " + id,
		Deadline:  deadline,
		Status:    model.TaskStatusPending,
		CreatedAt: created,
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestSearchMatching(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Title: "Mua vé máy bay", Description: "chuyến đi Đà Nẵng"},
		{ID: "t2", Title: "Họp nhóm dự án"},
		{ID: "t3", Title: "gửi email", Description: "báo cáo Dự Án quý"},
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"empty search matches everything", "", []string{"t1", "t2", "t3"}},
		{"title match case-insensitive", "HỌP", []string{"t2"}},
		{"description match", "đà nẵng", []string{"t1"}},
		{"title or description", "dự án", []string{"t2", "t3"}},
		{"no match", "deadline", nil},
		{"absent description never matches", "quý", []string{"t3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(tasks, Options{Search: tt.search}))
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply(search=%q) = %v, want %v", tt.search, got, tt.want)
			}
		})
	}
}

func TestStatusFilter(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Status: model.TaskStatusPending},
		{ID: "t2", Status: model.TaskStatusDone},
		{ID: "t3", Status: model.TaskStatusPending},
	}

	tests := []struct {
		name   string
		filter StatusFilter
		want   []string
	}{
		{"all", StatusAll, []string{"t1", "t2", "t3"}},
		{"pending only", StatusPending, []string{"t1", "t3"}},
		{"done only", StatusDone, []string{"t2"}},
		{"zero value behaves as all", "", []string{"t1", "t2", "t3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(tasks, Options{Status: tt.filter}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply(status=%q) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestDeadlineSortOrdersD1D2D3(t *testing.T) {
	d1 := base.Add(1 * time.Hour)
	d2 := base.Add(2 * time.Hour)
	d3 := base.Add(3 * time.Hour)

	// Input deliberately shuffled.
	tasks := []model.Task{
		taskAt("b", d2, base),
		taskAt("c", d3, base),
		taskAt("a", d1, base),
	}

	asc := ids(Apply(tasks, Options{Sort: SortDeadlineAsc}))
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(asc, want) {
		t.Errorf("deadline ascending = %v, want %v", asc, want)
	}

	desc := ids(Apply(tasks, Options{Sort: SortDeadlineDesc}))
	if want := []string{"c", "b", "a"}; !reflect.DeepEqual(desc, want) {
		t.Errorf("deadline descending = %v, want %v", desc, want)
	}
}

func TestCreationSort(t *testing.T) {
	tasks := []model.Task{
		taskAt("old", base.Add(9*time.Hour), base.Add(-2*time.Hour)),
		taskAt("new", base.Add(1*time.Hour), base),
		taskAt("mid", base.Add(5*time.Hour), base.Add(-1*time.Hour)),
	}

	asc := ids(Apply(tasks, Options{Sort: SortCreatedAsc}))
	if want := []string{"old", "mid", "new"}; !reflect.DeepEqual(asc, want) {
		t.Errorf("created ascending = %v, want %v", asc, want)
	}

	desc := ids(Apply(tasks, Options{Sort: SortCreatedDesc}))
	if want := []string{"new", "mid", "old"}; !reflect.DeepEqual(desc, want) {
		t.Errorf("created descending = %v, want %v", desc, want)
	}
}

func TestSortStabilityOnTies(t *testing.T) {
	// Every task shares the same deadline and creation time, so every
	// sort key ties; the input order must survive.
	tasks := []model.Task{
		taskAt("first", base, base),
		taskAt("second", base, base),
		taskAt("third", base, base),
	}
	want := []string{"first", "second", "third"}

	for _, key := range []SortKey{
		SortDeadlineAsc, SortDeadlineDesc, SortCreatedAsc, SortCreatedDesc,
	} {
		got := ids(Apply(tasks, Options{Sort: key}))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("sort %q reordered tied tasks: %v", key, got)
		}
	}
}

func TestComposition(t *testing.T) {
	done := model.Task{
		ID: "d1", Title: "viết tài liệu", Status: model.TaskStatusDone,
		Deadline: base.Add(3 * time.Hour), CreatedAt: base,
	}
	tasks := []model.Task{
		taskAt("p2", base.Add(2*time.Hour), base),
		done,
		taskAt("p1", base.Add(1*time.Hour), base),
		{ID: "x", Title: "không liên quan", Status: model.TaskStatusPending,
			Deadline: base, CreatedAt: base},
	}
	// Rename so the search predicate selects p1, p2 and d1 only.
	tasks[0].Title = "viết báo cáo"
	tasks[2].Title = "viết kế hoạch"

	got := Apply(tasks, Options{
		Search: "viết",
		Status: StatusPending,
		Sort:   SortDeadlineAsc,
	})

	want := []string{"p1", "p2"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("composed pipeline = %v, want %v", ids(got), want)
	}
	for _, task := range got {
		if task.Done() {
			t.Errorf("task %s violates the status predicate", task.ID)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	tasks := []model.Task{
		taskAt("c", base.Add(3*time.Hour), base),
		taskAt("a", base.Add(1*time.Hour), base),
		taskAt("b", base.Add(2*time.Hour), base),
	}
	snapshot := make([]model.Task, len(tasks))
	copy(snapshot, tasks)

	out := Apply(tasks, Options{Sort: SortDeadlineAsc})

	if !reflect.DeepEqual(tasks, snapshot) {
		t.Error("Apply mutated its input slice")
	}
	if len(out) > 0 {
		out[0].Title = "scribbled"
		if tasks[0].Title == "scribbled" || tasks[1].Title == "scribbled" {
			t.Error("result shares backing storage with the input")
		}
	}
}
