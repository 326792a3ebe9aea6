// Package taskview derives the display ordering of a task list from
// search text, a status filter, and a sort key. Derivation is pure: it
// never touches storage and never mutates its input slice.
package taskview

import (
	"sort"
	"strings"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

// StatusFilter narrows the visible tasks by lifecycle state.
type StatusFilter string

const (
	StatusAll     StatusFilter = "all"
	StatusPending StatusFilter = "pending"
	StatusDone    StatusFilter = "done"
)

// SortKey selects the display ordering.
type SortKey string

const (
	SortDeadlineAsc  SortKey = "deadline_asc"
	SortDeadlineDesc SortKey = "deadline_desc"
	SortCreatedAsc   SortKey = "created_asc"
	SortCreatedDesc  SortKey = "created_desc"
)

// Options select and order the visible slice of a task list. The zero
// value shows everything in its stored order.
type Options struct {
	// Search is matched case-insensitively as a substring of the title
	// or the description. Empty matches everything.
	Search string

	// Status keeps all, pending-only, or done-only tasks. Empty is
	// treated as StatusAll.
	Status StatusFilter

	// Sort orders the result. Empty keeps the incoming order.
	Sort SortKey
}

// Apply runs the derivation pipeline: search filter, then status
// filter, then a stable sort. The result is freshly allocated; ties
// under the sort key keep their relative input order.
func Apply(tasks []model.Task, opts Options) []model.Task {
	needle := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if needle != "" && !matchesSearch(t, needle) {
			continue
		}
		if !matchesStatus(t, opts.Status) {
			continue
		}
		out = append(out, t)
	}

	sortTasks(out, opts.Sort)
	return out
}

// matchesSearch reports whether needle occurs in the task's title or
// description. An empty description never matches.
func matchesSearch(t model.Task, needle string) bool {
	if strings.Contains(strings.ToLower(t.Title), needle) {
		return true
	}
	return t.Description != "" &&
		strings.Contains(strings.ToLower(t.Description), needle)
}

func matchesStatus(t model.Task, filter StatusFilter) bool {
	switch filter {
	case StatusPending:
		return !t.Done()
	case StatusDone:
		return t.Done()
	default:
		return true
	}
}

func sortTasks(tasks []model.Task, key SortKey) {
	switch key {
	case SortDeadlineAsc:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Deadline.Before(tasks[j].Deadline)
		})
	case SortDeadlineDesc:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[j].Deadline.Before(tasks[i].Deadline)
		})
	case SortCreatedAsc:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		})
	case SortCreatedDesc:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[j].CreatedAt.Before(tasks[i].CreatedAt)
		})
	}
}
