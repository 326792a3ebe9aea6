package tasklist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/reminder"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	return fmt.Sprintf("%s | %s", i.Task.Status, i.Task.Deadline.Format("Jan 02 15:04"))
}

// ItemDelegate implements list.ItemDelegate for rendering task rows.
type ItemDelegate struct {
	styles *theme.Styles
	now    func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}

	task := ti.Task
	now := d.now()

	// Prefix: ✓ for done, ○ for pending
	var prefix string
	if task.Done() {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	statusBadge := d.styles.StatusStyle(task.Status).Render(task.Status)

	due := d.styles.Deadline.Render(" " + dueLabel(now, task.Deadline))

	urgency := ""
	switch {
	case task.Overdue(now):
		urgency = d.styles.Overdue.Render(" OVERDUE")
	case !task.Done() && task.DueWithin(now, reminder.Window):
		urgency = d.styles.Deadline.Render(" due soon")
	}

	line := fmt.Sprintf("%s %s %s%s%s", prefix, statusBadge, task.Title, due, urgency)

	// Dim completed items
	if task.Done() {
		line = d.styles.Dimmed.Render(line)
	}

	if index == m.Index() {
		line = d.styles.SelectedItem.Render(line)
	} else {
		line = d.styles.ListItem.Render(line)
	}

	fmt.Fprint(w, line)
}

// dueLabel returns a compact label for a deadline relative to now.
func dueLabel(now, deadline time.Time) string {
	if deadline.IsZero() {
		return ""
	}

	d := deadline.Sub(now)
	switch {
	case d < 0:
		return deadline.Format("Jan 02 15:04")
	case d < time.Minute:
		return "due now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "due in 1m"
		}
		return fmt.Sprintf("due in %dm", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "due in 1h"
		}
		return fmt.Sprintf("due in %dh", hrs)
	default:
		return "due " + deadline.Format("Jan 02")
	}
}
