package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

// tasksLoadedMsg carries the user's reloaded task collection.
type tasksLoadedMsg struct {
	tasks []model.Task
}

// notificationsLoadedMsg carries the user's reloaded notifications.
type notificationsLoadedMsg struct {
	notifications []model.Notification
}

// taskSavedMsg is sent after a task upsert completes.
type taskSavedMsg struct {
	task model.Task
	err  error
}

// taskDeletedMsg is sent after a single task delete completes.
type taskDeletedMsg struct {
	id  string
	err error
}

// tasksClearedMsg is sent after a delete-all completes.
type tasksClearedMsg struct {
	err error
}

// noticesMarkedMsg is sent after a mark-read write completes.
type noticesMarkedMsg struct {
	err error
}

// sweepDoneMsg reports how many notifications a deadline sweep raised.
type sweepDoneMsg struct {
	created int
}

// reminderTickMsg fires the periodic deadline re-evaluation. The
// sequence number ties it to the sign-in that scheduled it, so a stale
// chain dies out after logout.
type reminderTickMsg struct {
	seq int
	at  time.Time
}

// loadTasks reloads the signed-in user's tasks from the store.
func (m Model) loadTasks() tea.Cmd {
	svc := m.deps.Service
	userID := m.user.ID
	return func() tea.Msg {
		tasks, err := svc.Tasks(context.Background(), userID)
		if err != nil {
			tasks = nil
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

// loadNotifications reloads the signed-in user's notifications.
func (m Model) loadNotifications() tea.Cmd {
	svc := m.deps.Service
	userID := m.user.ID
	return func() tea.Msg {
		notifications, err := svc.Notifications(context.Background(), userID)
		if err != nil {
			notifications = nil
		}
		return notificationsLoadedMsg{notifications: notifications}
	}
}

// applyTask updates the in-memory collection immediately and persists
// in the background; the later reload reconciles whatever the store
// actually kept.
func (m Model) applyTask(task model.Task) (tea.Model, tea.Cmd) {
	if task.ID != "" {
		updated := make([]model.Task, len(m.tasks))
		copy(updated, m.tasks)

		found := false
		for i := range updated {
			if updated[i].ID == task.ID {
				updated[i] = task
				found = true
				break
			}
		}
		if !found {
			updated = append(updated, task)
		}

		m.tasks = updated
		m.taskList.SetTasks(m.tasks)
	}

	return m, m.saveTask(task)
}

// removeTask drops the task from the visible list immediately, then
// persists the delete.
func (m Model) removeTask(id string) (tea.Model, tea.Cmd) {
	kept := make([]model.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
	m.taskList.SetTasks(m.tasks)

	return m, m.deleteTask(id)
}

// clearAllTasks empties the visible list and persists the bulk delete.
func (m Model) clearAllTasks() (tea.Model, tea.Cmd) {
	m.tasks = nil
	m.taskList.SetTasks(nil)

	svc := m.deps.Service
	userID := m.user.ID
	return m, func() tea.Msg {
		err := svc.DeleteAllTasks(context.Background(), userID)
		return tasksClearedMsg{err: err}
	}
}

func (m Model) saveTask(task model.Task) tea.Cmd {
	svc := m.deps.Service
	return func() tea.Msg {
		saved, err := svc.SaveTask(context.Background(), task)
		return taskSavedMsg{task: saved, err: err}
	}
}

func (m Model) deleteTask(id string) tea.Cmd {
	svc := m.deps.Service
	return func() tea.Msg {
		err := svc.DeleteTask(context.Background(), id)
		return taskDeletedMsg{id: id, err: err}
	}
}

// markNoticeRead flips the flag in memory, then persists it.
func (m Model) markNoticeRead(id string) (tea.Model, tea.Cmd) {
	updated := make([]model.Notification, len(m.notifications))
	copy(updated, m.notifications)
	for i := range updated {
		if updated[i].ID == id {
			updated[i].Read = true
			break
		}
	}
	m.notifications = updated
	m.noticesView.SetNotices(m.notifications)

	svc := m.deps.Service
	return m, func() tea.Msg {
		err := svc.MarkNotificationRead(context.Background(), id)
		return noticesMarkedMsg{err: err}
	}
}

// markAllNoticesRead flips every flag in memory, then persists them.
func (m Model) markAllNoticesRead() (tea.Model, tea.Cmd) {
	updated := make([]model.Notification, len(m.notifications))
	copy(updated, m.notifications)
	for i := range updated {
		updated[i].Read = true
	}
	m.notifications = updated
	m.noticesView.SetNotices(m.notifications)

	svc := m.deps.Service
	userID := m.user.ID
	return m, func() tea.Msg {
		err := svc.MarkAllNotificationsRead(context.Background(), userID)
		return noticesMarkedMsg{err: err}
	}
}

// sweepReminders evaluates deadlines against the freshly loaded tasks.
// The evaluator deduplicates against what the store already holds, so
// running it on every load is harmless.
func (m Model) sweepReminders() tea.Cmd {
	evaluator := m.deps.Evaluator
	user := m.user
	tasks := m.tasks
	existing := m.notifications
	return func() tea.Msg {
		created := evaluator.Sweep(context.Background(), user, tasks, existing)
		return sweepDoneMsg{created: len(created)}
	}
}

// scheduleSweep arms the next periodic deadline evaluation.
func (m Model) scheduleSweep() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(reminderInterval, func(t time.Time) tea.Msg {
		return reminderTickMsg{seq: seq, at: t}
	})
}
