// Package tasklist renders the task collection with search, status
// filtering, and sorting applied locally. The canonical task slice is
// owned by the root application model; this view only derives from it.
package tasklist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/keys"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/taskview"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/theme"
)

// ToggleTaskMsg asks the application to flip the selected task's status.
type ToggleTaskMsg struct {
	Task model.Task
}

// EditTaskMsg asks the application to open the edit form for a task.
type EditTaskMsg struct {
	Task model.Task
}

// DeleteTaskMsg asks the application to delete a task.
type DeleteTaskMsg struct {
	Task model.Task
}

// sortModes defines the sort keys cycled by Tab. The empty key keeps
// the stored order.
var sortModes = []taskview.SortKey{
	"",
	taskview.SortDeadlineAsc,
	taskview.SortDeadlineDesc,
	taskview.SortCreatedAsc,
	taskview.SortCreatedDesc,
}

// statusModes defines the status filters cycled by f.
var statusModes = []taskview.StatusFilter{
	taskview.StatusAll,
	taskview.StatusPending,
	taskview.StatusDone,
}

// Model is the main task list view component.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	styles      *theme.Styles
	now         func() time.Time
	tasks       []model.Task
	view        taskview.Options
	sortIndex   int
	statusIndex int
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new task list model.
func New(k *keys.KeyMap, styles *theme.Styles, now func() time.Time, width, height int) Model {
	delegate := ItemDelegate{styles: styles, now: now}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = styles.Header

	si := textinput.New()
	si.Placeholder = "search tasks..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		styles:      styles,
		now:         now,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// SetTasks replaces the canonical task slice and re-derives the
// visible items.
func (m *Model) SetTasks(tasks []model.Task) {
	m.tasks = tasks
	m.refresh()
}

// SetStyles swaps in a new style set, used when the theme is toggled.
func (m *Model) SetStyles(styles *theme.Styles) {
	m.styles = styles
	m.list.SetDelegate(ItemDelegate{styles: styles, now: m.now})
	m.list.Styles.Title = styles.Header
}

// ViewOptions returns the active derivation options, for status display.
func (m Model) ViewOptions() taskview.Options {
	return m.view
}

// Searching reports whether the search input currently has focus, so
// the application knows not to intercept keys meant as text.
func (m Model) Searching() bool {
	return m.searchMode
}

// SelectedTask returns the task under the cursor, if any.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// refresh re-derives the visible items from the canonical slice and
// the current view options.
func (m *Model) refresh() {
	visible := taskview.Apply(m.tasks, m.view)

	items := make([]list.Item, len(visible))
	for i, task := range visible {
		items[i] = TaskItem{Task: task}
	}
	m.list.SetItems(items)
	m.list.Title = m.titleLine()
}

// titleLine summarizes the active filters in the list title.
func (m Model) titleLine() string {
	title := fmt.Sprintf("Tasks · %s · %s", statusLabel(m.view.Status), sortLabel(m.view.Sort))
	if m.view.Search != "" {
		title += fmt.Sprintf(" · %q", m.view.Search)
	}
	return title
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	// Delegate to list model for other messages
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.view.Search = m.searchInput.Value()
		m.refresh()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.view.Search = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleFilter):
		m.statusIndex = (m.statusIndex + 1) % len(statusModes)
		m.view.Status = statusModes[m.statusIndex]
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		m.view.Sort = sortModes[m.sortIndex]
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return ToggleTaskMsg{Task: task}
		}

	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Edit):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return EditTaskMsg{Task: task}
		}

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return DeleteTaskMsg{Task: task}
		}
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the task list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(m.styles.ColorText).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(m.styles.ColorGray)

	if len(m.tasks) > 0 {
		return style.Render("No matching tasks.\nTry adjusting your search or filter.")
	}

	return style.Render("No tasks yet.\n\nPress n to create one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}

func statusLabel(f taskview.StatusFilter) string {
	switch f {
	case taskview.StatusPending:
		return "pending"
	case taskview.StatusDone:
		return "done"
	default:
		return "all"
	}
}

func sortLabel(k taskview.SortKey) string {
	switch k {
	case taskview.SortDeadlineAsc:
		return "deadline ↑"
	case taskview.SortDeadlineDesc:
		return "deadline ↓"
	case taskview.SortCreatedAsc:
		return "created ↑"
	case taskview.SortCreatedDesc:
		return "created ↓"
	default:
		return "stored order"
	}
}
