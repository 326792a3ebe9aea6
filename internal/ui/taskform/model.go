package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/theme"
)

// TaskSubmittedMsg is dispatched when the form is completed. Task
// carries the edited task's identity fields when editing and is blank
// for a new task.
type TaskSubmittedMsg struct {
	Task model.Task
}

// TaskFormCancelMsg is dispatched when the user cancels the form.
type TaskFormCancelMsg struct{}

// deadlineLayouts are the accepted deadline input formats. A date
// without a time means end of that day.
var deadlineLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02",
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	deadline    string
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	base     model.Task
	editMode bool
	styles   *theme.Styles
	width    int
	height   int
}

// New creates a new task form model.
func New(styles *theme.Styles, width, height int) Model {
	return Model{
		fb:     &formBindings{},
		styles: styles,
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new task.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.base = model.Task{}
	m.fb.title = ""
	m.fb.description = ""
	m.fb.deadline = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task. The
// task's identity, status, and timestamps are kept as-is; only the
// content fields are editable.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editMode = true
	m.base = task
	m.fb.title = task.Title
	m.fb.description = task.Description
	m.fb.deadline = task.Deadline.Format("2006-01-02 15:04")
	m.form = m.buildForm()
	return m.form.Init()
}

// SetStyles swaps in a new style set.
func (m *Model) SetStyles(styles *theme.Styles) {
	m.styles = styles
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TaskFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.styles.ColorText).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs to be done?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewInput().
				Title("Deadline").
				Placeholder("YYYY-MM-DD HH:MM").
				Value(&m.fb.deadline).
				Validate(validateDeadline),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	task := m.base
	task.Title = strings.TrimSpace(m.fb.title)
	task.Description = strings.TrimSpace(m.fb.description)

	if deadline, err := parseDeadline(m.fb.deadline); err == nil {
		task.Deadline = deadline
	}

	return func() tea.Msg { return TaskSubmittedMsg{Task: task} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

// parseDeadline parses a deadline in one of the accepted layouts,
// interpreted in the local timezone. A bare date means 23:59 that day.
func parseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range deadlineLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			t = t.Add(23*time.Hour + 59*time.Minute)
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid deadline format, use YYYY-MM-DD HH:MM")
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDeadline(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("deadline is required")
	}
	_, err := parseDeadline(s)
	return err
}
