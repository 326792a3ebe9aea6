// Package app wires the views, the storage façade, and the reminder
// evaluator into the root Bubble Tea model.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/sirupsen/logrus"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/keys"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/reminder"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/session"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/store"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/theme"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/ui"
	helpview "github.com/MyLuong909/danh-sach-cong-viec/internal/ui/help"
	loginview "github.com/MyLuong909/danh-sach-cong-viec/internal/ui/login"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/ui/notices"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/ui/taskform"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/ui/tasklist"
)

// reminderInterval is how often deadlines are re-evaluated while the
// program sits idle. Every task mutation also triggers an evaluation,
// so this only catches deadlines crossing a threshold by themselves.
const reminderInterval = time.Minute

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewList
	ViewTaskCreate
	ViewTaskEdit
	ViewNotices
	ViewHelp
	ViewConfirmClear
)

// Deps bundles everything the root model needs to run.
type Deps struct {
	Service    *store.Service
	Sessions   *session.Store
	Evaluator  *reminder.Evaluator
	Config     *model.AppConfig
	ConfigPath string
	Logger     *logrus.Logger
	Now        func() time.Time
}

// confirmBindings holds the delete-all confirmation value on the heap
// so huh's Value() pointer stays valid across model copies.
type confirmBindings struct {
	clear bool
}

// Model is the root Bubble Tea model that manages view routing,
// layout, session state, and access to the storage façade.
type Model struct {
	deps   Deps
	keys   *keys.KeyMap
	styles *theme.Styles
	layout ui.Layout

	currentView  ViewState
	previousView ViewState

	user     model.User
	signedIn bool

	tasks         []model.Task
	notifications []model.Notification

	loginView   loginview.Model
	taskList    tasklist.Model
	taskForm    taskform.Model
	noticesView notices.Model
	helpView    helpview.Model

	confirmForm *huh.Form
	cb          *confirmBindings

	tickSeq   int
	statusMsg string
	ready     bool
}

// New creates the root application model. A session left in the
// keyring by a previous run signs the user straight in.
func New(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	k := keys.DefaultKeyMap()
	styles := theme.New(theme.ParseMode(deps.Config.Display.Theme))

	m := Model{
		deps:        deps,
		keys:        k,
		styles:      styles,
		currentView: ViewLogin,
		cb:          &confirmBindings{},
		loginView:   loginview.New(deps.Service, styles, 80, 24),
		taskList:    tasklist.New(k, styles, deps.Now, 80, 24),
		taskForm:    taskform.New(styles, 80, 24),
		noticesView: notices.New(k, styles, deps.Now, 80, 24),
		helpView:    helpview.New(k, styles, 80, 24),
	}

	user, ok, err := deps.Sessions.Current()
	if err != nil {
		deps.Logger.WithError(err).Warn("session restore failed, starting signed out")
	}
	if ok {
		m.user = user
		m.signedIn = true
		m.currentView = ViewList
	}

	return m
}

// Init loads the signed-in user's data or starts the login screen.
func (m Model) Init() tea.Cmd {
	if m.signedIn {
		return tea.Batch(
			m.loadTasks(),
			m.loadNotifications(),
			m.scheduleSweep(),
		)
	}
	return m.loginView.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.taskList.SetSize(w, h)
		m.taskForm.SetSize(w, h)
		m.noticesView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case loginview.LoggedInMsg:
		return m.handleLogin(msg.User)

	case tasksLoadedMsg:
		m.tasks = msg.tasks
		m.taskList.SetTasks(m.tasks)
		return m, m.sweepReminders()

	case notificationsLoadedMsg:
		m.notifications = msg.notifications
		m.noticesView.SetNotices(m.notifications)
		return m, nil

	case sweepDoneMsg:
		if msg.created > 0 {
			return m, m.loadNotifications()
		}
		return m, nil

	case reminderTickMsg:
		if !m.signedIn || msg.seq != m.tickSeq {
			return m, nil
		}
		return m, tea.Batch(m.loadTasks(), m.scheduleSweep())

	case tasklist.ToggleTaskMsg:
		return m.applyTask(msg.Task.ToggleStatus(m.deps.Now()))

	case tasklist.EditTaskMsg:
		m.previousView = m.currentView
		m.currentView = ViewTaskEdit
		return m, m.taskForm.StartEdit(msg.Task)

	case tasklist.DeleteTaskMsg:
		return m.removeTask(msg.Task.ID)

	case taskform.TaskSubmittedMsg:
		m.currentView = ViewList
		task := msg.Task
		if task.UserID == "" {
			task.UserID = m.user.ID
		}
		return m.applyTask(task)

	case taskform.TaskFormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case notices.MarkReadMsg:
		return m.markNoticeRead(msg.ID)

	case notices.MarkAllReadMsg:
		return m.markAllNoticesRead()

	case taskSavedMsg:
		if msg.err != nil {
			m.statusMsg = "Couldn't save the task; the change may not persist."
		} else {
			m.statusMsg = ""
		}
		return m, m.loadTasks()

	case taskDeletedMsg:
		if msg.err != nil {
			m.statusMsg = "Couldn't delete the task; it may come back."
		}
		return m, m.loadTasks()

	case tasksClearedMsg:
		if msg.err != nil {
			m.statusMsg = "Couldn't clear your tasks; reloading."
		}
		return m, m.loadTasks()

	case noticesMarkedMsg:
		if msg.err != nil {
			m.deps.Logger.WithError(msg.err).Warn("marking notifications read failed")
		}
		return m, m.loadNotifications()

	case sessionSavedMsg:
		if msg.err != nil {
			m.deps.Logger.WithError(msg.err).Warn("session not persisted, sign-in won't survive restart")
		}
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			m.deps.Logger.WithError(msg.err).Warn("theme preference not persisted")
		}
		return m, nil

	case tea.KeyMsg:
		if handled, mdl, cmd := m.handleGlobalKeys(msg); handled {
			return mdl, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that act above the views. Text-entry
// surfaces (login, forms, search) see every key untouched.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}

	switch m.currentView {
	case ViewLogin, ViewTaskCreate, ViewTaskEdit, ViewConfirmClear:
		return false, m, nil
	case ViewList:
		if m.taskList.Searching() {
			return false, m, nil
		}
	}

	switch {
	case msg.String() == "q":
		if m.currentView == ViewList {
			return true, m, tea.Quit
		}

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case key.Matches(msg, m.keys.Back):
		if m.currentView == ViewNotices || m.currentView == ViewHelp {
			m.currentView = ViewList
			return true, m, nil
		}

	case key.Matches(msg, m.keys.New):
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewTaskCreate
			return true, m, m.taskForm.StartCreate()
		}

	case key.Matches(msg, m.keys.DeleteAll):
		if m.currentView == ViewList && len(m.tasks) > 0 {
			m.previousView = m.currentView
			m.currentView = ViewConfirmClear
			m.cb.clear = false
			m.confirmForm = m.buildClearConfirm()
			return true, m, m.confirmForm.Init()
		}

	case key.Matches(msg, m.keys.Notifications):
		if m.currentView == ViewNotices {
			m.currentView = ViewList
			return true, m, nil
		}
		if m.currentView == ViewList || m.currentView == ViewHelp {
			m.previousView = m.currentView
			m.currentView = ViewNotices
			return true, m, nil
		}

	case key.Matches(msg, m.keys.Theme):
		if m.currentView == ViewList || m.currentView == ViewNotices || m.currentView == ViewHelp {
			mdl, cmd := m.toggleTheme()
			return true, mdl, cmd
		}

	case key.Matches(msg, m.keys.Logout):
		if m.currentView == ViewList || m.currentView == ViewNotices || m.currentView == ViewHelp {
			mdl, cmd := m.logout()
			return true, mdl, cmd
		}
	}

	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewTaskCreate, ViewTaskEdit:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewNotices:
		m.noticesView, cmd = m.noticesView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewConfirmClear:
		return m.updateClearConfirm(msg)
	}

	return m, cmd
}

// updateClearConfirm drives the delete-all confirmation form.
func (m Model) updateClearConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.confirmForm == nil {
		m.currentView = ViewList
		return m, nil
	}

	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}

	if m.confirmForm.State == huh.StateCompleted {
		m.currentView = ViewList
		if m.cb.clear {
			return m.clearAllTasks()
		}
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.currentView = ViewList
		return m, nil
	}

	return m, cmd
}

func (m Model) buildClearConfirm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete all %d of your tasks?", len(m.tasks))).
				Description("Other accounts on this machine keep theirs.").
				Affirmative("Yes, delete everything").
				Negative("Cancel").
				Value(&m.cb.clear),
		),
	).WithWidth(60)
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.styles, m.headerTitle(), m.sessionLabel())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.styles, m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewList:
		return m.taskList.View()
	case ViewTaskCreate, ViewTaskEdit:
		return m.taskForm.View()
	case ViewNotices:
		return m.noticesView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewConfirmClear:
		if m.confirmForm == nil {
			return ""
		}
		return m.confirmForm.View()
	default:
		return ""
	}
}

// headerTitle shows the app name plus an unread reminder badge.
func (m Model) headerTitle() string {
	unread := 0
	for _, n := range m.notifications {
		if !n.Read {
			unread++
		}
	}
	if unread > 0 {
		return fmt.Sprintf("Công Việc [%d new]", unread)
	}
	return "Công Việc"
}

// sessionLabel is the header's right-hand side: who is signed in.
func (m Model) sessionLabel() string {
	if !m.signedIn {
		return "signed out"
	}
	if m.user.Provider == model.ProviderPassword {
		return m.user.Name
	}
	return fmt.Sprintf("%s · %s", m.user.Name, m.user.Provider)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMsg != "" && m.currentView == ViewList {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewLogin:
		return "enter select | esc back | ctrl+c quit"
	case ViewTaskCreate, ViewTaskEdit:
		return "enter submit | esc cancel"
	case ViewNotices:
		return "enter mark read | a mark all | b/esc back | t theme | L log out"
	case ViewHelp:
		return "? close help | esc back"
	case ViewConfirmClear:
		return "enter confirm | esc cancel"
	default:
		return "q quit | ? help | n new | x done | / search | f filter | tab sort | b bell"
	}
}
