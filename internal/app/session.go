package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/theme"
	loginview "github.com/MyLuong909/danh-sach-cong-viec/internal/ui/login"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/ui/notices"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/ui/tasklist"
)

// sessionSavedMsg is sent after the keyring session write completes.
type sessionSavedMsg struct {
	err error
}

// themeSavedMsg is sent after the theme preference write completes.
type themeSavedMsg struct {
	err error
}

// handleLogin records the identity, persists the session slot, and
// loads the account's data.
func (m Model) handleLogin(user model.User) (tea.Model, tea.Cmd) {
	m.user = user
	m.signedIn = true
	m.currentView = ViewList
	m.statusMsg = ""
	m.tickSeq++

	m.deps.Logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"provider": user.Provider,
	}).Info("signed in")

	return m, tea.Batch(
		m.saveSession(user),
		m.loadTasks(),
		m.loadNotifications(),
		m.scheduleSweep(),
	)
}

func (m Model) saveSession(user model.User) tea.Cmd {
	sessions := m.deps.Sessions
	return func() tea.Msg {
		return sessionSavedMsg{err: sessions.Save(user)}
	}
}

// logout clears the keyring slot and resets every per-account piece of
// state before returning to the login screen. The list views are
// rebuilt so search text and filters don't leak into the next session.
func (m Model) logout() (tea.Model, tea.Cmd) {
	if err := m.deps.Sessions.Clear(); err != nil {
		m.deps.Logger.WithError(err).Warn("clearing session failed")
	}
	m.deps.Logger.WithField("user_id", m.user.ID).Info("signed out")

	m.user = model.User{}
	m.signedIn = false
	m.tasks = nil
	m.notifications = nil
	m.statusMsg = ""
	m.tickSeq++

	w := m.layout.ContentWidth()
	h := m.layout.ContentHeight()
	m.taskList = tasklist.New(m.keys, m.styles, m.deps.Now, w, h)
	m.noticesView = notices.New(m.keys, m.styles, m.deps.Now, w, h)
	m.loginView = loginview.New(m.deps.Service, m.styles, w, h)

	m.currentView = ViewLogin
	return m, m.loginView.Init()
}

// toggleTheme flips light/dark, restyles every view, and persists the
// preference so the next start comes up the same way.
func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	mode := m.styles.Mode.Toggle()
	m.styles = theme.New(mode)

	m.loginView.SetStyles(m.styles)
	m.taskList.SetStyles(m.styles)
	m.taskForm.SetStyles(m.styles)
	m.noticesView.SetStyles(m.styles)
	m.helpView.SetStyles(m.styles)

	m.deps.Config.Display.Theme = string(mode)

	cfg := m.deps.Config
	path := m.deps.ConfigPath
	return m, func() tea.Msg {
		return themeSavedMsg{err: model.SaveConfig(path, cfg)}
	}
}
