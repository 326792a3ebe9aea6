// Package login renders the sign-in screen: a provider menu, the
// username/password forms, and the busy state while the account store
// answers.
package login

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/store"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/theme"
)

// Mode represents the current state of the login view.
type Mode int

const (
	ModeMenu     Mode = iota // Choose how to sign in
	ModeSignIn               // Username/password form
	ModeRegister             // New account form
	ModeBusy                 // Waiting on the account store
)

const (
	actionSignIn   = "signin"
	actionRegister = "register"
	actionGoogle   = "google"
	actionGitHub   = "github"
)

// LoggedInMsg signals a successful sign-in.
type LoggedInMsg struct {
	User model.User
}

// authResultMsg carries the outcome of a sign-in or registration attempt.
type authResultMsg struct {
	user model.User
	err  error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	action   string
	username string
	password string
}

// Model is the Bubble Tea model for the login screen.
type Model struct {
	mode       Mode
	returnMode Mode
	service    *store.Service
	styles     *theme.Styles

	menuForm *huh.Form
	authForm *huh.Form
	fb       *formBindings

	spinner   spinner.Model
	busyLabel string
	statusMsg string

	width  int
	height int
}

// New creates a login model showing the provider menu.
func New(service *store.Service, styles *theme.Styles, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		mode:    ModeMenu,
		service: service,
		styles:  styles,
		fb:      &formBindings{},
		spinner: sp,
		width:   width,
		height:  height,
	}
	m.menuForm = m.buildMenuForm()
	return m
}

// Init starts the provider menu.
func (m Model) Init() tea.Cmd {
	return m.menuForm.Init()
}

// Update handles messages for the login screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		return m.handleAuthResult(msg)

	case spinner.TickMsg:
		if m.mode == ModeBusy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.mode {
	case ModeMenu:
		return m.updateMenu(msg)
	case ModeSignIn, ModeRegister:
		return m.updateAuthForm(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.Msg) (Model, tea.Cmd) {
	if m.menuForm == nil {
		return m, nil
	}

	mdl, cmd := m.menuForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.menuForm = f
	}

	if m.menuForm.State == huh.StateCompleted {
		return m.handleMenuChoice()
	}
	if m.menuForm.State == huh.StateAborted {
		m.menuForm = m.buildMenuForm()
		return m, m.menuForm.Init()
	}

	return m, cmd
}

func (m Model) handleMenuChoice() (Model, tea.Cmd) {
	m.statusMsg = ""

	switch m.fb.action {
	case actionSignIn:
		m.mode = ModeSignIn
		m.fb.password = ""
		m.authForm = m.buildAuthForm("Sign in")
		return m, m.authForm.Init()

	case actionRegister:
		m.mode = ModeRegister
		m.fb.username = ""
		m.fb.password = ""
		m.authForm = m.buildAuthForm("Create account")
		return m, m.authForm.Init()

	case actionGoogle:
		return m.startBusy(ModeMenu, "Contacting Google...",
			m.loginCmd(model.ProviderGoogle, "", ""))

	case actionGitHub:
		return m.startBusy(ModeMenu, "Contacting GitHub...",
			m.loginCmd(model.ProviderGitHub, "", ""))
	}

	m.menuForm = m.buildMenuForm()
	return m, m.menuForm.Init()
}

func (m Model) updateAuthForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.authForm == nil {
		return m, nil
	}

	mdl, cmd := m.authForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.authForm = f
	}

	if m.authForm.State == huh.StateCompleted {
		if m.mode == ModeRegister {
			return m.startBusy(ModeRegister, "Creating your account...",
				m.registerCmd(m.fb.username, m.fb.password))
		}
		return m.startBusy(ModeSignIn, "Signing in...",
			m.loginCmd(model.ProviderPassword, m.fb.username, m.fb.password))
	}
	if m.authForm.State == huh.StateAborted {
		m.mode = ModeMenu
		m.statusMsg = ""
		m.menuForm = m.buildMenuForm()
		return m, m.menuForm.Init()
	}

	return m, cmd
}

// startBusy switches to the busy state, remembering where to return on
// failure.
func (m Model) startBusy(returnMode Mode, label string, cmd tea.Cmd) (Model, tea.Cmd) {
	m.mode = ModeBusy
	m.returnMode = returnMode
	m.busyLabel = label
	return m, tea.Batch(m.spinner.Tick, cmd)
}

func (m Model) handleAuthResult(msg authResultMsg) (Model, tea.Cmd) {
	if msg.err == nil {
		user := msg.user
		return m, func() tea.Msg { return LoggedInMsg{User: user} }
	}

	m.statusMsg = friendlyAuthError(msg.err)

	switch m.returnMode {
	case ModeSignIn:
		m.mode = ModeSignIn
		m.fb.password = ""
		m.authForm = m.buildAuthForm("Sign in")
		return m, m.authForm.Init()
	case ModeRegister:
		m.mode = ModeRegister
		m.fb.password = ""
		m.authForm = m.buildAuthForm("Create account")
		return m, m.authForm.Init()
	default:
		m.mode = ModeMenu
		m.menuForm = m.buildMenuForm()
		return m, m.menuForm.Init()
	}
}

// View renders the login screen.
func (m Model) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.styles.ColorBlue).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("Công Việc"))
	b.WriteString("\n")
	b.WriteString(m.styles.Dimmed.Render("Your tasks, your terminal."))
	b.WriteString("\n\n")

	if m.statusMsg != "" {
		b.WriteString(m.styles.ErrorText.Render(m.statusMsg))
		b.WriteString("\n\n")
	}

	switch m.mode {
	case ModeMenu:
		if m.menuForm != nil {
			b.WriteString(m.menuForm.View())
		}
	case ModeSignIn, ModeRegister:
		if m.authForm != nil {
			b.WriteString(m.authForm.View())
		}
	case ModeBusy:
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), m.busyLabel))
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(b.String())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStyles swaps in a new style set.
func (m *Model) SetStyles(styles *theme.Styles) {
	m.styles = styles
}

func (m Model) buildMenuForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome").
				Description("How do you want to sign in?").
				Options(
					huh.NewOption("Sign in with username & password", actionSignIn),
					huh.NewOption("Create a new account", actionRegister),
					huh.NewOption("Continue with Google", actionGoogle),
					huh.NewOption("Continue with GitHub", actionGitHub),
				).
				Value(&m.fb.action),
		),
	).WithWidth(m.formWidth())
}

func (m Model) buildAuthForm(title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Placeholder("username").
				Value(&m.fb.username).
				Validate(validateRequired("Username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
		).Title(title),
	).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

// loginCmd returns a command that attempts a sign-in against the
// account store.
func (m Model) loginCmd(provider model.Provider, username, password string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		user, err := svc.Login(context.Background(), provider, username, password)
		return authResultMsg{user: user, err: err}
	}
}

// registerCmd returns a command that creates a new account.
func (m Model) registerCmd(username, password string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		user, err := svc.Register(context.Background(), username, password)
		return authResultMsg{user: user, err: err}
	}
}

// friendlyAuthError maps store errors onto messages fit for the screen.
func friendlyAuthError(err error) string {
	switch {
	case errors.Is(err, model.ErrUsernameTaken):
		return "That username is already taken."
	case errors.Is(err, model.ErrInvalidCredentials):
		return "Incorrect username or password."
	case errors.Is(err, model.ErrUnknownProvider):
		return "That sign-in provider is not supported."
	default:
		return err.Error()
	}
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
