// Package notices renders the notification center: reminders newest
// first, unread ones highlighted.
package notices

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/keys"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
	"github.com/MyLuong909/danh-sach-cong-viec/internal/theme"
)

// MarkReadMsg asks the application to mark one notification as read.
type MarkReadMsg struct {
	ID string
}

// MarkAllReadMsg asks the application to mark every notification as read.
type MarkAllReadMsg struct{}

// noticeItem wraps a model.Notification for bubbles/list.
type noticeItem struct {
	notice model.Notification
}

func (i noticeItem) FilterValue() string { return i.notice.Message }

// itemDelegate renders notification rows.
type itemDelegate struct {
	styles *theme.Styles
	now    func() time.Time
}

func (d itemDelegate) Height() int  { return 1 }
func (d itemDelegate) Spacing() int { return 0 }

func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ni, ok := item.(noticeItem)
	if !ok {
		return
	}

	n := ni.notice

	marker := " "
	if !n.Read {
		marker = "●"
	}

	kindBadge := d.styles.KindStyle(string(n.Kind)).Render(string(n.Kind))
	age := d.styles.Dimmed.Render(" " + relativeTime(d.now(), n.CreatedAt))

	line := fmt.Sprintf("%s %s %s%s", marker, kindBadge, n.Message, age)

	if n.Read {
		line = d.styles.Dimmed.Render(line)
	}

	if index == m.Index() {
		line = d.styles.SelectedItem.Render(line)
	} else {
		line = d.styles.ListItem.Render(line)
	}

	fmt.Fprint(w, line)
}

// Model is the notification center view.
type Model struct {
	list    list.Model
	keys    *keys.KeyMap
	styles  *theme.Styles
	now     func() time.Time
	notices []model.Notification
	width   int
	height  int
}

// New creates a notification center model.
func New(k *keys.KeyMap, styles *theme.Styles, now func() time.Time, width, height int) Model {
	delegate := itemDelegate{styles: styles, now: now}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Notifications"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = styles.Header

	return Model{
		list:   l,
		keys:   k,
		styles: styles,
		now:    now,
		width:  width,
		height: height,
	}
}

// SetNotices replaces the displayed notifications. The store already
// orders them newest first.
func (m *Model) SetNotices(notices []model.Notification) {
	m.notices = notices

	items := make([]list.Item, len(notices))
	for i, n := range notices {
		items[i] = noticeItem{notice: n}
	}
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("Notifications · %d unread", countUnread(notices))
}

// SetStyles swaps in a new style set.
func (m *Model) SetStyles(styles *theme.Styles) {
	m.styles = styles
	m.list.SetDelegate(itemDelegate{styles: styles, now: m.now})
	m.list.Styles.Title = styles.Header
}

// Update handles messages for the notification center.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Select):
			item, ok := m.list.SelectedItem().(noticeItem)
			if !ok || item.notice.Read {
				return m, nil
			}
			id := item.notice.ID
			return m, func() tea.Msg {
				return MarkReadMsg{ID: id}
			}

		case key.Matches(msg, m.keys.MarkAllRead):
			if countUnread(m.notices) == 0 {
				return m, nil
			}
			return m, func() tea.Msg {
				return MarkAllReadMsg{}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the notification center.
func (m Model) View() string {
	if len(m.notices) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(m.styles.ColorGray).
			Render("No notifications.\n\nReminders appear here when a deadline closes in.")
	}

	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

func countUnread(notices []model.Notification) int {
	unread := 0
	for _, n := range notices {
		if !n.Read {
			unread++
		}
	}
	return unread
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(now, t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}
