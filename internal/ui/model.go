// Package ui shows short status notices below the current view.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidtouch/vidtouch/internal/tick"
	"github.com/vidtouch/vidtouch/style"
)

// Lifetime is how long a notice stays on screen.
const Lifetime = 3 * time.Second

// NoticeMsg asks the notifier to show Text.
type NoticeMsg struct {
	Text string
}

// ClearNotificationMsg removes the notice it was scheduled for.
type ClearNotificationMsg struct {
	tag int
}

// Notify returns a command delivering text as a notice.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NoticeMsg{Text: text}
	}
}

// Model holds the current notice.
type Model struct {
	notification string
	tag          int
	after        tick.Func
}

// New returns an empty notifier.
func New() *Model {
	return &Model{after: tick.Real}
}

// SetScheduler replaces the timer source.
func (m *Model) SetScheduler(f tick.Func) {
	m.after = f
}

// Notification returns the notice on screen, if any.
func (m *Model) Notification() string {
	return m.notification
}

// Update handles NoticeMsg and ClearNotificationMsg. A newer notice replaces
// the older one and restarts the countdown.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NoticeMsg:
		m.tag++
		m.notification = msg.Text
		return m.after(Lifetime, ClearNotificationMsg{tag: m.tag})
	case ClearNotificationMsg:
		if msg.tag == m.tag {
			m.notification = ""
		}
	}
	return nil
}

// View appends the notice to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
