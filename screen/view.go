package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/vidtouch/vidtouch/feedback"
	"github.com/vidtouch/vidtouch/icon"
	"github.com/vidtouch/vidtouch/style"
	"github.com/vidtouch/vidtouch/util"
)

var (
	barStyle      = lipgloss.NewStyle().Foreground(style.Text).Background(style.Surface)
	feedbackStyle = lipgloss.NewStyle().Bold(true).Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
)

// View renders the touch surface: chrome rows while controls are visible and
// the feedback messages in the middle.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	visible := m.Controls.Visible()
	bodyHeight := m.height
	if visible {
		bodyHeight -= topBarRows + bottomBarRows
	}
	bodyHeight = util.Max(bodyHeight, 0)

	lines := make([]string, 0, m.height)
	if visible {
		lines = append(lines, m.viewTopBar())
	}

	content := m.viewFeedback()
	if m.help.ShowAll {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", m.help.FullHelpView(m.keys.FullHelp()))
	}

	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	if bodyHeight > 0 {
		lines = append(lines, body)
	}

	if visible {
		lines = append(lines, m.viewProgress(), m.viewControls())
	}

	return strings.Join(lines, "\n")
}

func (m *Model) viewTopBar() string {
	orientation := icon.Get(icon.Portrait)
	if m.landscape {
		orientation = icon.Get(icon.Landscape)
	}

	room := util.Max(m.width-lipgloss.Width(orientation)-3, 0)
	title := truncate.StringWithTail(m.title, uint(room), "…")
	return barStyle.Width(m.width).Render(fmt.Sprintf(" %s %s", orientation, title))
}

func (m *Model) viewFeedback() string {
	messages := make([]string, 0, len(feedback.Channels))
	for _, c := range feedback.Channels {
		if msg := m.Feedback.Message(c); msg != "" {
			messages = append(messages, feedbackStyle.Render(msg))
		}
	}
	return strings.Join(messages, "  ")
}

func (m *Model) viewProgress() string {
	var percent float64
	if m.duration > 0 {
		percent = util.Clamp(m.currentTime/m.duration, 0, 1)
	}
	return m.progress.ViewAs(percent)
}

func (m *Model) viewControls() string {
	state := icon.Get(icon.Play)
	if m.paused {
		state = icon.Get(icon.Pause)
	}

	parts := []string{
		state,
		fmt.Sprintf("%s / %s", util.FormatClock(m.currentTime), util.FormatClock(m.duration)),
		fmt.Sprintf("%s %gx", icon.Get(icon.Speed), m.Speed()),
		feedback.LevelText(icon.Volume, m.volumeCtl.Last()),
		feedback.LevelText(icon.Brightness, m.brightness.Last()),
		style.Faint(m.help.ShortHelpView(m.keys.ShortHelp())),
	}

	line := truncate.StringWithTail(" "+strings.Join(parts, "  "), uint(m.width), "…")
	return barStyle.Width(m.width).Render(line)
}
