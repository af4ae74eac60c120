// Package controls decides when the transport bar is shown.
//
// The bar auto-hides after a period of inactivity while media plays. A user
// can force it hidden; activity brings it back without re-arming the auto-hide
// until the user releases the override.
package controls

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidtouch/vidtouch/internal/tick"
)

// State is the visibility of the transport bar.
type State int

const (
	Hidden State = iota
	// VisibleTimed is shown with an auto-hide pending.
	VisibleTimed
	// VisiblePinned is shown with no auto-hide.
	VisiblePinned
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case VisibleTimed:
		return "visible-timed"
	case VisiblePinned:
		return "visible-pinned"
	default:
		return "unknown"
	}
}

// HideMsg asks the timer to hide the bar. Stale messages are ignored.
type HideMsg struct {
	tag int
}

// Timer is the visibility state machine. At most one hide is pending at any time.
type Timer struct {
	Timeout time.Duration

	state   State
	manual  bool
	paused  bool
	stopped bool
	tag     int
	after   tick.Func
}

// New returns a hidden timer. A non-positive timeout disables auto-hide.
func New(timeout time.Duration) *Timer {
	return &Timer{
		Timeout: timeout,
		after:   tick.Real,
	}
}

// SetScheduler replaces the timer source, for tests and replays.
func (t *Timer) SetScheduler(f tick.Func) {
	t.after = f
}

// State returns the current visibility.
func (t *Timer) State() State {
	return t.state
}

// Visible reports whether the bar is shown.
func (t *Timer) Visible() bool {
	return t.state != Hidden
}

// Manual reports whether the user has overridden auto-hide.
func (t *Timer) Manual() bool {
	return t.manual
}

// Paused reports whether the timer believes playback is paused.
func (t *Timer) Paused() bool {
	return t.paused
}

// Show makes the bar visible and restarts the countdown when playback is running
// and the user has not overridden it. Any earlier pending hide is invalidated.
func (t *Timer) Show() tea.Cmd {
	t.cancel()

	if t.stopped || t.paused || t.manual || t.Timeout <= 0 {
		t.state = VisiblePinned
		return nil
	}

	t.state = VisibleTimed
	return t.after(t.Timeout, HideMsg{tag: t.tag})
}

// Toggle is the user's tap: a visible bar is hidden and pinned hidden, a hidden
// bar is shown with the override cleared.
func (t *Timer) Toggle() tea.Cmd {
	if t.Visible() {
		t.cancel()
		t.state = Hidden
		t.manual = true
		return nil
	}

	t.manual = false
	return t.Show()
}

// SetPaused records a pause or resume. Pausing cancels the countdown, resuming
// while visible and not overridden starts it again.
func (t *Timer) SetPaused(paused bool) tea.Cmd {
	if paused == t.paused {
		return nil
	}
	t.paused = paused

	if paused {
		if t.state == VisibleTimed {
			t.cancel()
			t.state = VisiblePinned
		}
		return nil
	}

	if t.Visible() && !t.manual {
		return t.Show()
	}

	return nil
}

// Update applies a hide message if it is still current.
func (t *Timer) Update(msg HideMsg) {
	if msg.tag != t.tag || t.state != VisibleTimed {
		return
	}
	t.state = Hidden
}

// Stop cancels the pending hide. Later calls never schedule another.
func (t *Timer) Stop() {
	t.cancel()
	t.stopped = true
	if t.state == VisibleTimed {
		t.state = VisiblePinned
	}
}

func (t *Timer) cancel() {
	t.tag++
}
