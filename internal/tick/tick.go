// Package tick schedules tagged bubbletea timer messages.
//
// Components that need a timer keep a generation counter and embed it in the
// message they schedule. Bumping the counter cancels every pending timer of that
// component: the message still arrives, but its tag no longer matches and it is dropped.
package tick

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Func schedules msg to be delivered after d.
type Func func(d time.Duration, msg tea.Msg) tea.Cmd

// Real is the production scheduler backed by tea.Tick.
func Real(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// Call is a single recorded scheduling request.
type Call struct {
	Delay time.Duration
	Msg   tea.Msg
}

// Recorder captures scheduling requests instead of waiting on the wall clock.
type Recorder struct {
	Calls []Call
}

// Schedule satisfies Func. The returned command yields msg immediately.
func (r *Recorder) Schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	r.Calls = append(r.Calls, Call{Delay: d, Msg: msg})
	return func() tea.Msg {
		return msg
	}
}

// Last returns the most recent call, or the zero Call when nothing was scheduled.
func (r *Recorder) Last() Call {
	if len(r.Calls) == 0 {
		return Call{}
	}
	return r.Calls[len(r.Calls)-1]
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.Calls = nil
}
