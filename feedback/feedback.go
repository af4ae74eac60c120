// Package feedback holds the short-lived messages shown after a gesture.
package feedback

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidtouch/vidtouch/icon"
	"github.com/vidtouch/vidtouch/internal/tick"
)

// Lifetime is how long a message stays up after its last post.
const Lifetime = 800 * time.Millisecond

// Channel is an independent feedback track.
type Channel int

const (
	Seek Channel = iota
	Volume
	Brightness
)

// Channels lists every channel in display order.
var Channels = []Channel{Seek, Volume, Brightness}

func (c Channel) String() string {
	switch c {
	case Seek:
		return "seek"
	case Volume:
		return "volume"
	case Brightness:
		return "brightness"
	default:
		return "unknown"
	}
}

// ClearMsg clears a channel if no newer message was posted to it.
type ClearMsg struct {
	Channel Channel
	tag     int
}

type entry struct {
	message string
	tag     int
}

// Presenter keeps one message per channel. Posting to one channel never
// affects another.
type Presenter struct {
	entries map[Channel]*entry
	after   tick.Func
}

// New returns an empty presenter.
func New() *Presenter {
	p := &Presenter{
		entries: make(map[Channel]*entry, len(Channels)),
		after:   tick.Real,
	}
	for _, c := range Channels {
		p.entries[c] = &entry{}
	}
	return p
}

// SetScheduler replaces the timer source.
func (p *Presenter) SetScheduler(f tick.Func) {
	p.after = f
}

func (p *Presenter) entry(c Channel) *entry {
	e, ok := p.entries[c]
	if !ok {
		e = &entry{}
		p.entries[c] = e
	}
	return e
}

// Post replaces the channel's message and restarts its clear countdown.
func (p *Presenter) Post(c Channel, message string) tea.Cmd {
	e := p.entry(c)
	e.tag++
	e.message = message
	return p.after(Lifetime, ClearMsg{Channel: c, tag: e.tag})
}

// Clear removes the channel's message immediately.
func (p *Presenter) Clear(c Channel) {
	e := p.entry(c)
	e.tag++
	e.message = ""
}

// Message returns the channel's current message, if any.
func (p *Presenter) Message(c Channel) string {
	return p.entry(c).message
}

// Update applies a clear message if no newer post happened since it was scheduled.
func (p *Presenter) Update(msg ClearMsg) {
	e := p.entry(msg.Channel)
	if msg.tag != e.tag {
		return
	}
	e.message = ""
}

// Stop clears every channel and invalidates pending clears.
func (p *Presenter) Stop() {
	for _, c := range Channels {
		p.Clear(c)
	}
}

// SeekText formats a relative seek, such as "+20s" or "-10s".
func SeekText(deltaSeconds float64) string {
	return fmt.Sprintf("%+ds", int(math.Round(deltaSeconds)))
}

// LevelText formats a level in [0, 1] as a percentage prefixed with its icon.
func LevelText(i icon.Icon, level float64) string {
	return fmt.Sprintf("%s %d%%", icon.Get(i), int(math.Round(level*100)))
}
