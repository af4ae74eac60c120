package gesture

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidtouch/vidtouch/internal/tick"
)

const (
	// DoubleTapWindow is the longest gap between two taps of a double tap.
	DoubleTapWindow = 300 * time.Millisecond
	// DoubleTapSlop is the largest horizontal distance, in pixels, between two taps of a double tap.
	DoubleTapSlop = 60.0
)

// DoubleTapState remembers the last processed tap.
type DoubleTapState struct {
	LastTapAt time.Time
	LastTapX  float64
}

// SingleTapMsg delivers a deferred single tap once the double-tap window has passed.
type SingleTapMsg struct {
	tag int
}

// TapRecognizer separates single taps from double taps.
//
// A tap that could still become the first half of a double tap is held back for
// DoubleTapWindow, so a double tap never also produces a single tap.
type TapRecognizer struct {
	Policy   RegionPolicy
	Handlers *Handlers
	// Landscape reports the current orientation.
	Landscape func() bool

	state   DoubleTapState
	tag     int
	pending bool
	after   tick.Func
}

// NewTapRecognizer returns a recognizer reporting to handlers.
func NewTapRecognizer(policy RegionPolicy, handlers *Handlers, landscape func() bool) *TapRecognizer {
	return &TapRecognizer{
		Policy:    policy,
		Handlers:  handlers,
		Landscape: landscape,
		after:     tick.Real,
	}
}

// SetScheduler replaces the timer source of the deferred single tap.
func (r *TapRecognizer) SetScheduler(f tick.Func) {
	r.after = f
}

// State returns the remembered last tap.
func (r *TapRecognizer) State() DoubleTapState {
	return r.state
}

// Pending reports whether a single tap is waiting for the double-tap window to pass.
func (r *TapRecognizer) Pending() bool {
	return r.pending
}

func (r *TapRecognizer) handlers() *Handlers {
	if r.Handlers == nil {
		return &Handlers{}
	}
	return r.Handlers
}

func (r *TapRecognizer) landscape() bool {
	return r.Landscape != nil && r.Landscape()
}

// Tap processes a completed tap at (x, y). The returned command, if any,
// delivers the deferred single tap.
func (r *TapRecognizer) Tap(x, y float64, at time.Time) tea.Cmd {
	if r.Policy.IsExcluded(x, y) {
		return nil
	}

	isDouble := !r.state.LastTapAt.IsZero() &&
		at.Sub(r.state.LastTapAt) < DoubleTapWindow &&
		math.Abs(x-r.state.LastTapX) < DoubleTapSlop

	r.state = DoubleTapState{LastTapAt: at, LastTapX: x}

	if isDouble {
		r.cancelPending()
		r.dispatchDouble(x)
		return nil
	}

	h := r.handlers()
	if h.Tap == nil {
		return nil
	}

	// an unrelated tap settles the previous one right away
	if r.pending {
		h.Tap()
	}

	r.cancelPending()
	r.pending = true
	return r.after(DoubleTapWindow, SingleTapMsg{tag: r.tag})
}

// Update fires the pending single tap when its message is current.
func (r *TapRecognizer) Update(msg SingleTapMsg) {
	if !r.pending || msg.tag != r.tag {
		return
	}

	r.pending = false
	if h := r.handlers(); h.Tap != nil {
		h.Tap()
	}
}

// Stop drops a pending single tap.
func (r *TapRecognizer) Stop() {
	r.cancelPending()
}

func (r *TapRecognizer) cancelPending() {
	r.tag++
	r.pending = false
}

func (r *TapRecognizer) dispatchDouble(x float64) {
	h := r.handlers()

	if r.landscape() {
		if h.LandscapeTap != nil {
			h.LandscapeTap(x)
		}
		return
	}

	switch zone := Third(x, r.Policy.screen()); zone {
	case ZoneMiddleThird:
		if h.DoubleTapCenter != nil {
			h.DoubleTapCenter()
		}
	default:
		if h.DoubleTap != nil {
			h.DoubleTap(zone)
		}
	}
}
