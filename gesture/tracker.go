package gesture

import (
	"math"
	"time"
)

// MaxTapDuration is the longest press that still counts as a tap.
const MaxTapDuration = 500 * time.Millisecond

// Tracker turns pointer press, move and release into a touch stream.
type Tracker struct {
	// TapSlop is the largest travel, in pixels, of a press that still counts as a tap.
	TapSlop float64

	down      bool
	startX    float64
	startY    float64
	startAt   time.Time
	maxTravel float64
}

// NewTracker returns a tracker with the given tap slop.
func NewTracker(tapSlop float64) *Tracker {
	return &Tracker{TapSlop: tapSlop}
}

// Down reports whether a pointer is pressed.
func (t *Tracker) Down() bool {
	return t.down
}

// Press starts a stream. A press while already down restarts it.
func (t *Tracker) Press(x, y float64, at time.Time) TouchEvent {
	t.down = true
	t.startX, t.startY = x, y
	t.startAt = at
	t.maxTravel = 0

	return TouchEvent{Phase: Began, X: x, Y: y, Timestamp: at}
}

// Move reports the pointer at a new position. ok is false when no stream is open.
func (t *Tracker) Move(x, y float64, at time.Time) (ev TouchEvent, ok bool) {
	if !t.down {
		return TouchEvent{}, false
	}

	return t.event(Active, x, y, at), true
}

// Release closes the stream. tap reports whether it was a short, still press.
func (t *Tracker) Release(x, y float64, at time.Time) (ev TouchEvent, tap bool, ok bool) {
	if !t.down {
		return TouchEvent{}, false, false
	}

	ev = t.event(Ended, x, y, at)
	t.down = false

	tap = at.Sub(t.startAt) <= MaxTapDuration && t.maxTravel <= t.TapSlop
	return ev, tap, true
}

// Cancel aborts the stream, for example when the screen is resized mid-drag.
func (t *Tracker) Cancel(at time.Time) (ev TouchEvent, ok bool) {
	if !t.down {
		return TouchEvent{}, false
	}

	t.down = false
	return TouchEvent{Phase: Cancelled, X: t.startX, Y: t.startY, Timestamp: at}, true
}

func (t *Tracker) event(phase Phase, x, y float64, at time.Time) TouchEvent {
	tx, ty := x-t.startX, y-t.startY
	t.maxTravel = math.Max(t.maxTravel, math.Hypot(tx, ty))

	return TouchEvent{
		Phase:        phase,
		X:            x,
		Y:            y,
		TranslationX: tx,
		TranslationY: ty,
		Timestamp:    at,
	}
}
