// Package adjust maps vertical drags onto bounded levels such as volume and brightness.
package adjust

import (
	"github.com/vidtouch/vidtouch/util"
)

// Controller converts the vertical translation of one drag into a level in [0, 1].
//
// The level is always computed from the value captured at Begin, never
// accumulated across updates, so repeated updates with the same translation are
// idempotent.
type Controller struct {
	baseline         float64
	startTranslation float64
	last             float64
	armed            bool
}

// NewController returns an unarmed controller whose last value is initial.
func NewController(initial float64) *Controller {
	return &Controller{last: util.Clamp(initial, 0, 1)}
}

// Begin arms the controller for a new drag starting at current.
func (c *Controller) Begin(current float64) {
	c.baseline = util.Clamp(current, 0, 1)
	c.startTranslation = 0
	c.last = c.baseline
	c.armed = true
}

// Rebase replaces the baseline of an armed drag, for when a more authoritative
// starting value arrives after Begin.
func (c *Controller) Rebase(current float64) {
	if !c.armed {
		return
	}
	c.baseline = util.Clamp(current, 0, 1)
	c.last = c.baseline
}

// Update returns the level for the given translation. Dragging up (negative y)
// raises the level. An unarmed controller returns the last value unchanged.
func (c *Controller) Update(translationY, sensitivity float64) float64 {
	if !c.armed {
		return c.last
	}

	delta := (translationY - c.startTranslation) * sensitivity / 100
	c.last = util.Clamp(c.baseline-delta, 0, 1)
	return c.last
}

// Commit records a level applied outside a drag, such as a key press, and
// returns it clamped. It has no effect while armed.
func (c *Controller) Commit(level float64) float64 {
	if !c.armed {
		c.last = util.Clamp(level, 0, 1)
	}
	return c.last
}

// End disarms the controller. The last value is kept as the next baseline hint.
func (c *Controller) End() {
	c.armed = false
}

// Armed reports whether a drag is in progress.
func (c *Controller) Armed() bool {
	return c.armed
}

// Last returns the most recently computed level.
func (c *Controller) Last() float64 {
	return c.last
}
