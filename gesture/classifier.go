package gesture

import "math"

// MinPanDistance is the translation, in pixels, a pan must exceed on its
// dominant axis before it is reported.
const MinPanDistance = 20.0

// Session is the per-stream state of a pan. It lives from Began until the
// stream reaches a terminal phase.
type Session struct {
	OriginSide         Side
	OriginZone         Zone
	StartTranslationY  float64
	WithinExcludedArea bool
	active             bool
}

// Active reports whether a stream is in progress.
func (s Session) Active() bool {
	return s.active
}

// Classifier recognizes pans and reports them as seeks or adjustments.
type Classifier struct {
	Policy   RegionPolicy
	Handlers *Handlers

	// SeekSensitivity converts horizontal pixels into seconds.
	SeekSensitivity float64

	session Session
}

// NewClassifier returns a classifier reporting to handlers.
func NewClassifier(policy RegionPolicy, handlers *Handlers, seekSensitivity float64) *Classifier {
	return &Classifier{
		Policy:          policy,
		Handlers:        handlers,
		SeekSensitivity: seekSensitivity,
	}
}

// Session returns a copy of the current stream state.
func (c *Classifier) Session() Session {
	return c.session
}

// Handle feeds one event of the stream.
func (c *Classifier) Handle(ev TouchEvent) {
	switch ev.Phase {
	case Began:
		c.begin(ev)
	case Active:
		c.track(ev)
	default:
		c.finish()
	}
}

func (c *Classifier) handlers() *Handlers {
	if c.Handlers == nil {
		return &Handlers{}
	}
	return c.Handlers
}

func (c *Classifier) begin(ev TouchEvent) {
	// a Began without a terminal phase closes the previous stream first
	if c.session.active {
		c.finish()
	}

	c.session = Session{
		active:            true,
		StartTranslationY: ev.TranslationY,
	}

	if c.Policy.IsExcluded(ev.X, ev.Y) {
		c.session.WithinExcludedArea = true
		c.session.OriginZone = ZoneExcluded
		return
	}

	c.session.OriginSide = c.Policy.Side(ev.X)
	c.session.OriginZone = c.Policy.Classify(ev.X, ev.Y)

	if h := c.handlers(); h.Adjust != nil {
		h.Adjust(Adjustment{Side: c.session.OriginSide, Phase: Began})
	}
}

func (c *Classifier) track(ev TouchEvent) {
	if !c.session.active || c.session.WithinExcludedArea {
		return
	}

	h := c.handlers()
	tx, ty := math.Abs(ev.TranslationX), math.Abs(ev.TranslationY)

	// dominance is decided per event, so one pan may alternate between seeking and adjusting
	if tx > ty {
		if tx > MinPanDistance && h.Seek != nil {
			h.Seek(ev.TranslationX * c.SeekSensitivity)
		}
		return
	}

	if ty > MinPanDistance && h.Adjust != nil {
		h.Adjust(Adjustment{
			Side:         c.session.OriginSide,
			Phase:        Active,
			TranslationY: ev.TranslationY,
		})
	}
}

func (c *Classifier) finish() {
	s := c.session
	c.session = Session{}

	if !s.active || s.WithinExcludedArea || s.OriginSide == SideNone {
		return
	}

	if h := c.handlers(); h.Adjust != nil {
		h.Adjust(Adjustment{Side: s.OriginSide, Phase: Ended})
	}
}
