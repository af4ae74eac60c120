package gesture

import "time"

// Phase is the lifecycle stage of a pointer stream.
type Phase int

const (
	Began Phase = iota
	Active
	Ended
	Cancelled
	Failed
)

func (p Phase) String() string {
	switch p {
	case Began:
		return "began"
	case Active:
		return "active"
	case Ended:
		return "ended"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase closes the stream.
func (p Phase) Terminal() bool {
	return p == Ended || p == Cancelled || p == Failed
}

// TouchEvent is one dispatch of a pointer stream. Translation is measured from
// the Began position. It is consumed once and never retained.
type TouchEvent struct {
	Phase        Phase
	X, Y         float64
	TranslationX float64
	TranslationY float64
	Timestamp    time.Time
}
