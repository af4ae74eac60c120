package adjust

import "github.com/vidtouch/vidtouch/gesture"

// Quantity is what a vertical drag adjusts.
type Quantity int

const (
	None Quantity = iota
	Volume
	Brightness
)

func (q Quantity) String() string {
	switch q {
	case Volume:
		return "volume"
	case Brightness:
		return "brightness"
	default:
		return "none"
	}
}

// Router decides which quantity each half of the screen controls.
//
// With both gestures enabled the right half drives volume and the left half
// drives brightness. With one enabled, both halves drive it.
type Router struct {
	VolumeEnabled     bool
	BrightnessEnabled bool
}

// Wired reports whether vertical drags should be recognized at all.
func (r Router) Wired() bool {
	return r.VolumeEnabled || r.BrightnessEnabled
}

// Target returns the quantity bound to side.
func (r Router) Target(side gesture.Side) Quantity {
	switch {
	case r.VolumeEnabled && r.BrightnessEnabled:
		if side == gesture.SideLeft {
			return Brightness
		}
		return Volume
	case r.VolumeEnabled:
		return Volume
	case r.BrightnessEnabled:
		return Brightness
	default:
		return None
	}
}
