package gesture

// Boundaries of the tap thirds, as fractions of the screen width.
const (
	leftThirdEdge  = 0.333
	rightThirdEdge = 0.667
)

// Size is the current drawable area in pixels.
type Size struct {
	Width, Height float64
}

// Landscape reports whether the area is wider than it is tall.
func (s Size) Landscape() bool {
	return s.Width > s.Height
}

// Rect is an axis-aligned rectangle in screen pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Zone is the classification of a point for tap routing.
type Zone int

const (
	ZoneExcluded Zone = iota
	ZoneLeftThird
	ZoneMiddleThird
	ZoneRightThird
)

func (z Zone) String() string {
	switch z {
	case ZoneExcluded:
		return "excluded"
	case ZoneLeftThird:
		return "left-third"
	case ZoneMiddleThird:
		return "middle-third"
	case ZoneRightThird:
		return "right-third"
	default:
		return "unknown"
	}
}

// Side is the half of the screen a pan started on.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Classify maps a point to its zone. Excluded rectangles win over the thirds.
// The same thirds are used in portrait and landscape; orientation only changes
// what the caller does with a double tap.
func Classify(x, y float64, screen Size, excluded []Rect) Zone {
	for _, r := range excluded {
		if r.Contains(x, y) {
			return ZoneExcluded
		}
	}
	return Third(x, screen)
}

// Third returns the horizontal third containing x. Out-of-range values fall
// into the outermost thirds.
func Third(x float64, screen Size) Zone {
	switch {
	case x < screen.Width*leftThirdEdge:
		return ZoneLeftThird
	case x < screen.Width*rightThirdEdge:
		return ZoneMiddleThird
	default:
		return ZoneRightThird
	}
}

// SideOf returns the half of the screen containing x.
func SideOf(x float64, screen Size) Side {
	if x < screen.Width/2 {
		return SideLeft
	}
	return SideRight
}

// RegionPolicy evaluates zones against the screen as it is at call time.
// Both functions are called on every classification, so rotations and
// controls appearing or disappearing between gestures are honoured.
type RegionPolicy struct {
	Screen   func() Size
	Excluded func() []Rect
}

func (p RegionPolicy) screen() Size {
	if p.Screen == nil {
		return Size{}
	}
	return p.Screen()
}

func (p RegionPolicy) excludedAreas() []Rect {
	if p.Excluded == nil {
		return nil
	}
	return p.Excluded()
}

// Classify maps a point to its zone using current dimensions.
func (p RegionPolicy) Classify(x, y float64) Zone {
	return Classify(x, y, p.screen(), p.excludedAreas())
}

// Side returns the half of the current screen containing x.
func (p RegionPolicy) Side(x float64) Side {
	return SideOf(x, p.screen())
}

// IsExcluded reports whether the point lies on UI chrome.
func (p RegionPolicy) IsExcluded(x, y float64) bool {
	return p.Classify(x, y) == ZoneExcluded
}
