package gesture

// Adjustment is a vertical-pan report for the quantity bound to Side.
// TranslationY is zero for Began and Ended.
type Adjustment struct {
	Side         Side
	Phase        Phase
	TranslationY float64
}

// Handlers receives recognized intents. A nil field means the intent is not
// wired and is never reported.
type Handlers struct {
	// Tap fires for a single tap once the double-tap window has passed.
	Tap func()
	// DoubleTap fires in portrait for the left or right third.
	DoubleTap func(zone Zone)
	// DoubleTapCenter fires in portrait for the middle third.
	DoubleTapCenter func()
	// LandscapeTap replaces all three double-tap callbacks in landscape.
	LandscapeTap func(x float64)
	// Seek receives a relative seek in seconds on every qualifying horizontal move.
	Seek func(deltaSeconds float64)
	Adjust func(adj Adjustment)
}
