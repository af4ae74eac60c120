// Package player drives an external media player.
// The only backend is mpv, controlled over its JSON-IPC socket.
package player

// Options tune how a file is opened.
type Options struct {
	// Title shown in the player window. Defaults to the file name.
	Title string
	// Start position in seconds. Zero starts from the beginning.
	Start float64
	// Paused opens the file without starting playback.
	Paused bool
}

// Player is the playback backend used by the UI.
//
// Levels (volume and brightness) are normalized to [0, 1] regardless of the
// backend's native range.
type Player interface {
	// Play opens target, reusing a running instance when there is one.
	Play(target string, opts Options) error

	TogglePause() error
	SetPaused(paused bool) error

	// GetTimePos returns the playback position in seconds.
	GetTimePos() (float64, error)

	// GetDuration returns the length of the current file in seconds.
	GetDuration() (float64, error)

	GetPausedStatus() (bool, error)

	// Seek jumps to an absolute position in seconds.
	Seek(seconds float64) error

	// SetSpeed sets the playback rate, 1 being normal speed.
	SetSpeed(rate float64) error

	Volume() (float64, error)
	SetVolume(level float64) error

	Brightness() (float64, error)
	SetBrightness(level float64) error

	// CycleSubtitle switches to the next subtitle track, wrapping to none.
	CycleSubtitle() error

	// AspectRatio returns the display aspect of the video, width over height.
	AspectRatio() (float64, error)

	// IsRunning reports whether the backend answers commands.
	IsRunning() bool

	// Close terminates the backend and releases its resources.
	Close() error

	// Socket returns the IPC endpoint of the backend.
	Socket() string

	// StartIPCTicker polls the playback position and calls back on every tick.
	StartIPCTicker(callback func(timePos, duration float64))

	StopIPCTicker()

	// Wait returns a channel that is closed when the backend exits.
	Wait() <-chan struct{}
}
