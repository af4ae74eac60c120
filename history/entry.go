package history

import (
	"fmt"
	"time"

	"github.com/vidtouch/vidtouch/util"
)

// Entry is the saved playback state of one file.
type Entry struct {
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	Position  float64   `json:"position"`
	Duration  float64   `json:"duration"`
	WatchedAt time.Time `json:"watched_at"`
}

func newEntry(path string, position, duration float64) *Entry {
	return &Entry{
		Path:      path,
		Name:      util.FileStem(path),
		Position:  position,
		Duration:  duration,
		WatchedAt: time.Now(),
	}
}

// Progress returns the watched fraction in [0, 1], or 0 when the duration is unknown.
func (e *Entry) Progress() float64 {
	if e.Duration <= 0 {
		return 0
	}
	return util.Clamp(e.Position/e.Duration, 0, 1)
}

// Finished reports whether playback stopped close enough to the end that
// resuming would be pointless.
func (e *Entry) Finished() bool {
	if e.Duration <= 0 {
		return false
	}
	return e.Duration-e.Position <= EndMargin || e.Progress() >= EndFraction
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s : %s / %s", e.Name, util.FormatClock(e.Position), util.FormatClock(e.Duration))
}
