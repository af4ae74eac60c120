// Package history remembers where playback of each file stopped.
package history

import (
	"path/filepath"

	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/vidtouch/vidtouch/filesystem"
	"github.com/vidtouch/vidtouch/where"
	"golang.org/x/exp/slices"
)

const (
	// MinPosition is the earliest position worth resuming from, in seconds.
	MinPosition = 5.0
	// EndMargin and EndFraction mark a file as finished.
	EndMargin   = 10.0
	EndFraction = 0.95
)

var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

func key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// Get returns every saved entry keyed by absolute path.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Recent returns the saved entries, most recently watched first.
func Recent() ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	slices.SortFunc(entries, func(a, b *Entry) int {
		return b.WatchedAt.Compare(a.WatchedAt)
	})
	return entries, nil
}

// Save records the position reached in the file at path.
func Save(path string, position, duration float64) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	entry := newEntry(key(path), position, duration)
	if entry.Duration <= 0 {
		// keep the known duration when the player never reported one
		if existing, ok := saved[entry.Path]; ok {
			entry.Duration = existing.Duration
		}
	}

	saved[entry.Path] = entry
	return cacher.Set(saved)
}

// Lookup returns the entry saved for path.
func Lookup(path string) (mo.Option[*Entry], error) {
	saved, err := Get()
	if err != nil {
		return mo.None[*Entry](), err
	}

	if entry, ok := saved[key(path)]; ok {
		return mo.Some(entry), nil
	}
	return mo.None[*Entry](), nil
}

// Resume returns the position to start path from. There is none when the file
// was never played, barely started or watched to the end.
func Resume(path string) mo.Option[float64] {
	entry, err := Lookup(path)
	if err != nil {
		return mo.None[float64]()
	}

	saved, ok := entry.Get()
	if !ok || saved.Position < MinPosition || saved.Finished() {
		return mo.None[float64]()
	}
	return mo.Some(saved.Position)
}

// Remove forgets path.
func Remove(path string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, key(path))
	return cacher.Set(saved)
}

// Clear forgets everything.
func Clear() error {
	return cacher.Set(make(map[string]*Entry))
}
