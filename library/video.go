// Package library finds, watches and searches the local video files offered for playback.
package library

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/vidtouch/vidtouch/constant"
	"github.com/vidtouch/vidtouch/filesystem"
	"github.com/vidtouch/vidtouch/util"
)

// Video is a playable file on disk.
type Video struct {
	Path    string    `json:"path" jsonschema:"description=Absolute path of the file"`
	Name    string    `json:"name" jsonschema:"description=File name without the extension"`
	Dir     string    `json:"dir" jsonschema:"description=Directory holding the file"`
	Size    int64     `json:"size" jsonschema:"description=Size in bytes"`
	ModTime time.Time `json:"mod_time" jsonschema:"description=Last modification time"`
}

func newVideo(path string, size int64, modTime time.Time) *Video {
	return &Video{
		Path:    path,
		Name:    util.FileStem(path),
		Dir:     filepath.Dir(path),
		Size:    size,
		ModTime: modTime,
	}
}

// String returns the name shown in listings.
func (v *Video) String() string {
	return v.Name
}

// IsVideo reports whether path carries one of the known video extensions.
func IsVideo(path string) bool {
	return lo.Contains(constant.VideoExtensions, strings.ToLower(filepath.Ext(path)))
}

// Open describes the single video file at path.
func Open(path string) (*Video, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := filesystem.API().Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", abs)
	}
	if !IsVideo(abs) {
		return nil, fmt.Errorf("%s is not a video file", abs)
	}

	return newVideo(abs, info.Size(), info.ModTime()), nil
}
