package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vidtouch/vidtouch/filesystem"
	"golang.org/x/exp/slices"
)

// Scan lists the videos under dir sorted by path. Subdirectories are only
// entered when recursive is set. Hidden files and directories are skipped.
func Scan(dir string, recursive bool) ([]*Video, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	isDir, err := filesystem.API().IsDir(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !isDir {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	var videos []*Video
	err = filesystem.API().Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path == root {
			return nil
		}

		hidden := strings.HasPrefix(info.Name(), ".")
		if info.IsDir() {
			if hidden || !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if !hidden && info.Mode().IsRegular() && IsVideo(path) {
			videos = append(videos, newVideo(path, info.Size(), info.ModTime()))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	slices.SortFunc(videos, func(a, b *Video) int {
		return strings.Compare(a.Path, b.Path)
	})

	return videos, nil
}
