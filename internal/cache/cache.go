// Package cache keeps metadata learned while playing a file, so the next
// session can show it before the player reports anything.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/mo"
	"github.com/vidtouch/vidtouch/filesystem"
	"github.com/vidtouch/vidtouch/where"
)

const TTL = 30 * 24 * time.Hour

// Meta is what the player reported about a file.
type Meta struct {
	Duration float64 `json:"duration"`
	Aspect   float64 `json:"aspect"`
}

func getDir() string {
	dir := filepath.Join(where.Cache(), "meta")
	_ = filesystem.API().MkdirAll(dir, os.ModePerm)
	return dir
}

// Key derives the cache file name of the video at path.
func Key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:])
}

// Read returns the metadata stored for path unless it is missing or older than TTL.
func Read(path string) mo.Option[Meta] {
	file := filepath.Join(getDir(), Key(path))

	info, err := filesystem.API().Stat(file)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return mo.None[Meta]()
	}

	data, err := filesystem.API().ReadFile(file)
	if err != nil {
		return mo.None[Meta]()
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return mo.None[Meta]()
	}
	return mo.Some(meta)
}

// Write stores meta for path, replacing the previous file in one rename.
func Write(path string, meta Meta) error {
	file := filepath.Join(getDir(), Key(path))
	tmp := file + ".tmp"

	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	if err := filesystem.API().WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return filesystem.API().Rename(tmp, file)
}

// CollectGarbage removes expired entries in the background.
func CollectGarbage() {
	go func() {
		_ = filesystem.API().Walk(getDir(), func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if time.Since(info.ModTime()) > TTL {
				_ = filesystem.API().Remove(path)
			}
			return nil
		})
	}()
}
