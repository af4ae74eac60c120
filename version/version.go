// Package version looks up the latest published release and tells the user when theirs is older.
package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/vidtouch/vidtouch/constant"
	"github.com/vidtouch/vidtouch/filesystem"
	"github.com/vidtouch/vidtouch/util"
	"github.com/vidtouch/vidtouch/where"
)

// ReleasesURL is the page listing published releases.
const ReleasesURL = "https://github.com/vidtouch/vidtouch/releases"

const latestURL = "https://api.github.com/repos/vidtouch/vidtouch/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

var client = &http.Client{Timeout: 5 * time.Second}

// Latest returns the newest release version without the "v" prefix.
// Answers are cached for two days.
func Latest() (string, error) {
	cached, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && cached != "" {
		return cached, nil
	}

	resp, err := client.Get(latestURL)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("latest release: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err = json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	_ = versionCacher.Set(latest)
	return latest, nil
}

// Outdated reports whether latest is newer than the running build.
func Outdated(latest string) bool {
	comp, err := Compare(latest, constant.Version)
	return err == nil && comp > 0
}
