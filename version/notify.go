package version

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/vidtouch/vidtouch/color"
	"github.com/vidtouch/vidtouch/constant"
	"github.com/vidtouch/vidtouch/icon"
	"github.com/vidtouch/vidtouch/key"
	"github.com/vidtouch/vidtouch/log"
	"github.com/vidtouch/vidtouch/style"
	"github.com/vidtouch/vidtouch/util"
)

// Notify prints a notice when a newer release is published.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()

	if err != nil {
		log.Warnf("version check: %s", err)
		return
	}

	if !Outdated(latest) {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(ReleasesURL+"/tag/v"+latest),
	)
}
