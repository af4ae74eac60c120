package player

import (
	"math"

	"github.com/vidtouch/vidtouch/util"
)

// mpv volume is a percentage; values above 100 amplify and are not exposed.
func volumeToLevel(volume float64) float64 {
	return util.Clamp(volume/100, 0, 1)
}

func levelToVolume(level float64) float64 {
	return math.Round(util.Clamp(level, 0, 1) * 100)
}

// mpv brightness is an integer in [-100, 100] with 0 as neutral.
func brightnessToLevel(brightness float64) float64 {
	return util.Clamp((brightness+100)/200, 0, 1)
}

func levelToBrightness(level float64) int {
	return int(math.Round(util.Clamp(level, 0, 1)*200 - 100))
}
