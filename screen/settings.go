package screen

import (
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidtouch/vidtouch/adjust"
	"github.com/vidtouch/vidtouch/key"
	"github.com/vidtouch/vidtouch/log"
)

// Settings are read once when the screen is created.
type Settings struct {
	VolumeGesture     bool
	BrightnessGesture bool

	// SeekSensitivity is seconds per horizontal pixel.
	SeekSensitivity float64
	// VolumeSensitivity and BrightnessSensitivity are percent of the range per vertical pixel.
	VolumeSensitivity     float64
	BrightnessSensitivity float64

	ControlTimeout time.Duration
	BrightnessPoll time.Duration

	// CellWidth and CellHeight convert terminal cells to pixels.
	CellWidth  float64
	CellHeight float64
	TapSlop    float64

	Speeds []float64
}

// SettingsFromConfig reads the settings from the loaded configuration.
func SettingsFromConfig() Settings {
	speeds := lo.FilterMap(viper.GetStringSlice(key.PlayerSpeeds), func(s string, _ int) (float64, bool) {
		rate, err := strconv.ParseFloat(s, 64)
		if err != nil || rate <= 0 {
			log.Warnf("ignoring invalid speed %q", s)
			return 0, false
		}
		return rate, true
	})

	return Settings{
		VolumeGesture:         viper.GetBool(key.GestureVolume),
		BrightnessGesture:     viper.GetBool(key.GestureBrightness),
		SeekSensitivity:       viper.GetFloat64(key.GestureSeekSensitivity),
		VolumeSensitivity:     viper.GetFloat64(key.GestureVolumeSensitivity),
		BrightnessSensitivity: viper.GetFloat64(key.GestureBrightnessSensitivity),
		ControlTimeout:        time.Duration(viper.GetFloat64(key.PlayerControlTimeout) * float64(time.Second)),
		BrightnessPoll:        time.Duration(viper.GetInt(key.PlayerBrightnessPollMs)) * time.Millisecond,
		CellWidth:             viper.GetFloat64(key.TouchCellWidth),
		CellHeight:            viper.GetFloat64(key.TouchCellHeight),
		TapSlop:               viper.GetFloat64(key.TouchTapSlop),
		Speeds:                speeds,
	}.normalized()
}

// Router returns the side policy for vertical drags.
func (s Settings) Router() adjust.Router {
	return adjust.Router{
		VolumeEnabled:     s.VolumeGesture,
		BrightnessEnabled: s.BrightnessGesture,
	}
}

// normalized fills in values that would otherwise break the pixel math.
func (s Settings) normalized() Settings {
	if s.CellWidth <= 0 {
		s.CellWidth = 8
	}
	if s.CellHeight <= 0 {
		s.CellHeight = 16
	}
	if len(s.Speeds) == 0 {
		s.Speeds = []float64{1}
	}
	return s
}

// normalSpeed returns the index of the 1x speed, or the first speed when absent.
func (s Settings) normalSpeed() int {
	_, index, ok := lo.FindIndexOf(s.Speeds, func(rate float64) bool {
		return rate == 1
	})
	if !ok {
		return 0
	}
	return index
}
