// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidtouch/vidtouch/color"
	"github.com/vidtouch/vidtouch/constant"
	"github.com/vidtouch/vidtouch/key"
	"github.com/vidtouch/vidtouch/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.GestureVolume, true, "Drag vertically to change the volume.\nRight half of the screen when brightness gestures are enabled too")
	register(key.GestureBrightness, true, "Drag vertically to change the brightness.\nLeft half of the screen when volume gestures are enabled too")
	register(key.GestureSeekSensitivity, 0.2, "Seconds of seek per pixel of horizontal drag")
	register(key.GestureVolumeSensitivity, 0.5, "Volume change per pixel of vertical drag, in percent")
	register(key.GestureBrightnessSensitivity, 0.5, "Brightness change per pixel of vertical drag, in percent")
	register(key.TouchCellWidth, 8, "Width of a terminal cell in pixels.\nUsed to map mouse positions onto gesture thresholds")
	register(key.TouchCellHeight, 16, "Height of a terminal cell in pixels")
	register(key.TouchTapSlop, 20, "Maximum travel in pixels for a press to still count as a tap")
	register(key.PlayerControlTimeout, 3, "Seconds of inactivity before the playback controls hide")
	register(key.PlayerResume, true, "Resume videos from the last saved position")
	register(key.PlayerBrightnessPollMs, 1000, "Interval in milliseconds for polling the player brightness")
	register(key.PlayerSpeeds, []string{"0.5", "0.75", "1", "1.25", "1.5", "2"}, "Playback speeds cycled with [ and ]")
	register(key.LibraryPath, "", "Directory to browse for videos.\nDefaults to the current directory")
	register(key.LibraryRecursive, true, "Include videos from subdirectories")
	register(key.LibraryWatch, true, "Refresh the library when files are added or removed")
	register(key.LibraryQuerySuggestions, true, "Suggest earlier library searches when picking a video")
	register(key.HistorySaveOnExit, true, "Save the playback position when leaving a video")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Look for a newer release after printing help or version")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
