// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Gesture Control - these keys govern which touch gestures are interpreted and how strongly they act.
const (
	GestureVolume                = "gesture.volume"
	GestureBrightness            = "gesture.brightness"
	GestureSeekSensitivity       = "gesture.seek_sensitivity"
	GestureVolumeSensitivity     = "gesture.volume_sensitivity"
	GestureBrightnessSensitivity = "gesture.brightness_sensitivity"
)

// Touch Surface - these keys map terminal cells onto the pixel space the gesture thresholds are defined in.
const (
	TouchCellWidth  = "touch.cell_width"
	TouchCellHeight = "touch.cell_height"
	TouchTapSlop    = "touch.tap_slop"
)

// Media Playback - these keys configure the playback screen and the external player.
const (
	PlayerControlTimeout   = "player.control_timeout"
	PlayerResume           = "player.resume"
	PlayerBrightnessPollMs = "player.brightness_poll_ms"
	PlayerSpeeds           = "player.speeds"
)

// Library Browsing - these keys configure the local video file browser.
const (
	LibraryPath      = "library.path"
	LibraryRecursive = "library.recursive"
	LibraryWatch     = "library.watch"

	LibraryQuerySuggestions = "library.query_suggestions"
)

// History Tracking - these keys configure the persistence of playback positions.
const (
	HistorySaveOnExit = "history.save_on_exit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
