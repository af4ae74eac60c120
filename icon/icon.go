// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/spf13/viper"
	"github.com/vidtouch/vidtouch/key"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Video
	Play
	Pause
	Volume
	Brightness
	Speed
	Subtitle
	Landscape
	Portrait
	Resume
)

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Success:    {emoji: "🎉", nerd: "", plain: "✓", kaomoji: "(◕‿◕)", squares: "▣"},
	Fail:       {emoji: "💀", nerd: "", plain: "✖", kaomoji: "(×_×)", squares: "▨"},
	Progress:   {emoji: "⏳", nerd: "", plain: "~", kaomoji: "(・_・ヾ", squares: "▧"},
	Video:      {emoji: "🎞️", nerd: "", plain: "*", kaomoji: "(▀̿Ĺ̯▀̿ ̿)", squares: "▤"},
	Play:       {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(ノ◕ヮ◕)ノ", squares: "▶"},
	Pause:      {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "(￣o￣) zzZ", squares: "▮▮"},
	Volume:     {emoji: "🔊", nerd: "", plain: "Volume", kaomoji: "ヽ(°〇°)ﾉ", squares: "◧"},
	Brightness: {emoji: "🔆", nerd: "", plain: "Brightness", kaomoji: "☆*:.｡", squares: "◨"},
	Speed:      {emoji: "⏩", nerd: "", plain: "Speed", kaomoji: "ε=ε=┌( >_<)┘", squares: "▸▸"},
	Subtitle:   {emoji: "💬", nerd: "", plain: "Subs", kaomoji: "(・∀・)っ", squares: "▭"},
	Landscape:  {emoji: "🖥️", nerd: "", plain: "Landscape", kaomoji: "(⌐■_■)", squares: "▬"},
	Portrait:   {emoji: "📱", nerd: "", plain: "Portrait", kaomoji: "(｡•̀ᴗ-)", squares: "▮"},
	Resume:     {emoji: "🔁", nerd: "", plain: "Resumed", kaomoji: "ᕕ( ᐛ )ᕗ", squares: "◩"},
}

// Get retrieves the visual representation for the receiver Def based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	if def, ok := icons[i]; ok {
		return def.Get()
	}
	return ""
}
