package screen

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type keymap struct {
	playPause,
	seekBack, seekForward,
	volumeUp, volumeDown,
	brightnessUp, brightnessDown,
	slower, faster,
	subtitle,
	orientation,
	controls,
	showHelp key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		playPause: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "pause/resume"),
		),
		seekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "-10s"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "+10s"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "volume down"),
		),
		brightnessUp: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("K", "brighter"),
		),
		brightnessDown: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("J", "dimmer"),
		),
		slower: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "slower"),
		),
		faster: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "faster"),
		),
		subtitle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "subtitles"),
		),
		orientation: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "rotate"),
		),
		controls: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "controls"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.playPause, k.seekBack, k.seekForward, k.showHelp}
}

func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.seekBack, k.seekForward},
		{k.volumeUp, k.volumeDown, k.brightnessUp, k.brightnessDown},
		{k.slower, k.faster, k.subtitle, k.orientation, k.controls},
	}
}

// Keys exposes the screen bindings for the surrounding help view.
func (m *Model) Keys() help.KeyMap {
	return m.keys
}
