// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidtouch/vidtouch/library"
)

// Init starts either the library scan or, for a single file, playback.
func (b *statefulBubble) Init() tea.Cmd {
	b.setState(loadingState)

	if b.options.File != "" {
		video, err := library.Open(b.options.File)
		if err != nil {
			return func() tea.Msg {
				return err
			}
		}
		return tea.Batch(b.startLoading(), b.play(video))
	}

	return tea.Batch(b.startLoading(), b.loadLibrary())
}
