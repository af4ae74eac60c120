// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Dir is the library directory. Defaults to the configured library path.
	Dir string
	// File skips the library and plays this file directly.
	File string
}

// Run initializes and executes the primary Bubble Tea application loop.
// Mouse motion is reported so the terminal can serve as the touch surface.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.shutdown()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
