// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Continue opens the playback history instead of the search screen.
	Continue bool

	// Query pre-runs a catalog search and opens its results.
	Query string

	// AutoPlay starts playback of the best Query match immediately.
	AutoPlay bool
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()

	if bubble.controller != nil {
		bubble.controller.Stop()
	}

	return err
}
