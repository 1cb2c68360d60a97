// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init boots the terminal user interface, kicking off the session
// bootstrap while the loading screen spins.
func (b *statefulBubble) Init() tea.Cmd {
	b.setState(loadingState)
	b.progressStatus = "Fetching catalog"
	return tea.Batch(textinput.Blink, b.startLoading(), b.bootstrap())
}
