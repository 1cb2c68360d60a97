// Package cmd implements the command-line interface for afro.
package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/afrorhythm/afro/icon"
	"github.com/afrorhythm/afro/style"
	"github.com/charmbracelet/lipgloss"
)

// CheckDependencies verifies the availability of optional system dependencies.
// A missing mpv is not fatal: tracks without a playable source use the
// simulated player anyway, so the check only warns.
func CheckDependencies() {
	if _, err := exec.LookPath("mpv"); err != nil {
		printMissingDependencyWarning("mpv")
	}
}

func printMissingDependencyWarning(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = "brew install mpv"
	case "linux":
		installCmd = "sudo apt install mpv"
	case "windows":
		installCmd = "scoop install mpv"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Warning: Missing Dependency", icon.Get(icon.Warning)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("'%s' was not found in your PATH. Playback falls back to the simulated player.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
