// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/afrorhythm/afro/color"
	"github.com/afrorhythm/afro/icon"
	"github.com/afrorhythm/afro/player"
	"github.com/afrorhythm/afro/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case searchState:
		output = b.viewSearch()
	case tracksState:
		output = listExtraPaddingStyle.Render(b.tracksC.View())
	case playlistsState:
		output = listExtraPaddingStyle.Render(b.playlistsC.View())
	case playlistTracksState:
		output = listExtraPaddingStyle.Render(b.playlistTracksC.View())
	case historyState:
		output = listExtraPaddingStyle.Render(b.historyC.View())
	case notificationsState:
		output = listExtraPaddingStyle.Render(b.notificationsC.View())
	case nowPlayingState:
		output = b.viewNowPlaying()
	case confirmState:
		output = b.viewConfirm()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search Music"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok && suggestion != b.inputC.Value() {
		lines = append(lines, style.Faint("tab: "+suggestion))
	}

	if b.library != nil {
		if unread := b.library.UnreadCount(); unread > 0 {
			lines = append(
				lines,
				"",
				style.Faint(fmt.Sprintf("%s %d unread notifications", icon.Get(icon.Bell), unread)),
			)
		}
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewNowPlaying() string {
	track := b.controller.Track()
	if track == nil {
		return b.renderLines(
			true,
			[]string{
				style.Title("Now Playing"),
				"",
				style.Faint("Nothing is playing."),
			},
		)
	}

	stateIcon := icon.Get(icon.Play)
	if b.controller.State() == player.StatePaused {
		stateIcon = icon.Get(icon.Pause)
	}

	heart := ""
	if b.library != nil && b.library.IsFavorite(track.ID) {
		heart = " " + icon.Get(icon.Heart)
	}

	titleLine := fmt.Sprintf(
		"%s %s %s%s",
		stateIcon,
		track.Title,
		style.Fg(color.Purple)(b.library.Catalog().ArtistName(track)),
		heart,
	)

	progress := b.lastProgress
	timeLine := fmt.Sprintf("%s / %s", progress.Display, progress.DurationDisplay)
	if progress.DurationDisplay == "" {
		timeLine = style.Faint("buffering")
	}

	statusLine := fmt.Sprintf("%s  %s %.0f%%", timeLine, icon.Get(icon.Note), b.controller.Volume()*100)

	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Truncate(b.width)(titleLine),
		"",
		b.progressC.ViewAs(progress.Fraction),
		statusLine,
	}

	if b.controller.Simulated() {
		lines = append(lines, "", style.Faint("(simulated preview)"))
	}

	if playlist, index := b.controller.Playlist(); playlist != nil {
		lines = append(
			lines,
			"",
			style.Faint(fmt.Sprintf("%s %d/%d", playlist.Name, index+1, len(playlist.TrackIDs))),
		)
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewConfirm() string {
	return b.renderLines(
		false,
		[]string{
			style.Title("Confirm"),
			"",
			b.confirmPrompt,
			"",
			style.Faint("(y to confirm, n to cancel)"),
		},
	)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError.Error()))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
