// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/afrorhythm/afro/api"
	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/history"
	"github.com/afrorhythm/afro/icon"
	"github.com/afrorhythm/afro/style"
	"github.com/afrorhythm/afro/util"
	"github.com/charmbracelet/lipgloss"
)

// listItem implements the list.Item interface, wrapping various domain models for terminal display.
type listItem struct {
	internal interface{}
	bubble   *statefulBubble
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *catalog.Track:
		title = e.Title
		if t.bubble != nil && t.bubble.library != nil && t.bubble.library.IsFavorite(e.ID) {
			title = fmt.Sprintf("%s %s", title, icon.Get(icon.Heart))
		}
		if !e.Playable() {
			title = fmt.Sprintf("%s %s", title, style.Faint("(preview)"))
		}
	case *catalog.Playlist:
		title = e.Name
		if e.ID == catalog.FavoritesPlaylistID {
			title = fmt.Sprintf("%s %s", icon.Get(icon.Heart), title)
		} else if t.bubble != nil && t.bubble.library != nil && t.bubble.library.LikesPlaylist(e.ID) {
			title = fmt.Sprintf("%s %s", title, icon.Get(icon.Heart))
		}
	case *history.Entry:
		title = e.Title
	case *api.Notification:
		title = e.Title
		if !e.Read {
			title = fmt.Sprintf("%s %s", icon.Get(icon.Bell), title)
		} else {
			title = style.Faint(title)
		}
	case string:
		title = e
	}

	return
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *catalog.Track:
		var parts []string

		if t.bubble != nil && t.bubble.library != nil {
			if name := t.bubble.library.Catalog().ArtistName(e); name != "" {
				parts = append(parts, name)
			}
		}
		if e.Genre != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(e.Genre))
		}
		parts = append(parts, style.Faint(e.DurationDisplay()))
		if e.PlayCount > 0 {
			parts = append(parts, style.Faint(util.Quantify(int(e.PlayCount), "play", "plays")))
		}

		description = strings.Join(parts, " • ")
	case *catalog.Playlist:
		var parts []string

		parts = append(parts, util.Quantify(len(e.TrackIDs), "track", "tracks"))
		if e.Likes > 0 {
			parts = append(parts, style.Faint(util.Quantify(int(e.Likes), "like", "likes")))
		}
		if e.Description != "" {
			parts = append(parts, style.Faint(e.Description))
		}

		description = strings.Join(parts, " • ")
	case *history.Entry:
		description = fmt.Sprintf("%s • %s", e.ArtistName, style.Faint(e.PlayedAtDisplay()))
	case *api.Notification:
		description = e.Message
	case string:
		description = ""
	}

	return
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *catalog.Track:
		return e.Title
	case *catalog.Playlist:
		return e.Name
	case *history.Entry:
		return e.Title + " " + e.ArtistName
	case *api.Notification:
		return e.Title
	case string:
		return e
	default:
		return ""
	}
}
