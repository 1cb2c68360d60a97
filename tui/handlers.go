// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	"github.com/afrorhythm/afro/api"
	"github.com/afrorhythm/afro/auth"
	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/history"
	"github.com/afrorhythm/afro/icon"
	"github.com/afrorhythm/afro/key"
	"github.com/afrorhythm/afro/library"
	"github.com/afrorhythm/afro/log"
	"github.com/afrorhythm/afro/open"
	"github.com/afrorhythm/afro/player"
	"github.com/afrorhythm/afro/query"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

type bootstrappedMsg struct{}

type tracksFoundMsg []*catalog.Track

type playbackStartedMsg struct{}

type progressMsg player.Progress

type playerStateMsg player.State

// bootstrap brings the whole session up: catalog, authenticated session,
// user collections and the playback controller. A stale catalog snapshot
// is better than no catalog when the API is unreachable.
func (b *statefulBubble) bootstrap() tea.Cmd {
	return func() tea.Msg {
		client := api.NewClient()

		cat, err := client.FetchCatalog()
		if err != nil {
			log.Warnf("catalog fetch failed, trying local snapshot: %v", err)

			snapshot, ok := catalog.LoadSnapshot()
			if !ok {
				return fmt.Errorf("catalog unavailable: %w", err)
			}
			cat = snapshot
		}

		session := mo.None[*auth.Session]()
		if auth.HasToken() {
			if me, err := client.Me(); err == nil {
				session = mo.Some(me)
			} else {
				log.Warnf("session invalid, continuing anonymously: %v", err)
			}
		}

		b.library = library.New(client, cat, session)
		b.library.LoadAll()

		b.controller = player.NewController(b.library)
		b.controller.OnProgress = func(p player.Progress) {
			select {
			case b.progressChannel <- p:
			default:
			}
		}
		b.controller.OnState = func(s player.State) {
			select {
			case b.playerStateChannel <- s:
			default:
			}
		}

		return bootstrappedMsg{}
	}
}

// searchTracks runs a fuzzy catalog search and remembers the query for
// future suggestions.
func (b *statefulBubble) searchTracks(q string) tea.Cmd {
	return func() tea.Msg {
		if err := query.Remember(q, 1); err != nil {
			log.Warnf("query not remembered: %v", err)
		}

		found := b.library.Catalog().Search(q)
		if limit := viper.GetInt(key.SearchLimit); limit > 0 && len(found) > limit {
			found = found[:limit]
		}

		return tracksFoundMsg(found)
	}
}

// browseCatalog lists the whole catalog in id order.
func (b *statefulBubble) browseCatalog() tea.Cmd {
	return func() tea.Msg {
		return tracksFoundMsg(b.library.Catalog().Tracks())
	}
}

// playTrack starts a standalone playback session. Loading can block on the
// engine socket, so it runs as a command.
func (b *statefulBubble) playTrack(track *catalog.Track) tea.Cmd {
	return func() tea.Msg {
		if err := b.controller.Play(track); err != nil {
			return err
		}
		return playbackStartedMsg{}
	}
}

// playPlaylistFrom starts the playlist at the given index and keeps it as
// the auto-advance context.
func (b *statefulBubble) playPlaylistFrom(playlist *catalog.Playlist, index int) tea.Cmd {
	return func() tea.Msg {
		if err := b.controller.PlayPlaylist(playlist, index); err != nil {
			return err
		}
		return playbackStartedMsg{}
	}
}

// waitForProgress delivers the next progress sample; the update loop
// re-arms it after every message.
func (b *statefulBubble) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		return progressMsg(<-b.progressChannel)
	}
}

// waitForPlayerState delivers playback state transitions.
func (b *statefulBubble) waitForPlayerState() tea.Cmd {
	return func() tea.Msg {
		return playerStateMsg(<-b.playerStateChannel)
	}
}

// toggleFavorite flips the favorite state of a track, reporting the result
// as an ephemeral notification.
func (b *statefulBubble) toggleFavorite(track *catalog.Track) tea.Cmd {
	return func() tea.Msg {
		if err := b.library.ToggleFavorite(track.ID); err != nil {
			return fmt.Sprintf("%s %v", icon.Get(icon.Fail), err)
		}

		if b.library.IsFavorite(track.ID) {
			return fmt.Sprintf("%s Added to favorites", icon.Get(icon.Heart))
		}
		return fmt.Sprintf("%s Removed from favorites", icon.Get(icon.HeartEmpty))
	}
}

// toggleLikePlaylist flips the like state of a public playlist.
func (b *statefulBubble) toggleLikePlaylist(playlist *catalog.Playlist) tea.Cmd {
	return func() tea.Msg {
		if playlist.ID == catalog.FavoritesPlaylistID {
			return fmt.Sprintf("%s Favorites cannot be liked", icon.Get(icon.Fail))
		}

		if err := b.library.ToggleLikePlaylist(playlist.ID); err != nil {
			return fmt.Sprintf("%s %v", icon.Get(icon.Fail), err)
		}
		return fmt.Sprintf("%s Playlist updated", icon.Get(icon.Success))
	}
}

// deletePlaylist removes an owned playlist after confirmation.
func (b *statefulBubble) deletePlaylist(playlist *catalog.Playlist) tea.Cmd {
	return func() tea.Msg {
		if err := b.library.DeletePlaylist(playlist.ID); err != nil {
			return fmt.Sprintf("%s %v", icon.Get(icon.Fail), err)
		}
		return fmt.Sprintf("%s Playlist deleted", icon.Get(icon.Success))
	}
}

// removeHistoryEntry drops a single track's history records.
func (b *statefulBubble) removeHistoryEntry(entry *history.Entry) tea.Cmd {
	return func() tea.Msg {
		if err := b.library.RemoveHistoryEntry(entry.TrackID); err != nil {
			return fmt.Sprintf("%s %v", icon.Get(icon.Fail), err)
		}
		return fmt.Sprintf("%s Removed from history", icon.Get(icon.Success))
	}
}

// clearHistory empties playback history after confirmation.
func (b *statefulBubble) clearHistory() tea.Cmd {
	return func() tea.Msg {
		if err := b.library.ClearHistory(); err != nil {
			return fmt.Sprintf("%s %v", icon.Get(icon.Fail), err)
		}
		return fmt.Sprintf("%s History cleared", icon.Get(icon.Success))
	}
}

// markNotificationRead flips a single read flag, best effort.
func (b *statefulBubble) markNotificationRead(notification *api.Notification) tea.Cmd {
	return func() tea.Msg {
		if err := b.library.MarkNotificationRead(notification.ID); err != nil {
			return fmt.Sprintf("%s %v", icon.Get(icon.Fail), err)
		}
		return fmt.Sprintf("%s Marked read", icon.Get(icon.Success))
	}
}

// markAllNotificationsRead flips every read flag, best effort.
func (b *statefulBubble) markAllNotificationsRead() tea.Cmd {
	return func() tea.Msg {
		if err := b.library.MarkAllRead(); err != nil {
			return fmt.Sprintf("%s %v", icon.Get(icon.Fail), err)
		}
		return fmt.Sprintf("%s All notifications read", icon.Get(icon.Success))
	}
}

// items helpers refresh list contents from the cache.

func (b *statefulBubble) setTrackItems(tracks []*catalog.Track) {
	b.tracksC.SetItems(lo.Map(tracks, func(t *catalog.Track, _ int) list.Item {
		return &listItem{internal: t, bubble: b}
	}))
}

func (b *statefulBubble) setPlaylistItems() {
	playlists := []*catalog.Playlist{b.library.FavoritesPlaylist()}
	playlists = append(playlists, b.library.Playlists()...)
	playlists = append(playlists, b.library.Catalog().Playlists()...)

	b.playlistsC.SetItems(lo.Map(playlists, func(p *catalog.Playlist, _ int) list.Item {
		return &listItem{internal: p, bubble: b}
	}))
}

func (b *statefulBubble) setPlaylistTrackItems(playlist *catalog.Playlist) {
	tracks := make([]*catalog.Track, 0, len(playlist.TrackIDs))
	for _, id := range playlist.TrackIDs {
		if track, err := b.library.Catalog().Track(id); err == nil {
			tracks = append(tracks, track)
		}
	}

	b.playlistTracksC.Title = playlist.Name
	b.playlistTracksC.SetItems(lo.Map(tracks, func(t *catalog.Track, _ int) list.Item {
		return &listItem{internal: t, bubble: b}
	}))
}

func (b *statefulBubble) setHistoryItems() {
	b.historyC.SetItems(lo.Map(b.library.History(), func(e *history.Entry, _ int) list.Item {
		return &listItem{internal: e, bubble: b}
	}))
}

func (b *statefulBubble) setNotificationItems() {
	b.notificationsC.SetItems(lo.Map(b.library.Notifications(), func(n *api.Notification, _ int) list.Item {
		return &listItem{internal: n, bubble: b}
	}))
}

// openArtistPage launches the current track's artist profile in the system
// browser, preferring the artist's own website over social profiles.
func (b *statefulBubble) openArtistPage() tea.Cmd {
	track := b.controller.Track()
	if track == nil {
		return nil
	}

	artist, err := b.library.Catalog().Artist(track.ArtistID)
	if err != nil {
		return func() tea.Msg { return err }
	}

	var target string
	if artist.Social != nil {
		target = lo.CoalesceOrEmpty(artist.Social.Website, artist.Social.Instagram, artist.Social.Twitter)
	}

	if target == "" {
		return func() tea.Msg {
			return fmt.Sprintf("%s %s has no public page", icon.Get(icon.Warning), artist.Name)
		}
	}

	return func() tea.Msg {
		if err := open.Start(target); err != nil {
			return err
		}
		return fmt.Sprintf("%s Opened %s", icon.Get(icon.Success), artist.Name)
	}
}
