// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	"github.com/afrorhythm/afro/api"
	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/history"
	"github.com/afrorhythm/afro/player"
	"github.com/afrorhythm/afro/query"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Ephemeral UI notifications consume `string` and ClearNotificationMsg.
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = tea.Batch(cmd, uiCmd)
	}

	switch msg := msg.(type) {
	case error:
		b.stopLoading()
		b.raiseError(msg)
		return b, cmd

	case bootstrappedMsg:
		b.stopLoading()
		cmd = tea.Batch(cmd, b.waitForProgress(), b.waitForPlayerState())

		switch {
		case b.options != nil && b.options.Continue:
			b.setHistoryItems()
			b.setState(historyState)
		case b.options != nil && b.options.Query != "":
			b.inputC.SetValue(b.options.Query)
			b.setState(searchState)
			return b, tea.Batch(cmd, b.startLoading(), b.searchTracks(b.options.Query))
		default:
			b.setState(searchState)
		}
		return b, cmd

	case tracksFoundMsg:
		b.stopLoading()
		if b.options != nil && b.options.AutoPlay {
			b.options.AutoPlay = false
			if len(msg) > 0 {
				return b, tea.Batch(cmd, b.startLoading(), b.playTrack(msg[0]))
			}
			// No fuzzy hit, fall back to the closest title.
			if track, err := b.library.Catalog().Closest(b.options.Query); err == nil {
				return b, tea.Batch(cmd, b.startLoading(), b.playTrack(track))
			}
		}
		b.setTrackItems(msg)
		b.newState(tracksState)
		return b, cmd

	case playbackStartedMsg:
		b.stopLoading()
		b.newState(nowPlayingState)
		return b, cmd

	case progressMsg:
		b.lastProgress = player.Progress(msg)
		b.progressStatus = fmt.Sprintf("%s / %s", b.lastProgress.Display, b.lastProgress.DurationDisplay)
		return b, tea.Batch(cmd, b.waitForProgress())

	case playerStateMsg:
		// History and play counts move on natural completion.
		if player.State(msg) == player.StateEnded && b.library != nil {
			b.setHistoryItems()
		}
		return b, tea.Batch(cmd, b.waitForPlayerState())

	case string:
		// A collection mutation happened; refresh whatever is visible.
		if b.library != nil {
			b.setHistoryItems()
			b.setNotificationItems()
			b.setPlaylistItems()
			if b.selectedPlaylist != nil {
				b.refreshSelectedPlaylist()
			}
		}

	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		}

		// Input guard: ignore non-priority keys during asynchronous operations.
		if b.busy && b.state != nowPlayingState && b.state != errorState {
			return b, cmd
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.back) && b.state != searchState && b.state != confirmState:
			// An active list filter consumes esc itself.
			if l := b.activeList(); l != nil && l.FilterState() == list.Filtering {
				break
			}

			onListBack := func(l *list.Model) tea.Cmd {
				l.ResetSelected()
				l.ResetFilter()
				return tea.Batch(cmd, l.NewStatusMessage(""))
			}

			switch b.state {
			case tracksState:
				cmd = onListBack(&b.tracksC)
			case playlistsState:
				cmd = onListBack(&b.playlistsC)
			case playlistTracksState:
				cmd = onListBack(&b.playlistTracksC)
			case historyState:
				cmd = onListBack(&b.historyC)
			case notificationsState:
				cmd = onListBack(&b.notificationsC)
			}

			b.previousState()
			b.stopLoading()
			return b, cmd
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case searchState:
		return b.updateSearch(msg)
	case tracksState:
		return b.updateTracks(msg)
	case playlistsState:
		return b.updatePlaylists(msg)
	case playlistTracksState:
		return b.updatePlaylistTracks(msg)
	case historyState:
		return b.updateHistory(msg)
	case notificationsState:
		return b.updateNotifications(msg)
	case nowPlayingState:
		return b.updateNowPlaying(msg)
	case confirmState:
		return b.updateConfirm(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, cmd
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			q := b.inputC.Value()
			if q == "" {
				return b, nil
			}
			return b, tea.Batch(b.startLoading(), b.searchTracks(q))

		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion):
			if suggestion, ok := b.searchSuggestion.Get(); ok {
				b.inputC.SetValue(suggestion)
				b.inputC.CursorEnd()
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.browse):
			return b, tea.Batch(b.startLoading(), b.browseCatalog())

		case bubblesKey.Matches(msg, b.keymap.randomPlay):
			return b, tea.Batch(b.startLoading(), func() tea.Msg {
				if err := b.controller.TogglePlayPause(); err != nil {
					return err
				}
				return playbackStartedMsg{}
			})

		case bubblesKey.Matches(msg, b.keymap.openPlaylists):
			b.setPlaylistItems()
			b.newState(playlistsState)
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.openHistory):
			b.setHistoryItems()
			b.newState(historyState)
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.openNotifications):
			b.setNotificationItems()
			b.newState(notificationsState)
			return b, nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)
	b.searchSuggestion = query.Suggest(b.inputC.Value())

	return b, cmd
}

func (b *statefulBubble) updateTracks(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && b.tracksC.FilterState() != list.Filtering {
		if track, ok := b.selectedTrack(&b.tracksC); ok {
			switch {
			case bubblesKey.Matches(msg, b.keymap.confirm):
				return b, tea.Batch(b.startLoading(), b.playTrack(track))

			case bubblesKey.Matches(msg, b.keymap.favorite):
				return b, b.toggleFavorite(track)
			}
		}
	}

	b.tracksC, cmd = b.tracksC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePlaylists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && b.playlistsC.FilterState() != list.Filtering {
		if item, ok := b.playlistsC.SelectedItem().(*listItem); ok {
			if playlist, ok := item.internal.(*catalog.Playlist); ok {
				switch {
				case bubblesKey.Matches(msg, b.keymap.confirm):
					b.selectedPlaylist = playlist
					b.setPlaylistTrackItems(playlist)
					b.newState(playlistTracksState)
					return b, nil

				case bubblesKey.Matches(msg, b.keymap.likePlaylist):
					return b, b.toggleLikePlaylist(playlist)

				case bubblesKey.Matches(msg, b.keymap.remove):
					b.askConfirm(
						fmt.Sprintf("Delete playlist %q?", playlist.Name),
						func() tea.Cmd { return b.deletePlaylist(playlist) },
					)
					return b, nil
				}
			}
		}
	}

	b.playlistsC, cmd = b.playlistsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePlaylistTracks(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && b.playlistTracksC.FilterState() != list.Filtering {
		if track, ok := b.selectedTrack(&b.playlistTracksC); ok {
			switch {
			case bubblesKey.Matches(msg, b.keymap.confirm):
				index := b.playlistTracksC.Index()
				return b, tea.Batch(b.startLoading(), b.playPlaylistFrom(b.selectedPlaylist, index))

			case bubblesKey.Matches(msg, b.keymap.favorite):
				return b, b.toggleFavorite(track)
			}
		}
	}

	b.playlistTracksC, cmd = b.playlistTracksC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && b.historyC.FilterState() != list.Filtering {
		if item, ok := b.historyC.SelectedItem().(*listItem); ok {
			if entry, ok := item.internal.(*history.Entry); ok {
				switch {
				case bubblesKey.Matches(msg, b.keymap.confirm):
					track, err := b.library.Catalog().Track(entry.TrackID)
					if err != nil {
						return b, func() tea.Msg { return err }
					}
					return b, tea.Batch(b.startLoading(), b.playTrack(track))

				case bubblesKey.Matches(msg, b.keymap.remove):
					return b, b.removeHistoryEntry(entry)
				}
			}
		}

		if bubblesKey.Matches(msg, b.keymap.clearAll) {
			b.askConfirm(
				"Clear the whole playback history?",
				func() tea.Cmd { return b.clearHistory() },
			)
			return b, nil
		}
	}

	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateNotifications(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && b.notificationsC.FilterState() != list.Filtering {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if item, ok := b.notificationsC.SelectedItem().(*listItem); ok {
				if notification, ok := item.internal.(*api.Notification); ok {
					return b, b.markNotificationRead(notification)
				}
			}

		case bubblesKey.Matches(msg, b.keymap.markAllRead):
			return b, b.markAllNotificationsRead()
		}
	}

	b.notificationsC, cmd = b.notificationsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateNowPlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.playPause):
			return b, func() tea.Msg {
				if err := b.controller.TogglePlayPause(); err != nil {
					return err
				}
				return nil
			}

		case bubblesKey.Matches(msg, b.keymap.nextTrack):
			return b, func() tea.Msg {
				if err := b.controller.Next(); err != nil {
					return err
				}
				return playbackStartedMsg{}
			}

		case bubblesKey.Matches(msg, b.keymap.prevTrack):
			return b, func() tea.Msg {
				if err := b.controller.Previous(); err != nil {
					return err
				}
				return playbackStartedMsg{}
			}

		case bubblesKey.Matches(msg, b.keymap.seekForward):
			return b, b.seekRelative(0.05)

		case bubblesKey.Matches(msg, b.keymap.seekBack):
			return b, b.seekRelative(-0.05)

		case bubblesKey.Matches(msg, b.keymap.volumeUp):
			b.controller.SetVolume(b.controller.Volume() + 0.1)
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.volumeDown):
			b.controller.SetVolume(b.controller.Volume() - 0.1)
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.favorite):
			if track := b.controller.Track(); track != nil {
				return b, b.toggleFavorite(track)
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.openArtist):
			return b, b.openArtistPage()

		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.accept):
			action := b.confirmAction
			b.confirmAction = nil
			b.previousState()
			if action != nil {
				return b, action()
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.reject):
			b.confirmAction = nil
			b.previousState()
			return b, nil
		}
	}

	return b, nil
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	return b, nil
}

// selectedTrack extracts the highlighted track from a list, if any.
func (b *statefulBubble) selectedTrack(l *list.Model) (*catalog.Track, bool) {
	item, ok := l.SelectedItem().(*listItem)
	if !ok {
		return nil, false
	}

	track, ok := item.internal.(*catalog.Track)
	return track, ok
}

// seekRelative nudges the playback position by the given fraction delta.
func (b *statefulBubble) seekRelative(delta float64) tea.Cmd {
	fraction := b.lastProgress.Fraction + delta
	return func() tea.Msg {
		if err := b.controller.Seek(fraction); err != nil {
			return err
		}
		return nil
	}
}

// refreshSelectedPlaylist re-derives the open playlist's track list, which
// matters for the favorites pseudo-playlist.
func (b *statefulBubble) refreshSelectedPlaylist() {
	if b.selectedPlaylist == nil {
		return
	}

	if b.selectedPlaylist.ID == catalog.FavoritesPlaylistID {
		b.selectedPlaylist = b.library.FavoritesPlaylist()
	}
	b.setPlaylistTrackItems(b.selectedPlaylist)
}

// activeList returns the list component backing the current state, if any.
func (b *statefulBubble) activeList() *list.Model {
	switch b.state {
	case tracksState:
		return &b.tracksC
	case playlistsState:
		return &b.playlistsC
	case playlistTracksState:
		return &b.playlistTracksC
	case historyState:
		return &b.historyC
	case notificationsState:
		return &b.notificationsC
	default:
		return nil
	}
}
