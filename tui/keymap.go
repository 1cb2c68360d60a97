// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/afrorhythm/afro/color"
	"github.com/afrorhythm/afro/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	confirm,
	accept, reject,
	acceptSearchSuggestion,
	back,
	remove,
	clearAll,
	favorite,
	randomPlay,
	likePlaylist,
	markAllRead,
	browse,
	openPlaylists, openHistory, openNotifications,
	up, down, left, right,
	top, bottom,
	playPause, nextTrack, prevTrack,
	seekForward, seekBack,
	volumeUp, volumeDown,
	openArtist,
	showHelp key.Binding
}

// setState updates the active keymap configuration to match the specified application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("play")),
		),
		accept: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "yes"),
		),
		reject: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
		acceptSearchSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept search suggestion"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		clearAll: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "clear all"),
		),
		favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		randomPlay: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "play random"),
		),
		likePlaylist: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "like playlist"),
		),
		markAllRead: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "mark all read"),
		),
		browse: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "browse catalog"),
		),
		openPlaylists: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "playlists"),
		),
		openHistory: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "history"),
		),
		openNotifications: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "notifications"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right"),
		),
		top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		nextTrack: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next track"),
		),
		prevTrack: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev track"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "seek forward"),
		),
		seekBack: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "seek back"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		openArtist: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "artist page"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit))
	case searchState:
		search := withDescription(k.confirm, "search")
		return h(search, k.acceptSearchSuggestion, k.randomPlay, k.browse),
			h(search, k.acceptSearchSuggestion, k.randomPlay, k.browse, k.openPlaylists, k.openHistory, k.openNotifications, k.forceQuit)
	case tracksState:
		return to2(h(k.confirm, k.favorite, k.back))
	case playlistsState:
		open := withDescription(k.confirm, "open")
		return to2(h(open, k.likePlaylist, k.remove, k.back))
	case playlistTracksState:
		return to2(h(k.confirm, k.favorite, k.back))
	case historyState:
		return to2(h(k.confirm, k.remove, k.clearAll, k.back))
	case notificationsState:
		read := withDescription(k.confirm, "mark read")
		return to2(h(read, k.markAllRead, k.back))
	case nowPlayingState:
		return h(k.playPause, k.nextTrack, k.prevTrack, k.favorite, k.back),
			h(k.playPause, k.nextTrack, k.prevTrack, k.seekForward, k.seekBack, k.volumeUp, k.volumeDown, k.favorite, k.openArtist, k.back, k.quit)
	case confirmState:
		return to2(h(k.accept, k.reject))
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		NextPage:             k.right,
		PrevPage:             k.left,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		ClearFilter:          k.back,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: k.confirm,
		ShowFullHelp:         k.showHelp,
		CloseFullHelp:        k.showHelp,
		Quit:                 k.quit,
		ForceQuit:            k.forceQuit,
	}
}

// withDescription clones a binding with an alternate help description.
func withDescription(b key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(b.Keys()...),
		key.WithHelp(b.Help().Key, description),
	)
}
