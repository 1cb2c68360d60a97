// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"time"

	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/internal/ui"
	"github.com/afrorhythm/afro/key"
	"github.com/afrorhythm/afro/library"
	"github.com/afrorhythm/afro/player"
	"github.com/afrorhythm/afro/style"
	"github.com/afrorhythm/afro/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble encapsulates the comprehensive application state, including component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool
	busy          bool // protects against rapid input during async ops

	keymap *statefulKeymap

	// components
	spinnerC        spinner.Model
	inputC          textinput.Model
	tracksC         list.Model
	playlistsC      list.Model
	playlistTracksC list.Model
	historyC        list.Model
	notificationsC  list.Model
	progressC       progress.Model
	helpC           help.Model

	library    *library.Library
	controller *player.Controller

	bootstrappedChannel  chan struct{}
	searchResultsChannel chan []*catalog.Track
	progressChannel      chan player.Progress
	playerStateChannel   chan player.State
	errorChannel         chan error

	progressStatus   string
	lastProgress     player.Progress
	selectedPlaylist *catalog.Playlist

	confirmPrompt string
	confirmAction func() tea.Cmd

	lastError error

	width, height    int
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState facilitates an idempotent transition to a target state, recording the previous state in the navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	// Do not push these states to history
	if !lo.Contains([]state{
		loadingState,
		confirmState,
	}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		s := b.statesHistory.Pop()
		b.setState(s)
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	for _, l := range []*list.Model{
		&b.tracksC,
		&b.playlistsC,
		&b.playlistTracksC,
		&b.historyC,
		&b.notificationsC,
	} {
		l.SetSize(listWidth, listHeight)
		l.Help.Width = listWidth
	}

	b.progressC.Width = util.Min(viper.GetInt(key.TUIProgressWidth), listWidth)

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth
}

// startLoading enters a concurrent loading state, initializing visual indicators across child components.
func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	b.busy = true
	return tea.Batch(b.spinnerC.Tick, b.tracksC.StartSpinner(), b.playlistsC.StartSpinner())
}

// stopLoading exits the loading state and synchronizes child component visual indicators.
func (b *statefulBubble) stopLoading() tea.Cmd {
	b.loading = false
	b.busy = false
	b.tracksC.StopSpinner()
	b.playlistsC.StopSpinner()
	return nil
}

// askConfirm routes the session into the confirmation view, running the
// action only when the user accepts.
func (b *statefulBubble) askConfirm(prompt string, action func() tea.Cmd) {
	b.confirmPrompt = prompt
	b.confirmAction = action
	b.newState(confirmState)
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		bootstrappedChannel:  make(chan struct{}),
		searchResultsChannel: make(chan []*catalog.Track),
		progressChannel:      make(chan player.Progress, 8),
		playerStateChannel:   make(chan player.State, 8),
		errorChannel:         make(chan error),

		notifier: &ui.Model{},
	}

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, description bool, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "Search tracks and artists"
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.progressC = progress.New(progress.WithDefaultGradient())

	bubble.tracksC = makeList("Tracks", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1),
		),
	})
	bubble.tracksC.SetStatusBarItemName("track", "tracks")

	bubble.playlistsC = makeList("Playlists", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1),
		),
	})
	bubble.playlistsC.SetStatusBarItemName("playlist", "playlists")

	bubble.playlistTracksC = makeList("Playlist", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Peach).Padding(0, 1),
		),
	})
	bubble.playlistTracksC.SetStatusBarItemName("track", "tracks")

	bubble.historyC = makeList("History", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Yellow).Padding(0, 1),
		),
	})
	bubble.historyC.SetStatusBarItemName("entry", "entries")

	bubble.notificationsC = makeList("Notifications", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Blue).Padding(0, 1),
		),
	})
	bubble.notificationsC.SetStatusBarItemName("notification", "notifications")

	bubble.options = options

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()

	return &bubble
}
