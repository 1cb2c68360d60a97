// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Remote API - these keys govern communication with the AfroRhythm service.
const (
	APIURL = "api.url"
)

// History Tracking - these keys configure the persistence of playback history.
const (
	HistorySaveOnPlay = "history.save_on_play"
	HistoryCap        = "history.cap"
)

// Media Playback - these keys maintain the state and configuration for the external audio player.
const (
	PlayerDefault = "player.default"
	PlayerVolume  = "player.volume"
)

// Search Interaction - these keys define the behavior of catalog search and suggestions.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchLimit                = "search.limit"
)

// Terminal User Interface (TUI) - these keys style the now-playing screen.
const (
	TUIProgressWidth      = "tui.progress_width"
	TUIShowHelp           = "tui.show_help"
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
