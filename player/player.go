// Package player drives a single playback session over an interchangeable
// media backend. The primary backend targets 'mpv' via its JSON-IPC
// interface; tracks without a playable media source fall back to a
// simulated backend that advances a synthetic clock instead.
package player

import "errors"

// ErrPlayback marks media load and decode failures, so callers can tell
// them apart from collection-operation errors.
var ErrPlayback = errors.New("playback error")

// State is the playback session lifecycle state.
type State int

const (
	// StateIdle means no track is loaded.
	StateIdle State = iota
	// StateLoading means a source is assigned and the backend is preparing it.
	StateLoading
	StatePlaying
	StatePaused
	// StateEnded means the track completed naturally.
	StateEnded
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Backend encapsulates the required capabilities of a media playback engine.
type Backend interface {
	// Load starts playback of the given URL with the specified title.
	// If an engine instance is already running, it loads the new source
	// into it.
	Load(url string, title string) error

	// TogglePause inverts the current playback suspension state.
	TogglePause() error

	// Paused retrieves the current suspension state of the engine.
	Paused() (bool, error)

	// Position retrieves the current absolute playback position in seconds.
	Position() (float64, error)

	// Duration retrieves the total length of the active media in seconds.
	Duration() (float64, error)

	// SeekTo transitions playback to an absolute timestamp in seconds.
	SeekTo(seconds float64) error

	// SetVolume applies a volume in [0, 1] to the engine.
	SetVolume(volume float64) error

	// StartTicker begins a background task that reports playback progress
	// through the callback at a cadence smooth enough for a progress bar.
	StartTicker(callback func(position, duration float64))

	// StopTicker terminates the background progress task.
	StopTicker()

	// Done returns a channel that is closed when the loaded track reaches
	// natural completion or the engine goes away.
	Done() <-chan struct{}

	// Close terminates the engine and releases its resources.
	Close() error
}
