package player

import (
	"fmt"
	"sync"

	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/key"
	"github.com/afrorhythm/afro/library"
	"github.com/afrorhythm/afro/log"
	"github.com/afrorhythm/afro/util"
	"github.com/spf13/viper"
)

// Progress is a playback position report delivered to the UI.
type Progress struct {
	Position float64
	Duration float64
	Fraction float64

	// Display carries the position formatted M:SS, DurationDisplay the
	// same for the total length.
	Display         string
	DurationDisplay string
}

// Controller owns exactly one playback session at a time. It picks a real
// or simulated backend per track, keeps progress flowing to the UI, and
// handles the end-of-track transition policy: circular auto-advance within
// the active playlist context, or through the whole catalog in id order
// when no context is set.
type Controller struct {
	mu  sync.Mutex
	lib *library.Library

	state     State
	track     *catalog.Track
	backend   Backend
	simulated bool
	volume    float64

	playlist *catalog.Playlist // active playlist context, nil for catalog order
	index    int

	// generation invalidates done-watchers of superseded loads, so a track
	// that was skipped away from cannot trigger a second auto-advance.
	generation uint64

	// OnProgress and OnState are invoked outside the controller lock.
	OnProgress func(Progress)
	OnState    func(State)

	newBackend func(simulated bool) Backend
}

// NewController creates an idle controller bound to the given library.
func NewController(lib *library.Library) *Controller {
	return &Controller{
		lib:        lib,
		state:      StateIdle,
		volume:     util.Clamp(viper.GetFloat64(key.PlayerVolume), 0, 1),
		newBackend: defaultBackend,
	}
}

// defaultBackend resolves the configured playback engine. Simulated mode
// always takes the synthetic backend regardless of configuration.
func defaultBackend(simulated bool) Backend {
	if simulated {
		return NewSimulated()
	}

	switch viper.GetString(key.PlayerDefault) {
	case "iina":
		return NewIINA()
	default:
		return NewMPV()
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Track returns the currently loaded track, nil when idle.
func (c *Controller) Track() *catalog.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.track
}

// Playing reports whether audio is actively advancing.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StatePlaying
}

// Simulated reports whether the current session runs on the synthetic
// backend.
func (c *Controller) Simulated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.simulated
}

// Playlist returns the active playlist context and the position within it.
// The playlist is nil when playing from the catalog at large.
func (c *Controller) Playlist() (*catalog.Playlist, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playlist, c.index
}

// Volume returns the session volume in [0, 1].
func (c *Controller) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// SetVolume clamps and applies the session volume. The value persists
// across track loads within the session.
func (c *Controller) SetVolume(volume float64) {
	c.mu.Lock()
	c.volume = util.Clamp(volume, 0, 1)
	backend := c.backend
	v := c.volume
	c.mu.Unlock()

	if backend != nil {
		if err := backend.SetVolume(v); err != nil {
			log.Warnf("volume not applied: %v", err)
		}
	}
}

// Play loads a single track outside any playlist context.
func (c *Controller) Play(track *catalog.Track) error {
	c.mu.Lock()
	c.playlist = nil
	c.index = 0
	c.mu.Unlock()
	return c.load(track)
}

// PlayPlaylist starts the playlist at the given index and keeps it as the
// active context for auto-advance and manual stepping.
func (c *Controller) PlayPlaylist(playlist *catalog.Playlist, index int) error {
	if playlist == nil || len(playlist.TrackIDs) == 0 {
		return fmt.Errorf("%w: playlist is empty", ErrPlayback)
	}
	index = ((index % len(playlist.TrackIDs)) + len(playlist.TrackIDs)) % len(playlist.TrackIDs)

	track, err := c.lib.Catalog().Track(playlist.TrackIDs[index])
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPlayback, err)
	}

	c.mu.Lock()
	c.playlist = playlist
	c.index = index
	c.mu.Unlock()
	return c.load(track)
}

// load tears the previous session down and brings the track up on a fresh
// backend. Tracks without a playable source run on the simulated backend,
// a deliberate degraded mode rather than an error.
func (c *Controller) load(track *catalog.Track) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation

	if c.backend != nil {
		c.backend.StopTicker()
		if err := c.backend.Close(); err != nil {
			log.Warnf("backend close: %v", err)
		}
		c.backend = nil
	}

	c.track = track
	c.simulated = !track.Playable()
	c.setStateLocked(StateLoading)

	backend := c.newBackend(c.simulated)
	c.backend = backend
	title := fmt.Sprintf("%s - %s", c.lib.Catalog().ArtistName(track), track.Title)
	volume := c.volume
	c.mu.Unlock()

	if err := backend.Load(track.MediaURL, title); err != nil {
		c.reset()
		return fmt.Errorf("%w: %v", ErrPlayback, err)
	}

	if err := backend.SetVolume(volume); err != nil {
		log.Debugf("initial volume not applied: %v", err)
	}

	c.mu.Lock()
	if gen != c.generation {
		// A newer load won the race, hand the backend back.
		c.mu.Unlock()
		_ = backend.Close()
		return nil
	}
	c.setStateLocked(StatePlaying)
	c.mu.Unlock()

	backend.StartTicker(func(position, duration float64) {
		c.emitProgress(position, duration)
	})

	go func() {
		<-backend.Done()
		c.onEnded(gen)
	}()

	return nil
}

// reset returns the controller to Idle with the playback flag down, the
// guaranteed state after any load or backend failure.
func (c *Controller) reset() {
	c.mu.Lock()
	if c.backend != nil {
		c.backend.StopTicker()
		_ = c.backend.Close()
		c.backend = nil
	}
	c.track = nil
	c.simulated = false
	c.setStateLocked(StateIdle)
	c.mu.Unlock()
}

// Stop ends the session and releases the backend.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()
	c.reset()
}

// TogglePlayPause suspends or resumes playback. Called while idle with no
// track selected, it picks a random track and plays it instead, as a
// convenience default.
func (c *Controller) TogglePlayPause() error {
	c.mu.Lock()

	switch c.state {
	case StateIdle, StateEnded, StateError:
		track := c.track
		c.mu.Unlock()

		if track == nil {
			random, ok := c.lib.Catalog().Random().Get()
			if !ok {
				return fmt.Errorf("%w: catalog is empty", ErrPlayback)
			}
			track = random
		}
		return c.load(track)

	case StatePlaying:
		backend := c.backend
		c.setStateLocked(StatePaused)
		c.mu.Unlock()

		backend.StopTicker()
		return backend.TogglePause()

	case StatePaused:
		backend := c.backend
		c.setStateLocked(StatePlaying)
		c.mu.Unlock()

		if err := backend.TogglePause(); err != nil {
			return err
		}
		backend.StartTicker(func(position, duration float64) {
			c.emitProgress(position, duration)
		})
		return nil

	default:
		c.mu.Unlock()
		return nil
	}
}

// Next advances to the following track: within the playlist context when
// one is active, otherwise through the catalog in id order. Both wrap
// around circularly.
func (c *Controller) Next() error {
	return c.step(1)
}

// Previous steps back to the preceding track with the same wraparound.
func (c *Controller) Previous() error {
	return c.step(-1)
}

func (c *Controller) step(delta int) error {
	c.mu.Lock()
	playlist := c.playlist
	index := c.index
	current := c.track
	c.mu.Unlock()

	if playlist != nil {
		n := len(playlist.TrackIDs)
		index = ((index+delta)%n + n) % n

		track, err := c.lib.Catalog().Track(playlist.TrackIDs[index])
		if err != nil {
			return fmt.Errorf("%w: %s", ErrPlayback, err)
		}

		c.mu.Lock()
		c.index = index
		c.mu.Unlock()
		return c.load(track)
	}

	if current == nil {
		random, ok := c.lib.Catalog().Random().Get()
		if !ok {
			return fmt.Errorf("%w: catalog is empty", ErrPlayback)
		}
		return c.load(random)
	}

	var (
		track *catalog.Track
		err   error
	)
	if delta >= 0 {
		track, err = c.lib.Catalog().NextAfter(current.ID)
	} else {
		track, err = c.lib.Catalog().PrevBefore(current.ID)
	}
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPlayback, err)
	}

	return c.load(track)
}

// Seek moves playback to the given completion fraction, clamped to [0, 1].
// Valid in any state once a track is loaded. The displayed position
// updates immediately; in simulated mode the synthetic clock resets to the
// fraction as well.
func (c *Controller) Seek(fraction float64) error {
	c.mu.Lock()
	backend := c.backend
	track := c.track
	c.mu.Unlock()

	if track == nil || backend == nil {
		return fmt.Errorf("%w: no track loaded", ErrPlayback)
	}

	fraction = util.Clamp(fraction, 0, 1)

	duration, err := backend.Duration()
	if err != nil || duration <= 0 {
		duration = float64(track.Duration)
	}

	position := fraction * duration
	if err := backend.SeekTo(position); err != nil {
		return fmt.Errorf("%w: %v", ErrPlayback, err)
	}

	c.emitProgress(position, duration)
	return nil
}

// onEnded handles natural completion: the play is recorded and the session
// auto-advances. Stale generations are ignored so a skipped track cannot
// advance twice.
func (c *Controller) onEnded(gen uint64) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}

	if c.backend != nil {
		c.backend.StopTicker()
	}
	track := c.track
	c.setStateLocked(StateEnded)
	c.mu.Unlock()

	if track != nil {
		if err := c.lib.RecordPlay(track.ID); err != nil {
			log.Warnf("play not recorded for track %d: %v", track.ID, err)
		}
	}

	if err := c.step(1); err != nil {
		log.Warnf("auto-advance failed: %v", err)
		c.reset()
	}
}

// setStateLocked transitions the state and schedules the notification.
// Callers hold mu; the callback itself runs unlocked.
func (c *Controller) setStateLocked(state State) {
	if c.state == state {
		return
	}
	c.state = state

	if c.OnState != nil {
		go c.OnState(state)
	}
}

// emitProgress fans a position sample out to the UI.
func (c *Controller) emitProgress(position, duration float64) {
	if c.OnProgress == nil {
		return
	}

	var fraction float64
	if duration > 0 {
		fraction = util.Clamp(position/duration, 0, 1)
	}

	c.OnProgress(Progress{
		Position:        position,
		Duration:        duration,
		Fraction:        fraction,
		Display:         util.FormatDuration(int(position)),
		DurationDisplay: util.FormatDuration(int(duration)),
	})
}
