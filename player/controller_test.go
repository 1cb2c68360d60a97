package player

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/afrorhythm/afro/auth"
	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/filesystem"
	"github.com/afrorhythm/afro/library"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

// fakeBackend scripts the media engine so controller transitions can be
// driven without mpv or timers.
type fakeBackend struct {
	mu        sync.Mutex
	loads     chan string
	done      chan struct{}
	doneOnce  sync.Once
	loadErr   error
	url       string
	volume    float64
	sought    []float64
	duration  float64
	paused    bool
	ticking   bool
	closed    bool
	simulated bool
}

func (b *fakeBackend) Load(url string, title string) error {
	if b.loadErr != nil {
		return b.loadErr
	}
	b.mu.Lock()
	b.url = url
	b.mu.Unlock()
	if b.loads != nil {
		b.loads <- url
	}
	return nil
}

func (b *fakeBackend) TogglePause() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paused = !b.paused
	return nil
}

func (b *fakeBackend) Paused() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.paused, nil
}

func (b *fakeBackend) Position() (float64, error) { return 0, nil }

func (b *fakeBackend) Duration() (float64, error) {
	if b.duration == 0 {
		return 0, fmt.Errorf("duration unavailable")
	}
	return b.duration, nil
}

func (b *fakeBackend) SeekTo(seconds float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sought = append(b.sought, seconds)
	return nil
}

func (b *fakeBackend) SetVolume(volume float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.volume = volume
	return nil
}

func (b *fakeBackend) StartTicker(func(position, duration float64)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ticking = true
}

func (b *fakeBackend) StopTicker() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ticking = false
}

func (b *fakeBackend) Done() <-chan struct{} { return b.done }

func (b *fakeBackend) finish() {
	b.doneOnce.Do(func() { close(b.done) })
}

func (b *fakeBackend) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.finish()
	return nil
}

// harness wires a controller to fake backends over a three track catalog.
type harness struct {
	controller *Controller
	lib        *library.Library
	loads      chan string

	mu       sync.Mutex
	backends []*fakeBackend
}

func newHarness() *harness {
	tracks := []*catalog.Track{
		{ID: 1, Title: "Lagos Nights", ArtistID: 1, Duration: 210, MediaURL: "https://cdn.afrorhythm.app/1.mp3"},
		{ID: 2, Title: "Desert Rose", ArtistID: 1, Duration: 195, MediaURL: "https://cdn.afrorhythm.app/2.mp3"},
		{ID: 3, Title: "Third Son", ArtistID: 1, Duration: 180, MediaURL: "placeholder"},
	}
	artists := []*catalog.Artist{{ID: 1, Name: "Ayra Vibes"}}
	cat := catalog.New(tracks, artists, nil)

	h := &harness{
		lib:   library.New(nil, cat, mo.None[*auth.Session]()),
		loads: make(chan string, 16),
	}

	h.controller = NewController(h.lib)
	h.controller.newBackend = func(simulated bool) Backend {
		b := &fakeBackend{
			loads:     h.loads,
			done:      make(chan struct{}),
			simulated: simulated,
		}
		h.mu.Lock()
		h.backends = append(h.backends, b)
		h.mu.Unlock()
		return b
	}
	return h
}

func (h *harness) last() *fakeBackend {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.backends[len(h.backends)-1]
}

func (h *harness) awaitLoad() bool {
	select {
	case <-h.loads:
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}

func eventually(condition func() bool) bool {
	for i := 0; i < 200; i++ {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestControllerLoad(t *testing.T) {
	Convey("Given an idle controller", t, func() {
		h := newHarness()
		track, _ := h.lib.Catalog().Track(1)

		Convey("Playing a track with a real source uses a real backend", func() {
			So(h.controller.Play(track), ShouldBeNil)
			So(h.awaitLoad(), ShouldBeTrue)
			So(h.controller.State(), ShouldEqual, StatePlaying)
			So(h.controller.Simulated(), ShouldBeFalse)
			So(h.last().ticking, ShouldBeTrue)
		})

		Convey("A placeholder source falls back to the simulated backend", func() {
			simulated, _ := h.lib.Catalog().Track(3)
			So(h.controller.Play(simulated), ShouldBeNil)
			So(h.awaitLoad(), ShouldBeTrue)
			So(h.controller.Simulated(), ShouldBeTrue)
			So(h.controller.State(), ShouldEqual, StatePlaying)
		})

		Convey("A backend failure resets to idle with a playback error", func() {
			h.controller.newBackend = func(bool) Backend {
				return &fakeBackend{done: make(chan struct{}), loadErr: fmt.Errorf("decode failure")}
			}
			err := h.controller.Play(track)
			So(err, ShouldWrap, ErrPlayback)
			So(h.controller.State(), ShouldEqual, StateIdle)
			So(h.controller.Playing(), ShouldBeFalse)
			So(h.controller.Track(), ShouldBeNil)
		})
	})
}

func TestControllerPauseResume(t *testing.T) {
	Convey("Given a playing controller", t, func() {
		h := newHarness()
		track, _ := h.lib.Catalog().Track(1)
		So(h.controller.Play(track), ShouldBeNil)
		So(h.awaitLoad(), ShouldBeTrue)

		Convey("Toggling suspends playback and cancels the ticker", func() {
			So(h.controller.TogglePlayPause(), ShouldBeNil)
			So(h.controller.State(), ShouldEqual, StatePaused)
			So(h.last().ticking, ShouldBeFalse)
			So(h.last().paused, ShouldBeTrue)

			Convey("Toggling again resumes and restarts the ticker", func() {
				So(h.controller.TogglePlayPause(), ShouldBeNil)
				So(h.controller.State(), ShouldEqual, StatePlaying)
				So(h.last().ticking, ShouldBeTrue)
			})
		})
	})

	Convey("Given an idle controller with no track selected", t, func() {
		h := newHarness()

		Convey("Toggling picks a random track and plays it", func() {
			So(h.controller.TogglePlayPause(), ShouldBeNil)
			So(h.awaitLoad(), ShouldBeTrue)
			So(h.controller.State(), ShouldEqual, StatePlaying)
			So(h.controller.Track(), ShouldNotBeNil)
		})
	})
}

func TestControllerCatalogStepping(t *testing.T) {
	Convey("Given a controller playing from the catalog", t, func() {
		h := newHarness()
		track, _ := h.lib.Catalog().Track(3)
		So(h.controller.Play(track), ShouldBeNil)
		So(h.awaitLoad(), ShouldBeTrue)

		Convey("Next wraps from the last track back to the first", func() {
			So(h.controller.Next(), ShouldBeNil)
			So(h.awaitLoad(), ShouldBeTrue)
			So(h.controller.Track().ID, ShouldEqual, 1)
		})

		Convey("Previous from the first track wraps to the last", func() {
			first, _ := h.lib.Catalog().Track(1)
			So(h.controller.Play(first), ShouldBeNil)
			So(h.awaitLoad(), ShouldBeTrue)

			So(h.controller.Previous(), ShouldBeNil)
			So(h.awaitLoad(), ShouldBeTrue)
			So(h.controller.Track().ID, ShouldEqual, 3)
		})
	})
}

func TestControllerPlaylistContext(t *testing.T) {
	Convey("Given a controller playing a playlist", t, func() {
		h := newHarness()
		playlist := &catalog.Playlist{ID: 20, Name: "Afro Heat", TrackIDs: []int64{2, 3}}

		So(h.controller.PlayPlaylist(playlist, 1), ShouldBeNil)
		So(h.awaitLoad(), ShouldBeTrue)
		So(h.controller.Track().ID, ShouldEqual, 3)

		Convey("Next wraps from the last playlist index back to zero", func() {
			So(h.controller.Next(), ShouldBeNil)
			So(h.awaitLoad(), ShouldBeTrue)
			So(h.controller.Track().ID, ShouldEqual, 2)

			_, index := h.controller.Playlist()
			So(index, ShouldEqual, 0)
		})

		Convey("Previous wraps the other way", func() {
			So(h.controller.Previous(), ShouldBeNil)
			So(h.awaitLoad(), ShouldBeTrue)
			So(h.controller.Track().ID, ShouldEqual, 2)
		})

		Convey("The context survives track loads", func() {
			So(h.controller.Next(), ShouldBeNil)
			So(h.awaitLoad(), ShouldBeTrue)

			context, _ := h.controller.Playlist()
			So(context, ShouldEqual, playlist)
		})
	})
}

func TestControllerAutoAdvance(t *testing.T) {
	Convey("Given a controller playing the last catalog track", t, func() {
		h := newHarness()
		track, _ := h.lib.Catalog().Track(3)
		So(h.controller.Play(track), ShouldBeNil)
		So(h.awaitLoad(), ShouldBeTrue)

		Convey("Natural completion records the play and wraps to the first track", func() {
			h.last().finish()

			So(h.awaitLoad(), ShouldBeTrue)
			So(eventually(func() bool { return h.controller.State() == StatePlaying }), ShouldBeTrue)
			So(h.controller.Track().ID, ShouldEqual, 1)

			history := h.lib.History()
			So(len(history), ShouldEqual, 1)
			So(history[0].TrackID, ShouldEqual, 3)
		})
	})

	Convey("Given a controller playing a playlist's last entry", t, func() {
		h := newHarness()
		playlist := &catalog.Playlist{ID: 20, Name: "Afro Heat", TrackIDs: []int64{1, 2}}
		So(h.controller.PlayPlaylist(playlist, 1), ShouldBeNil)
		So(h.awaitLoad(), ShouldBeTrue)

		Convey("Auto-advance wraps to playlist index zero", func() {
			h.last().finish()

			So(h.awaitLoad(), ShouldBeTrue)
			So(eventually(func() bool { return h.controller.Track().ID == 1 }), ShouldBeTrue)

			_, index := h.controller.Playlist()
			So(index, ShouldEqual, 0)
		})
	})

	Convey("Given a track that was skipped away from", t, func() {
		h := newHarness()
		track, _ := h.lib.Catalog().Track(1)
		So(h.controller.Play(track), ShouldBeNil)
		So(h.awaitLoad(), ShouldBeTrue)
		first := h.last()

		So(h.controller.Next(), ShouldBeNil)
		So(h.awaitLoad(), ShouldBeTrue)

		Convey("Its late completion signal does not advance the session again", func() {
			first.finish()
			time.Sleep(100 * time.Millisecond)
			So(h.controller.Track().ID, ShouldEqual, 2)
		})
	})
}

func TestControllerSeekAndVolume(t *testing.T) {
	Convey("Given a playing controller", t, func() {
		h := newHarness()
		track, _ := h.lib.Catalog().Track(1)

		var mu sync.Mutex
		var reports []Progress
		h.controller.OnProgress = func(p Progress) {
			mu.Lock()
			reports = append(reports, p)
			mu.Unlock()
		}

		So(h.controller.Play(track), ShouldBeNil)
		So(h.awaitLoad(), ShouldBeTrue)
		h.last().duration = 200

		Convey("Seek clamps the fraction to [0, 1]", func() {
			So(h.controller.Seek(1.5), ShouldBeNil)
			So(h.controller.Seek(-0.25), ShouldBeNil)
			So(h.last().sought, ShouldResemble, []float64{200, 0})
		})

		Convey("Seek reports the new position immediately, formatted M:SS", func() {
			So(h.controller.Seek(0.5), ShouldBeNil)

			mu.Lock()
			last := reports[len(reports)-1]
			mu.Unlock()
			So(last.Position, ShouldEqual, 100)
			So(last.Display, ShouldEqual, "1:40")
			So(last.DurationDisplay, ShouldEqual, "3:20")
		})

		Convey("Seeking with no track loaded is a playback error", func() {
			h.controller.Stop()
			So(h.controller.Seek(0.5), ShouldWrap, ErrPlayback)
		})

		Convey("Volume clamps and persists across loads", func() {
			h.controller.SetVolume(1.7)
			So(h.controller.Volume(), ShouldEqual, 1)

			h.controller.SetVolume(0.3)
			So(h.last().volume, ShouldEqual, 0.3)

			next, _ := h.lib.Catalog().Track(2)
			So(h.controller.Play(next), ShouldBeNil)
			So(h.awaitLoad(), ShouldBeTrue)
			So(h.last().volume, ShouldEqual, 0.3)
		})
	})
}
