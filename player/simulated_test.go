package player

import (
	"sync"
	"testing"
	"time"

	"github.com/afrorhythm/afro/auth"
	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/history"
	"github.com/afrorhythm/afro/library"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

// newSimulatedHarness builds a controller over a catalog where no track has
// a playable source, so the default backend factory always picks the
// synthetic one.
func newSimulatedHarness() (*Controller, *library.Library) {
	tracks := []*catalog.Track{
		{ID: 1, Title: "Midnight Market", ArtistID: 1, Duration: 230},
		{ID: 2, Title: "River Crossing", ArtistID: 1, Duration: 205},
	}
	artists := []*catalog.Artist{{ID: 1, Name: "Kofi Sound"}}
	cat := catalog.New(tracks, artists, nil)

	lib := library.New(nil, cat, mo.None[*auth.Session]())
	return NewController(lib), lib
}

func TestSimulatedBackend(t *testing.T) {
	Convey("Given a freshly loaded simulated backend", t, func() {
		s := NewSimulated()
		So(s.Load("", "Midnight Market"), ShouldBeNil)

		Convey("Position starts near zero and the duration is nominal", func() {
			pos, err := s.Position()
			So(err, ShouldBeNil)
			So(pos, ShouldBeBetween, -0.01, 1)

			duration, err := s.Duration()
			So(err, ShouldBeNil)
			So(duration, ShouldEqual, SimDuration)
		})

		Convey("Pausing holds the position still", func() {
			So(s.TogglePause(), ShouldBeNil)
			before, _ := s.Position()
			time.Sleep(30 * time.Millisecond)
			after, _ := s.Position()
			So(after, ShouldEqual, before)

			paused, err := s.Paused()
			So(err, ShouldBeNil)
			So(paused, ShouldBeTrue)

			Convey("Resuming counts time from the fold point", func() {
				So(s.TogglePause(), ShouldBeNil)
				resumed, _ := s.Position()
				So(resumed, ShouldBeBetween, before-0.01, before+5)
			})
		})

		Convey("Seeking jumps the displayed position immediately", func() {
			So(s.SeekTo(100), ShouldBeNil)
			pos, _ := s.Position()
			So(pos, ShouldBeBetween, 99, 105)
		})
	})
}

func TestSimulatedPlaybackCompletion(t *testing.T) {
	Convey("Given a controller playing a track without a source", t, func() {
		So(history.Clear(), ShouldBeNil)
		controller, lib := newSimulatedHarness()

		var mu sync.Mutex
		var states []State
		controller.OnState = func(state State) {
			mu.Lock()
			states = append(states, state)
			mu.Unlock()
		}
		sawState := func(want State) bool {
			mu.Lock()
			defer mu.Unlock()
			for _, s := range states {
				if s == want {
					return true
				}
			}
			return false
		}

		track, _ := lib.Catalog().Track(1)
		So(controller.Play(track), ShouldBeNil)
		So(controller.Simulated(), ShouldBeTrue)
		So(controller.State(), ShouldEqual, StatePlaying)

		Convey("Seeking near the end completes within one tick and advances", func() {
			So(controller.Seek(0.999), ShouldBeNil)

			So(eventually(func() bool { return sawState(StateEnded) }), ShouldBeTrue)
			So(eventually(func() bool {
				next := controller.Track()
				return next != nil && next.ID == 2 && controller.Playing()
			}), ShouldBeTrue)
			So(controller.Simulated(), ShouldBeTrue)

			entries := lib.History()
			So(len(entries), ShouldEqual, 1)
			So(entries[0].TrackID, ShouldEqual, 1)
			So(entries[0].Title, ShouldEqual, "Midnight Market")
		})
	})
}
