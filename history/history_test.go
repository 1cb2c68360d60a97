package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/afrorhythm/afro/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func entry(trackID int64) *Entry {
	return &Entry{
		TrackID:  trackID,
		Title:    fmt.Sprintf("Track %d", trackID),
		PlayedAt: time.Now(),
	}
}

func TestInsert(t *testing.T) {
	Convey("Given an empty history", t, func() {
		var entries []*Entry

		Convey("Inserting places the entry at the front", func() {
			entries = Insert(entries, entry(1), DefaultCap)
			entries = Insert(entries, entry(2), DefaultCap)
			So(len(entries), ShouldEqual, 2)
			So(entries[0].TrackID, ShouldEqual, 2)
		})

		Convey("Replaying a track moves it to the front without duplicating", func() {
			entries = Insert(entries, entry(1), DefaultCap)
			entries = Insert(entries, entry(2), DefaultCap)
			entries = Insert(entries, entry(1), DefaultCap)
			So(len(entries), ShouldEqual, 2)
			So(entries[0].TrackID, ShouldEqual, 1)
			So(entries[1].TrackID, ShouldEqual, 2)
		})
	})

	Convey("Given 52 sequential plays followed by a replay", t, func() {
		var entries []*Entry
		for id := int64(1); id <= 52; id++ {
			entries = Insert(entries, entry(id), DefaultCap)
		}
		entries = Insert(entries, entry(1), DefaultCap)

		Convey("The replayed track is at the front", func() {
			So(entries[0].TrackID, ShouldEqual, 1)
		})

		Convey("The history is capped at 50", func() {
			So(len(entries), ShouldEqual, DefaultCap)
		})

		Convey("No track id appears twice", func() {
			seen := map[int64]bool{}
			for _, e := range entries {
				So(seen[e.TrackID], ShouldBeFalse)
				seen[e.TrackID] = true
			}
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given an external list with repeats and excess length", t, func() {
		var entries []*Entry
		for id := int64(1); id <= 60; id++ {
			entries = append(entries, entry(id))
		}
		entries = append([]*Entry{entry(3)}, entries...)

		normalized := Normalize(entries, DefaultCap)

		Convey("The first occurrence per track wins", func() {
			So(normalized[0].TrackID, ShouldEqual, 3)
			So(normalized[1].TrackID, ShouldEqual, 1)
		})

		Convey("The result is capped at the limit", func() {
			So(len(normalized), ShouldEqual, DefaultCap)
		})

		Convey("No track id appears twice", func() {
			seen := map[int64]bool{}
			for _, e := range normalized {
				So(seen[e.TrackID], ShouldBeFalse)
				seen[e.TrackID] = true
			}
		})
	})
}

func TestPersistence(t *testing.T) {
	Convey("Given a saved entry", t, func() {
		So(Clear(), ShouldBeNil)
		So(Save(entry(7), DefaultCap), ShouldBeNil)

		Convey("Get returns it", func() {
			entries, err := Get()
			So(err, ShouldBeNil)
			So(len(entries), ShouldEqual, 1)
			So(entries[0].TrackID, ShouldEqual, 7)
		})

		Convey("Remove deletes it", func() {
			So(Remove(7), ShouldBeNil)
			entries, err := Get()
			So(err, ShouldBeNil)
			So(entries, ShouldBeEmpty)
		})

		Convey("Clear empties the history", func() {
			So(Clear(), ShouldBeNil)
			entries, err := Get()
			So(err, ShouldBeNil)
			So(entries, ShouldBeEmpty)
		})
	})
}

func TestPlayedAtDisplay(t *testing.T) {
	Convey("PlayedAtDisplay", t, func() {
		e := entry(1)

		e.PlayedAt = time.Now().Add(-30 * time.Second)
		So(e.PlayedAtDisplay(), ShouldEqual, "just now")

		e.PlayedAt = time.Now().Add(-5 * time.Minute)
		So(e.PlayedAtDisplay(), ShouldEqual, "5 minutes ago")

		e.PlayedAt = time.Now().Add(-2 * time.Hour)
		So(e.PlayedAtDisplay(), ShouldEqual, "2 hours ago")
	})
}
