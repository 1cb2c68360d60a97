package catalog

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func testCatalog() *Catalog {
	tracks := []*Track{
		{ID: 3, Title: "Third Son", ArtistID: 1, Duration: 180},
		{ID: 1, Title: "Lagos Nights", ArtistID: 1, Duration: 210, MediaURL: "https://cdn.afrorhythm.app/1.mp3"},
		{ID: 2, Title: "Desert Rose", ArtistID: 2, Duration: 195},
	}
	artists := []*Artist{
		{ID: 1, Name: "Ayra Vibes", Followers: 10},
		{ID: 2, Name: "Kofi Sound", Followers: 3},
	}
	return New(tracks, artists, nil)
}

func TestCatalogOrder(t *testing.T) {
	Convey("Given a catalog built from unsorted tracks", t, func() {
		c := testCatalog()

		Convey("Tracks are ordered by id", func() {
			ids := []int64{}
			for _, tr := range c.Tracks() {
				ids = append(ids, tr.ID)
			}
			So(ids, ShouldResemble, []int64{1, 2, 3})
		})

		Convey("IndexOf matches the sorted order", func() {
			So(c.IndexOf(1), ShouldEqual, 0)
			So(c.IndexOf(3), ShouldEqual, 2)
			So(c.IndexOf(42), ShouldEqual, -1)
		})
	})
}

func TestCircularStepping(t *testing.T) {
	Convey("Given a three track catalog", t, func() {
		c := testCatalog()

		Convey("NextAfter wraps from the last track to the first", func() {
			next, err := c.NextAfter(3)
			So(err, ShouldBeNil)
			So(next.ID, ShouldEqual, 1)
		})

		Convey("PrevBefore wraps from the first track to the last", func() {
			prev, err := c.PrevBefore(1)
			So(err, ShouldBeNil)
			So(prev.ID, ShouldEqual, 3)
		})

		Convey("Stepping an unknown track fails", func() {
			_, err := c.NextAfter(99)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPlayable(t *testing.T) {
	Convey("Track playability", t, func() {
		So((&Track{MediaURL: "https://cdn.afrorhythm.app/1.mp3"}).Playable(), ShouldBeTrue)
		So((&Track{MediaURL: ""}).Playable(), ShouldBeFalse)
		So((&Track{MediaURL: "#"}).Playable(), ShouldBeFalse)
		So((&Track{MediaURL: "/assets/placeholder.mp3"}).Playable(), ShouldBeFalse)
	})
}

func TestSearchAndClosest(t *testing.T) {
	Convey("Given a catalog", t, func() {
		c := testCatalog()

		Convey("Search matches titles fuzzily", func() {
			found := c.Search("lagos")
			So(len(found), ShouldEqual, 1)
			So(found[0].ID, ShouldEqual, 1)
		})

		Convey("Search matches artist names", func() {
			found := c.Search("kofi")
			So(len(found), ShouldEqual, 1)
			So(found[0].ID, ShouldEqual, 2)
		})

		Convey("Closest resolves approximate titles", func() {
			track, err := c.Closest("desert roze")
			So(err, ShouldBeNil)
			So(track.ID, ShouldEqual, 2)
		})
	})
}

func TestFavoritesPlaylist(t *testing.T) {
	Convey("FavoritesPlaylist", t, func() {
		p := FavoritesPlaylist([]int64{2, 1})

		Convey("Uses the sentinel id", func() {
			So(p.ID, ShouldEqual, FavoritesPlaylistID)
		})

		Convey("Preserves the given order", func() {
			So(p.TrackIDs, ShouldResemble, []int64{2, 1})
			So(p.IndexOf(1), ShouldEqual, 1)
			So(p.Contains(3), ShouldBeFalse)
		})
	})
}
