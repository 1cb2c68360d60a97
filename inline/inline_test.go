package inline

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/afrorhythm/afro/catalog"
	"github.com/afrorhythm/afro/filesystem"
	"github.com/afrorhythm/afro/library"
	"github.com/afrorhythm/afro/auth"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func testLibrary() *library.Library {
	cat := catalog.New(
		[]*catalog.Track{
			{ID: 1, Title: "Lagos Nights", ArtistID: 1, Genre: "afrobeats", Duration: 245},
			{ID: 2, Title: "Desert Rose", ArtistID: 2, Genre: "amapiano", Duration: 200},
		},
		[]*catalog.Artist{
			{ID: 1, Name: "Ayra Vibes"},
			{ID: 2, Name: "Kofi Sound"},
		},
		nil,
	)

	return library.New(nil, cat, mo.None[*auth.Session]())
}

func TestWriteJson(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for an empty result set", func() {
			var buf bytes.Buffer
			opts := &Options{Query: "nothing", Json: true, Library: testLibrary()}
			err := writeJson(&buf, nil, opts)
			So(err, ShouldBeNil)

			var output Output
			err = json.Unmarshal(buf.Bytes(), &output)
			So(err, ShouldBeNil)
			So(output.Query, ShouldEqual, "nothing")
			So(output.Result, ShouldHaveLength, 0)
		})

		Convey("Should resolve artists and format durations", func() {
			lib := testLibrary()
			tracks := lib.Catalog().Search("lagos")
			So(tracks, ShouldHaveLength, 1)

			var buf bytes.Buffer
			opts := &Options{Query: "lagos", Json: true, Library: lib}
			So(writeJson(&buf, tracks, opts), ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Result, ShouldHaveLength, 1)
			So(output.Result[0].Artist.Name, ShouldEqual, "Ayra Vibes")
			So(output.Result[0].DurationDisplay, ShouldEqual, "4:05")
			So(output.Result[0].Favorite, ShouldBeFalse)
		})
	})
}

func TestParseTrackPicker(t *testing.T) {
	Convey("ParseTrackPicker", t, func() {
		lib := testLibrary()
		tracks := lib.Catalog().Tracks()
		So(len(tracks), ShouldEqual, 2)

		Convey("first and last pick the ends", func() {
			first, err := ParseTrackPicker("first", "")
			So(err, ShouldBeNil)
			So(first(tracks).ID, ShouldEqual, tracks[0].ID)

			last, err := ParseTrackPicker("last", "")
			So(err, ShouldBeNil)
			So(last(tracks).ID, ShouldEqual, tracks[1].ID)
		})

		Convey("exact matches by title", func() {
			exact, err := ParseTrackPicker("exact", "Desert Rose")
			So(err, ShouldBeNil)
			So(exact(tracks).Title, ShouldEqual, "Desert Rose")
			So(exact(tracks[:1]), ShouldBeNil)
		})

		Convey("index clamps out-of-range values", func() {
			picker, err := ParseTrackPicker("index", "9")
			So(err, ShouldBeNil)
			So(picker(tracks).ID, ShouldEqual, tracks[1].ID)

			_, err = ParseTrackPicker("index", "not a number")
			So(err, ShouldNotBeNil)
		})

		Convey("unknown kinds are rejected", func() {
			_, err := ParseTrackPicker("middle", "")
			So(err, ShouldNotBeNil)
		})
	})
}
