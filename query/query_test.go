package query

import (
	"testing"

	"github.com/afrorhythm/afro/filesystem"
	"github.com/afrorhythm/afro/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		q1 := "amapiano"
		q2 := "afrobeats"

		Convey("When remembering queries", func() {
			err := Remember(q1, 1)
			So(err, ShouldBeNil)
			err = Remember(q2, 10) // higher weight
			So(err, ShouldBeNil)

			Convey("Then suggestions should be sorted by rank", func() {
				// Clear the memory cache to force a read from the file.
				suggestionCache = make(map[string][]*queryRecord)

				s := SuggestMany("afro")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 1)
				So(s[0], ShouldEqual, "afrobeats")
			})

			Convey("It sanitizes input", func() {
				So(sanitize("  AMAPIANO  "), ShouldEqual, "amapiano")
			})

			Convey("Suggest returns the top match only", func() {
				suggestionCache = make(map[string][]*queryRecord)
				top, ok := Suggest("afro").Get()
				So(ok, ShouldBeTrue)
				So(top, ShouldEqual, "afrobeats")
			})
		})

		Convey("When suggestions are disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)

			So(SuggestMany("afro"), ShouldBeEmpty)
		})
	})
}
