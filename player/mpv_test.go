package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Accepts http and https URLs", func() {
			url, err := sanitizeMediaTarget("https://cdn.afrorhythm.app/tracks/1.mp3")
			So(err, ShouldBeNil)
			So(url, ShouldEqual, "https://cdn.afrorhythm.app/tracks/1.mp3")
		})

		Convey("Rejects empty targets", func() {
			_, err := sanitizeMediaTarget("   ")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects flag lookalikes", func() {
			_, err := sanitizeMediaTarget("--ytdl-raw-options=evil")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects control characters", func() {
			_, err := sanitizeMediaTarget("https://x\n.example")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects non-http schemes", func() {
			_, err := sanitizeMediaTarget("ftp://example.com/a.mp3")
			So(err, ShouldNotBeNil)
		})

		Convey("Cleans local file paths", func() {
			path, err := sanitizeMediaTarget("music/../albums/a.mp3")
			So(err, ShouldBeNil)
			So(path, ShouldEqual, "albums/a.mp3")
		})
	})
}

func TestSanitizeTitle(t *testing.T) {
	Convey("sanitizeTitle", t, func() {
		Convey("Flattens newlines and strips null bytes", func() {
			So(sanitizeTitle("Ayra Vibes\n-\tLagos\x00 Nights\r"), ShouldEqual, "Ayra Vibes - Lagos Nights")
		})
	})
}
