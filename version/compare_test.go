package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		Convey("Orders semantic versions", func() {
			cmp, err := Compare("1.2.3", "1.2.2")
			So(err, ShouldBeNil)
			So(cmp, ShouldEqual, 1)

			cmp, err = Compare("0.9.9", "1.0.0")
			So(err, ShouldBeNil)
			So(cmp, ShouldEqual, -1)

			cmp, err = Compare("v1.0.0", "1.0.0")
			So(err, ShouldBeNil)
			So(cmp, ShouldEqual, 0)
		})

		Convey("Rejects malformed versions", func() {
			_, err := Compare("abc", "1.0.0")
			So(err, ShouldNotBeNil)
		})
	})
}
