package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatDuration(t *testing.T) {
	Convey("FormatDuration", t, func() {
		So(FormatDuration(0), ShouldEqual, "0:00")
		So(FormatDuration(59), ShouldEqual, "0:59")
		So(FormatDuration(60), ShouldEqual, "1:00")
		So(FormatDuration(245), ShouldEqual, "4:05")
		So(FormatDuration(-3), ShouldEqual, "0:00")
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "track", "tracks"), ShouldEqual, "1 track")
		So(Quantify(2, "track", "tracks"), ShouldEqual, "2 tracks")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(0.5, 0.0, 1.0), ShouldEqual, 0.5)
		So(Clamp(-0.1, 0.0, 1.0), ShouldEqual, 0.0)
		So(Clamp(1.7, 0.0, 1.0), ShouldEqual, 1.0)
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 1)
		So(s.Pop(), ShouldEqual, 0)
	})
}
