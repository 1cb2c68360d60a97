package player

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func ticks(n int) time.Duration {
	return time.Duration(n) * simTick
}

func TestClock(t *testing.T) {
	Convey("Given a fresh simulated clock", t, func() {
		var clock Clock

		Convey("It starts at fraction zero", func() {
			So(clock.Fraction(0), ShouldEqual, 0)
			So(clock.Position(0), ShouldEqual, 0)
			So(clock.Done(0), ShouldBeFalse)
		})

		Convey("Halfway through the tick budget it reports half the nominal duration", func() {
			So(clock.Fraction(ticks(simTicks/2)), ShouldAlmostEqual, 0.5, 1e-9)
			So(clock.Position(ticks(simTicks/2)), ShouldAlmostEqual, SimDuration/2, 1e-9)
			So(clock.Done(ticks(simTicks/2)), ShouldBeFalse)
		})

		Convey("After the full tick budget the track has completed", func() {
			So(clock.Fraction(ticks(simTicks)), ShouldEqual, 1)
			So(clock.Position(ticks(simTicks)), ShouldEqual, SimDuration)
			So(clock.Done(ticks(simTicks)), ShouldBeTrue)
		})

		Convey("Progress never exceeds the nominal duration", func() {
			So(clock.Fraction(ticks(simTicks*3)), ShouldEqual, 1)
			So(clock.Position(ticks(simTicks*3)), ShouldEqual, SimDuration)
		})
	})

	Convey("Given a clock reset to a fraction", t, func() {
		var clock Clock
		clock.SetFraction(0.5)

		Convey("Elapsed time counts from the new base", func() {
			So(clock.Fraction(0), ShouldEqual, 0.5)
			So(clock.Fraction(ticks(simTicks/4)), ShouldAlmostEqual, 0.75, 1e-9)
			So(clock.Done(ticks(simTicks/2)), ShouldBeTrue)
		})

		Convey("The base itself is clamped", func() {
			clock.SetFraction(3)
			So(clock.Fraction(0), ShouldEqual, 1)

			clock.SetFraction(-1)
			So(clock.Fraction(0), ShouldEqual, 0)
		})
	})
}
