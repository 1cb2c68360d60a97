package player

import "time"

const (
	// simTick is the cadence at which simulated progress is reported.
	simTick = 500 * time.Millisecond

	// simTicks is the number of ticks a simulated track takes to complete.
	simTicks = 100

	// SimDuration is the nominal length a simulated track reports, used
	// for position display only.
	SimDuration = 245.0
)

// simWallDuration is the real elapsed time a full simulated playback takes.
var simWallDuration = time.Duration(simTicks) * simTick

// Clock models degraded playback progress as a pure function of elapsed
// wall time, so it can be exercised without real timers. The zero value
// starts at fraction 0.
type Clock struct {
	base float64
}

// SetFraction rewinds or advances the clock to the given completion
// fraction, clamped to [0, 1]. Subsequent elapsed time counts from there.
func (c *Clock) SetFraction(f float64) {
	c.base = clampFraction(f)
}

// Fraction reports the completion fraction after the given elapsed time.
func (c *Clock) Fraction(elapsed time.Duration) float64 {
	return clampFraction(c.base + elapsed.Seconds()/simWallDuration.Seconds())
}

// Position reports the displayed position in seconds after the given
// elapsed time, scaled to the nominal duration.
func (c *Clock) Position(elapsed time.Duration) float64 {
	return c.Fraction(elapsed) * SimDuration
}

// Done reports whether the simulated track has completed.
func (c *Clock) Done(elapsed time.Duration) bool {
	return c.Fraction(elapsed) >= 1
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
