package player

import (
	"sync"
	"time"
)

// Simulated implements the Backend interface without a media engine. It is
// the degraded mode for tracks that have no playable source: progress comes
// from a synthetic Clock instead of decoded audio.
type Simulated struct {
	mu         sync.Mutex
	clock      Clock
	segment    time.Time // start of the current unpaused segment
	paused     bool
	loaded     bool
	ended      chan struct{}
	endedOnce  sync.Once
	tickerStop chan struct{}
}

// NewSimulated creates a simulated backend with nothing loaded.
func NewSimulated() *Simulated {
	return &Simulated{
		ended: make(chan struct{}),
	}
}

// elapsed is the unpaused time of the current segment. Callers hold mu.
func (s *Simulated) elapsed() time.Duration {
	if !s.loaded || s.paused {
		return 0
	}
	return time.Since(s.segment)
}

// Load resets the clock and starts the synthetic session. The url is
// ignored, that is the point of this backend.
func (s *Simulated) Load(_ string, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clock.SetFraction(0)
	s.segment = time.Now()
	s.paused = false
	s.loaded = true
	s.ended = make(chan struct{})
	s.endedOnce = sync.Once{}
	return nil
}

// TogglePause folds the running segment into the clock so position holds
// still while paused.
func (s *Simulated) TogglePause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		s.segment = time.Now()
		s.paused = false
		return nil
	}

	s.clock.SetFraction(s.clock.Fraction(s.elapsed()))
	s.paused = true
	return nil
}

func (s *Simulated) Paused() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused, nil
}

func (s *Simulated) Position() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Position(s.elapsed()), nil
}

func (s *Simulated) Duration() (float64, error) {
	return SimDuration, nil
}

// SeekTo resets the synthetic progress counter to the matching fraction.
func (s *Simulated) SeekTo(seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clock.SetFraction(seconds / SimDuration)
	s.segment = time.Now()
	return nil
}

// SetVolume is accepted and discarded, there is no audio to scale.
func (s *Simulated) SetVolume(float64) error { return nil }

// StartTicker reports synthetic progress on the simulation cadence and
// closes the done channel when the clock completes.
func (s *Simulated) StartTicker(callback func(position, duration float64)) {
	s.mu.Lock()
	if s.tickerStop != nil {
		s.mu.Unlock()
		return
	}
	s.tickerStop = make(chan struct{})
	stop := s.tickerStop
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(simTick)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.paused || !s.loaded {
					s.mu.Unlock()
					continue
				}
				elapsed := s.elapsed()
				pos := s.clock.Position(elapsed)
				done := s.clock.Done(elapsed)
				ended := s.ended
				s.mu.Unlock()

				callback(pos, SimDuration)

				if done {
					s.endedOnce.Do(func() { close(ended) })
					return
				}
			}
		}
	}()
}

func (s *Simulated) StopTicker() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tickerStop != nil {
		close(s.tickerStop)
		s.tickerStop = nil
	}
}

func (s *Simulated) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

func (s *Simulated) Close() error {
	s.StopTicker()
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
	return nil
}
