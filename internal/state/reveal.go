package state

import (
	"time"

	"github.com/tim-projects/aegis-tui/internal/otp"
)

// RevealSession is the live countdown for one revealed entry.
type RevealSession struct {
	Row  EntryRow
	Code string
	Err  error

	// Remaining is how long the current code stays valid.
	Remaining time.Duration

	gen      otp.Generator
	lastTick time.Time
}

// newRevealSession generates the first code and starts the countdown.
func newRevealSession(row EntryRow, gen otp.Generator, now time.Time) *RevealSession {
	s := &RevealSession{Row: row, gen: gen, lastTick: now}
	s.regenerate(now)
	return s
}

func (s *RevealSession) regenerate(now time.Time) {
	s.Code, s.Err = s.gen.Code(now)
	s.Remaining = otp.UntilNext(s.gen.Period(), now)
}

// Tick advances the countdown to now and regenerates the code on
// rollover. It reports whether the display changed.
func (s *RevealSession) Tick(now time.Time) bool {
	elapsed := now.Sub(s.lastTick)
	if elapsed <= 0 {
		return false
	}
	s.lastTick = now

	before := s.SecondsLeft()
	s.Remaining -= elapsed
	if s.Remaining <= 0 {
		s.regenerate(now)
		return true
	}
	return s.SecondsLeft() != before
}

// SecondsLeft is the whole seconds left to display, clamped at zero.
func (s *RevealSession) SecondsLeft() int {
	if s.Remaining <= 0 {
		return 0
	}
	return int(s.Remaining / time.Second)
}
