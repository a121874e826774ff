package model

import (
	"math"
	"time"
)

// State is the availability state of a fish at one instant.
type State string

const (
	StateActive     State = "ACTIVE"
	StatePending    State = "PENDING"
	StateUnknown    State = "UNKNOWN"
	StateNoUpcoming State = "NO_UPCOMING"
	StateAllDay     State = "ALL_DAY"
)

// Active reports whether a fish in this state can be caught.
func (s State) Active() bool {
	return s == StateActive || s == StateAllDay
}

// Forever marks a countdown that never changes.
const Forever = time.Duration(math.MaxInt64)

// Countdown is the evaluated availability of one fish.
type Countdown struct {
	State     State
	Remaining time.Duration // Forever when unbounded
	Text      string
	Progress  float64 // 0..100
	Zone      string  // weather zone used, empty when time-only
}

// Active reports whether the fish can be caught right now.
func (c Countdown) Active() bool {
	return c.State.Active()
}

// Unbounded reports whether the countdown never reaches a transition.
func (c Countdown) Unbounded() bool {
	return c.Remaining == Forever
}

// MsLeft returns the remaining time in milliseconds, +Inf when unbounded.
func (c Countdown) MsLeft() float64 {
	if c.Unbounded() {
		return math.Inf(1)
	}
	return float64(c.Remaining.Milliseconds())
}
