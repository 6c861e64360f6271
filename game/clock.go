package game

import "time"

// Clock gates ticks to at most one per Interval of wall-clock time.
type Clock struct {
	Interval time.Duration
	last     time.Time
}

func NewClock(interval time.Duration) *Clock {
	return &Clock{Interval: interval}
}

// Due reports whether Interval has passed since the last tick and, if so,
// starts a new interval at now. The first call only arms the clock.
func (c *Clock) Due(now time.Time) bool {
	if c.last.IsZero() {
		c.last = now
		return false
	}
	if now.Sub(c.last) >= c.Interval {
		c.last = now
		return true
	}
	return false
}

// Reset disarms the clock so the next Due call starts counting afresh.
func (c *Clock) Reset() {
	c.last = time.Time{}
}
