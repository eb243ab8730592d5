// Package core holds small helpers shared by the interactive viewer.
package core

import "time"

// Cadence spaces out repeated regenerations at a fixed rate, independent of
// the frame rate of the caller.
type Cadence struct {
	interval time.Duration
	next     time.Time
}

// NewCadence returns a Cadence firing perSecond times a second. Non-positive
// rates fall back to one per second.
func NewCadence(perSecond float64) *Cadence {
	c := &Cadence{}
	c.SetRate(perSecond)
	return c
}

// SetRate changes the firing rate. The next firing is rescheduled on the
// following call to Due.
func (c *Cadence) SetRate(perSecond float64) {
	if perSecond <= 0 {
		perSecond = 1
	}
	c.interval = time.Duration(float64(time.Second) / perSecond)
	c.Reset()
}

// Reset disarms the cadence; the next call to Due arms it again.
func (c *Cadence) Reset() { c.next = time.Time{} }

// Interval returns the time between firings.
func (c *Cadence) Interval() time.Duration { return c.interval }

// Due reports whether a firing is due at now. The first call only arms the
// cadence. Missed firings are dropped rather than replayed.
func (c *Cadence) Due(now time.Time) bool {
	if c.next.IsZero() {
		c.next = now.Add(c.interval)
		return false
	}
	if now.Before(c.next) {
		return false
	}
	c.next = c.next.Add(c.interval)
	if !c.next.After(now) {
		c.next = now.Add(c.interval)
	}
	return true
}
