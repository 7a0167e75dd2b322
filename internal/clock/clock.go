// Package clock isolates every wait the games perform behind one small
// interface so the loop can run against wall time on hardware and against a
// manual clock in tests.
package clock

import "time"

// Clock is the time source for the game loop. Now is monotonic and measured
// from an arbitrary epoch; only differences are meaningful.
type Clock interface {
	Now() time.Duration
	Sleep(d time.Duration)
}

// Real is a Clock backed by the runtime's monotonic clock.
type Real struct {
	start time.Time
}

// NewReal returns a wall clock whose epoch is the moment of the call.
func NewReal() *Real {
	return &Real{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (r *Real) Now() time.Duration {
	return time.Since(r.start)
}

// Sleep blocks the calling goroutine for d.
func (r *Real) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	time.Sleep(d)
}

// Manual is a controllable clock for tests and headless runs. Sleep advances
// time instantly, so a whole round completes in microseconds of real time.
type Manual struct {
	now time.Duration

	// OnAdvance, when set, is called after every change of time with the new
	// reading. Scripted inputs hook in here to flip pins at exact instants.
	OnAdvance func(now time.Duration)
}

// NewManual returns a manual clock starting at start.
func NewManual(start time.Duration) *Manual {
	return &Manual{now: start}
}

// Now returns the current mocked time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Sleep advances the mocked time by d.
func (m *Manual) Sleep(d time.Duration) {
	m.Advance(d)
}

// Advance moves the mocked time forward by d. Negative durations are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d <= 0 {
		// A zero sleep still counts as a poll; let scripts observe it.
		if m.OnAdvance != nil {
			m.OnAdvance(m.now)
		}
		return
	}
	m.now += d
	if m.OnAdvance != nil {
		m.OnAdvance(m.now)
	}
}

// Set jumps the mocked time to t.
func (m *Manual) Set(t time.Duration) {
	m.now = t
	if m.OnAdvance != nil {
		m.OnAdvance(m.now)
	}
}
