package clock

import "time"

// Pacer is the tick abstraction of the game loop: each call to Wait sleeps
// until the next fixed deadline. When a tick overruns its budget the schedule
// is re-anchored instead of bursting to catch up, so the cadence recovers
// after one slow frame (a blocking input window, a slow flush).
type Pacer struct {
	clk      Clock
	interval time.Duration
	next     time.Duration
	ticks    int
	overruns int
}

// NewPacer returns a pacer whose first deadline is one interval from now.
func NewPacer(clk Clock, interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Pacer{
		clk:      clk,
		interval: interval,
		next:     clk.Now() + interval,
	}
}

// Wait sleeps until the next tick boundary and returns the tick count so far.
func (p *Pacer) Wait() int {
	now := p.clk.Now()
	if now < p.next {
		p.clk.Sleep(p.next - now)
		p.next += p.interval
	} else {
		p.overruns++
		p.next = now + p.interval
	}
	p.ticks++
	return p.ticks
}

// Reset re-anchors the schedule at the current time.
func (p *Pacer) Reset() {
	p.next = p.clk.Now() + p.interval
	p.ticks = 0
	p.overruns = 0
}

// Interval returns the tick period.
func (p *Pacer) Interval() time.Duration { return p.interval }

// Ticks returns how many ticks have elapsed since the last reset.
func (p *Pacer) Ticks() int { return p.ticks }

// Overruns returns how many ticks started late since the last reset.
func (p *Pacer) Overruns() int { return p.overruns }
