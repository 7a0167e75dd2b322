package input

import (
	"time"

	"github.com/Garsondee/pico-arcade/internal/clock"
)

// MaxButtons is the largest button group one Buttons value can watch.
const MaxButtons = 8

// Timing holds the polling and debounce delays of a button group.
type Timing struct {
	Poll         time.Duration // interval between samples while waiting for a press
	Settle       time.Duration // debounce delay after a press is first seen
	ReleaseLimit time.Duration // longest wait for release before returning anyway

	StartPoll   time.Duration // poll interval of the idle start wait
	StartSettle time.Duration // debounce delay on press and release in the start wait
}

// DefaultTiming returns the delays the handheld firmware uses.
func DefaultTiming() Timing {
	return Timing{
		Poll:         10 * time.Millisecond,
		Settle:       50 * time.Millisecond,
		ReleaseLimit: 2 * time.Second,
		StartPoll:    2 * time.Millisecond,
		StartSettle:  20 * time.Millisecond,
	}
}

// Buttons samples a small group of active-low buttons. Index order is
// priority order: when several are held, the lowest index wins.
type Buttons struct {
	src    DigitalSource
	clk    clock.Clock
	pins   [MaxButtons]int
	n      int
	timing Timing

	lastPress time.Duration
}

// NewButtons watches pins in priority order. Pins beyond MaxButtons are ignored.
func NewButtons(src DigitalSource, clk clock.Clock, pins ...int) *Buttons {
	b := &Buttons{src: src, clk: clk, timing: DefaultTiming()}
	b.n = copy(b.pins[:], pins)
	return b
}

// SetTiming replaces the polling and debounce delays.
func (b *Buttons) SetTiming(t Timing) { b.timing = t }

// Timing returns the current delays.
func (b *Buttons) Timing() Timing { return b.timing }

// Len is the number of buttons in the group.
func (b *Buttons) Len() int { return b.n }

// Pressed reports whether button i is currently held.
func (b *Buttons) Pressed(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	return !b.src.Level(b.pins[i])
}

// Sample returns the lowest-indexed pressed button, or None.
func (b *Buttons) Sample() int {
	for i := 0; i < b.n; i++ {
		if !b.src.Level(b.pins[i]) {
			return i
		}
	}
	return None
}

// WaitForPress polls until a button goes down or timeout elapses. Buttons
// already held on entry are ignored until they have been seen released, so
// only a press made inside the wait counts. A press is debounced with the
// settle delay and then held until release (bounded by ReleaseLimit) so one
// physical press yields one result. Returns None on timeout.
func (b *Buttons) WaitForPress(timeout time.Duration) int {
	var held uint8
	for i := 0; i < b.n; i++ {
		if b.Pressed(i) {
			held |= 1 << i
		}
	}
	start := b.clk.Now()
	for b.clk.Now()-start < timeout {
		if btn := b.fresh(&held); btn != None {
			b.lastPress = b.clk.Now()
			b.clk.Sleep(b.timing.Settle)
			b.waitRelease(btn, b.timing.Poll, b.timing.ReleaseLimit)
			return btn
		}
		b.clk.Sleep(b.timing.Poll)
	}
	return None
}

// fresh returns the lowest-indexed pressed button not masked by held, and
// clears the mask of every button found released.
func (b *Buttons) fresh(held *uint8) int {
	btn := None
	for i := 0; i < b.n; i++ {
		if !b.Pressed(i) {
			*held &^= 1 << i
			continue
		}
		if *held&(1<<i) == 0 && btn == None {
			btn = i
		}
	}
	return btn
}

// LastPress is the instant the most recent WaitForPress first saw its button
// go down, before debounce and release. Timing judgements use it.
func (b *Buttons) LastPress() time.Duration { return b.lastPress }

// WaitForStart blocks until any button is pressed and released. It is the
// only unbounded wait in the system: play begins when a person starts it.
func (b *Buttons) WaitForStart() int {
	btn := b.Sample()
	for btn == None {
		b.clk.Sleep(b.timing.StartPoll)
		btn = b.Sample()
	}
	b.clk.Sleep(b.timing.StartSettle)
	for b.Sample() != None {
		b.clk.Sleep(b.timing.StartPoll)
	}
	b.clk.Sleep(b.timing.StartSettle)
	return btn
}

func (b *Buttons) waitRelease(btn int, poll, limit time.Duration) {
	start := b.clk.Now()
	for b.Pressed(btn) && b.clk.Now()-start < limit {
		b.clk.Sleep(poll)
	}
}

// Edge tracks one button's debounced level across ticks and reports the
// instant it goes down. A new level must hold for the debounce period before
// it is accepted.
type Edge struct {
	src      DigitalSource
	clk      clock.Clock
	pin      int
	debounce time.Duration

	stable    bool // accepted pressed state
	candidate bool // last raw pressed state
	since     time.Duration
}

// NewEdge watches an active-low pin.
func NewEdge(src DigitalSource, clk clock.Clock, pin int, debounce time.Duration) *Edge {
	return &Edge{src: src, clk: clk, pin: pin, debounce: debounce}
}

// Update samples the pin and reports whether a debounced press began.
func (e *Edge) Update() bool {
	now := e.clk.Now()
	pressed := !e.src.Level(e.pin)
	if pressed != e.candidate {
		e.candidate = pressed
		e.since = now
	}
	if e.candidate != e.stable && now-e.since >= e.debounce {
		e.stable = e.candidate
		return e.stable
	}
	return false
}

// Held reports the debounced level.
func (e *Edge) Held() bool { return e.stable }

// Sync adopts the current raw level without reporting an edge, so a button
// still held from the start screen does not fire on the first tick.
func (e *Edge) Sync() {
	e.candidate = !e.src.Level(e.pin)
	e.stable = e.candidate
	e.since = e.clk.Now()
}
