// Package sim runs the games on a desktop. A Host stands in for the
// handheld: the game goroutine sees a real clock, a pin bank and an emulated
// SSD1306, while a front end (a window or a terminal) writes the pin bank
// and reads the panel from its own goroutine.
package sim

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/Garsondee/pico-arcade/internal/arcade"
	"github.com/Garsondee/pico-arcade/internal/clock"
	"github.com/Garsondee/pico-arcade/internal/display"
	"github.com/Garsondee/pico-arcade/internal/input"
)

// Host is a simulated handheld.
type Host struct {
	Pins   *input.PinBank
	Panel  *display.Panel
	Board  *arcade.Board
	Lamps  *Lamps
	Layout arcade.Layout

	mu     sync.Mutex
	result arcade.Result
	err    error
	done   chan struct{}
}

// NewHost powers up the emulated panel and builds a board around it. Round
// events are echoed to echo when it is non-nil.
func NewHost(layout arcade.Layout, clk clock.Clock, seed int64, echo *log.Logger) (*Host, error) {
	h := &Host{
		Pins:   input.NewPinBank(),
		Panel:  display.NewPanel(),
		Lamps:  &Lamps{},
		Layout: layout,
		done:   make(chan struct{}),
	}
	rend := display.NewRenderer(display.NewI2CTransport(h.Panel, display.Address), clk)
	if err := rend.Init(); err != nil {
		return nil, fmt.Errorf("sim: display init: %w", err)
	}
	h.Board = arcade.NewBoard(rend, h.Pins, h.Pins, clk, layout)
	h.Board.Log = arcade.NewEventLog(arcade.DefaultLogCapacity, echo)
	h.Board.LEDs = h.Lamps
	h.Board.Seed(seed)
	return h, nil
}

// Start plays s on a new goroutine. Done is closed when it returns.
func (h *Host) Start(s arcade.Session) {
	go func() {
		res, err := s.Play(h.Board)
		h.mu.Lock()
		h.result, h.err = res, err
		h.mu.Unlock()
		close(h.done)
	}()
}

// Done is closed once the session has finished.
func (h *Host) Done() <-chan struct{} { return h.done }

// Finished reports whether the session has ended without blocking.
func (h *Host) Finished() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Result is the finished session's record. It is the zero Result until Done
// is closed.
func (h *Host) Result() (arcade.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.result, h.err
}

// Nudge moves an analog channel by delta counts, clamped to the ADC range.
func (h *Host) Nudge(ch, delta int) {
	v := int(h.Pins.Sample(ch)) + delta
	h.Pins.SetSample(ch, uint16(max(0, min(v, input.AnalogMax))))
}

// Deflect sets an analog channel from a stick position in [-1, 1].
func (h *Host) Deflect(ch int, pos float64) {
	pos = max(-1, min(pos, 1))
	h.Pins.SetSample(ch, uint16(float64(input.AnalogCenter)+pos*float64(input.AnalogCenter-1)+0.5))
}

// Lamps latches the red/green indicator for a front end to paint.
type Lamps struct {
	bits atomic.Uint32
}

// Set implements arcade.Indicator.
func (l *Lamps) Set(red, green bool) {
	var v uint32
	if red {
		v |= 1
	}
	if green {
		v |= 2
	}
	l.bits.Store(v)
}

// State reports the lamps as last set.
func (l *Lamps) State() (red, green bool) {
	v := l.bits.Load()
	return v&1 != 0, v&2 != 0
}
