package arcade

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/Garsondee/pico-arcade/internal/clock"
	"github.com/Garsondee/pico-arcade/internal/display"
	"github.com/Garsondee/pico-arcade/internal/input"
)

// Rig is a headless board: a manual clock, an in-memory pin bank and an
// emulated panel behind a real renderer. Scripted pin changes and bots fire
// from the clock's advance hook, so a whole session runs deterministically
// in microseconds. Tests and the headless report both drive games through
// it.
type Rig struct {
	Clock  *clock.Manual
	Pins   *input.PinBank
	Panel  *display.Panel
	Board  *Board
	Layout Layout

	seed  int64
	echo  *log.Logger
	retry time.Duration
	steps []rigStep
	next  int
	bots  []Bot
}

// Bot plays a game by driving the rig's pins as time passes.
type Bot interface {
	Step(now time.Duration)
}

type rigStep struct {
	at    time.Duration
	apply func(*Rig)
}

// rigOptionKind controls the pass in which an option is applied.
type rigOptionKind int

const (
	rigOptInfra  rigOptionKind = iota // seed, layout, logging; applied before the board exists
	rigOptScript                      // pin scripts; applied once the layout is final
)

// RigOption is a builder function applied to a Rig during construction.
type RigOption struct {
	kind rigOptionKind
	fn   func(*Rig)
}

// WithSeed sets the board's random seed.
func WithSeed(seed int64) RigOption {
	return RigOption{rigOptInfra, func(r *Rig) { r.seed = seed }}
}

// WithEcho prints every logged event through l.
func WithEcho(l *log.Logger) RigOption {
	return RigOption{rigOptInfra, func(r *Rig) { r.echo = l }}
}

// WithLayout overrides the default pin layout.
func WithLayout(l Layout) RigOption {
	return RigOption{rigOptInfra, func(r *Rig) { r.Layout = l }}
}

// WithRetryWindow overrides the renderer's per-write retry budget.
func WithRetryWindow(d time.Duration) RigOption {
	return RigOption{rigOptInfra, func(r *Rig) { r.retry = d }}
}

// WithPress holds pin low from at for hold.
func WithPress(pin int, at, hold time.Duration) RigOption {
	return RigOption{rigOptScript, func(r *Rig) {
		r.schedule(at, func(r *Rig) { r.Pins.Press(pin) })
		r.schedule(at+hold, func(r *Rig) { r.Pins.Release(pin) })
	}}
}

// WithArrow holds the arrow button for d from at for hold.
func WithArrow(d Direction, at, hold time.Duration) RigOption {
	return RigOption{rigOptScript, func(r *Rig) {
		WithPress(r.Layout.Arrows[d], at, hold).fn(r)
	}}
}

// WithFire holds the fire button from at for hold.
func WithFire(at, hold time.Duration) RigOption {
	return RigOption{rigOptScript, func(r *Rig) {
		WithPress(r.Layout.Fire, at, hold).fn(r)
	}}
}

// WithAnalog sets channel ch to v at time at.
func WithAnalog(ch int, at time.Duration, v uint16) RigOption {
	return RigOption{rigOptScript, func(r *Rig) {
		r.schedule(at, func(r *Rig) { r.Pins.SetSample(ch, v) })
	}}
}

// WithStall makes the panel refuse every transfer between from and until.
func WithStall(from, until time.Duration) RigOption {
	return RigOption{rigOptScript, func(r *Rig) {
		r.schedule(from, func(r *Rig) { r.Panel.Stall(true) })
		r.schedule(until, func(r *Rig) { r.Panel.Stall(false) })
	}}
}

// NewRig builds a rig from options in two passes: infrastructure, then pin
// scripts. The panel is initialised before any script can run.
func NewRig(opts ...RigOption) (*Rig, error) {
	r := &Rig{
		Clock:  clock.NewManual(0),
		Pins:   input.NewPinBank(),
		Panel:  display.NewPanel(),
		Layout: DefaultLayout(),
		seed:   1,
		retry:  display.DefaultRetryWindow,
	}
	for _, o := range opts {
		if o.kind == rigOptInfra {
			o.fn(r)
		}
	}

	rend := display.NewRenderer(display.NewI2CTransport(r.Panel, display.Address), r.Clock)
	rend.SetRetryWindow(r.retry)
	if err := rend.Init(); err != nil {
		return nil, fmt.Errorf("rig: display init: %w", err)
	}
	r.Board = NewBoard(rend, r.Pins, r.Pins, r.Clock, r.Layout)
	r.Board.Log = NewEventLog(DefaultLogCapacity, r.echo)
	r.Board.Seed(r.seed)

	for _, o := range opts {
		if o.kind == rigOptScript {
			o.fn(r)
		}
	}
	sort.SliceStable(r.steps, func(i, j int) bool { return r.steps[i].at < r.steps[j].at })
	r.Clock.OnAdvance = r.advance
	return r, nil
}

// AddBot attaches a bot that is stepped on every clock advance.
func (r *Rig) AddBot(b Bot) {
	r.bots = append(r.bots, b)
}

// Log is the board's event log.
func (r *Rig) Log() *EventLog { return r.Board.Log }

func (r *Rig) schedule(at time.Duration, apply func(*Rig)) {
	r.steps = append(r.steps, rigStep{at: at, apply: apply})
}

func (r *Rig) advance(now time.Duration) {
	for r.next < len(r.steps) && r.steps[r.next].at <= now {
		r.steps[r.next].apply(r)
		r.next++
	}
	for _, b := range r.bots {
		b.Step(now)
	}
}

// PanelPixel reads a pixel as the emulated panel currently shows it.
func (r *Rig) PanelPixel(x, y int) bool {
	return r.Panel.Pixel(x, y)
}

// --- Indicators ---

// LEDLatch records the last state of the red/green pair.
type LEDLatch struct {
	Red, Green bool
	Changes    int
}

// Set implements Indicator.
func (l *LEDLatch) Set(red, green bool) {
	if red != l.Red || green != l.Green {
		l.Changes++
	}
	l.Red, l.Green = red, green
}

// ToneLog records every tone requested of a Buzzer.
type ToneLog struct {
	Tones []int
}

// Tone implements Buzzer without sounding anything.
func (t *ToneLog) Tone(hz int, _ time.Duration) {
	t.Tones = append(t.Tones, hz)
}
