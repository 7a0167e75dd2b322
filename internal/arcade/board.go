package arcade

import (
	"math/rand"
	"time"

	"github.com/Garsondee/pico-arcade/internal/clock"
	"github.com/Garsondee/pico-arcade/internal/display"
	"github.com/Garsondee/pico-arcade/internal/input"
)

// Indicator drives the red/green status LED pair.
type Indicator interface {
	Set(red, green bool)
}

// Buzzer plays a short tone. Implementations may block for up to d.
type Buzzer interface {
	Tone(hz int, d time.Duration)
}

// Layout maps game inputs to pins and ADC channels.
type Layout struct {
	Arrows [4]int // indexed by Direction
	Fire   int

	StickX, StickY int
	Pot            int
}

// DefaultLayout is the handheld's wiring: arrows on GP18..GP21, the
// start/fire button on GP15, joystick on ADC0/ADC1 and the dial on ADC2.
func DefaultLayout() Layout {
	var l Layout
	l.Arrows[Left] = 21
	l.Arrows[Up] = 18
	l.Arrows[Right] = 19
	l.Arrows[Down] = 20
	l.Fire = 15
	l.StickX, l.StickY = 0, 1
	l.Pot = 2
	return l
}

// Board bundles the peripherals a game needs. Everything is created once;
// games reuse it across rounds.
type Board struct {
	Display *display.Renderer
	Clock   clock.Clock

	Pins    input.DigitalSource
	Arrows  *input.Buttons // Left, Up, Right, Down
	Fire    *input.Buttons // start and shoot
	FirePin int

	StickX, StickY *input.Axis
	Pot            *input.Axis

	Rand *rand.Rand
	Log  *EventLog

	LEDs   Indicator // optional
	Buzzer Buzzer    // optional

	dropping bool
}

// NewBoard wires a renderer and input sources according to layout.
func NewBoard(r *display.Renderer, pins input.DigitalSource, analog input.AnalogSource, clk clock.Clock, layout Layout) *Board {
	return &Board{
		Display: r,
		Clock:   clk,
		Pins:    pins,
		Arrows:  input.NewButtons(pins, clk, layout.Arrows[:]...),
		Fire:    input.NewButtons(pins, clk, layout.Fire),
		FirePin: layout.Fire,
		StickX:  input.NewAxis(analog, layout.StickX),
		StickY:  input.NewAxis(analog, layout.StickY),
		Pot:     input.NewAxis(analog, layout.Pot),
		Rand:    rand.New(rand.NewSource(1)), // #nosec G404 -- gameplay randomness
		Log:     NewEventLog(DefaultLogCapacity, nil),
	}
}

// Seed reseeds the board's random source.
func (b *Board) Seed(seed int64) {
	b.Rand.Seed(seed)
}

// Present flushes the frame. A failed flush drops the frame; the first drop
// of a burst and the recovery after it are logged, nothing in between.
func (b *Board) Present() bool {
	ok := b.Display.Flush()
	switch {
	case !ok && !b.dropping:
		b.dropping = true
		b.Log.Add(b.Clock.Now(), -1, "display", "frame_dropped", "transport stalled", float64(b.Display.Dropped()))
	case ok && b.dropping:
		b.dropping = false
		b.Log.Add(b.Clock.Now(), -1, "display", "recovered", "", float64(b.Display.Dropped()))
	}
	return ok
}

// SetLEDs drives the indicator if one is fitted.
func (b *Board) SetLEDs(red, green bool) {
	if b.LEDs != nil {
		b.LEDs.Set(red, green)
	}
}

// Beep sounds the buzzer if one is fitted.
func (b *Board) Beep(hz int, d time.Duration) {
	if b.Buzzer != nil {
		b.Buzzer.Tone(hz, d)
	}
}

// FireEdge returns a press detector for the fire button, synced so a button
// still held from the start screen does not count.
func (b *Board) FireEdge(debounce time.Duration) *input.Edge {
	e := input.NewEdge(b.Pins, b.Clock, b.FirePin, debounce)
	e.Sync()
	return e
}
