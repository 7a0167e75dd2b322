// Package input turns raw pin levels and ADC samples into game input:
// debounced buttons with edge detection, calibrated analog axes and a
// velocity-mode cursor.
package input

import "sync/atomic"

// DigitalSource reads the instantaneous level of a pin, true meaning high.
// Buttons are wired active-low, so a pressed button reads false. The source
// performs no debouncing.
type DigitalSource interface {
	Level(pin int) bool
}

// AnalogSource reads one ADC channel in the range 0..AnalogMax. The source
// performs no calibration.
type AnalogSource interface {
	Sample(ch int) uint16
}

const (
	// None is returned when no button is pressed.
	None = -1

	AnalogMax    uint16 = 4095
	AnalogCenter uint16 = 2048

	MaxPins     = 32
	MaxChannels = 4
)

// PinBank is a lock-free store of pin levels and analog samples. Exactly one
// writer (a pin interrupt handler, or a simulator's UI goroutine) updates it
// while the game loop reads it; every field is a single atomic word, so no
// read ever observes a torn value.
type PinBank struct {
	levels atomic.Uint32
	analog [MaxChannels]atomic.Uint32
}

// NewPinBank returns a bank with every pin high (released, pulled up) and
// every analog channel resting at mid-scale.
func NewPinBank() *PinBank {
	b := &PinBank{}
	b.levels.Store(^uint32(0))
	for i := range b.analog {
		b.analog[i].Store(uint32(AnalogCenter))
	}
	return b
}

// Level implements DigitalSource. Pins outside the bank read high.
func (b *PinBank) Level(pin int) bool {
	if uint(pin) >= MaxPins {
		return true
	}
	return b.levels.Load()&(1<<uint(pin)) != 0
}

// SetLevel drives a pin high or low.
func (b *PinBank) SetLevel(pin int, high bool) {
	if uint(pin) >= MaxPins {
		return
	}
	mask := uint32(1) << uint(pin)
	for {
		old := b.levels.Load()
		next := old &^ mask
		if high {
			next = old | mask
		}
		if old == next || b.levels.CompareAndSwap(old, next) {
			return
		}
	}
}

// Press pulls an active-low button pin low.
func (b *PinBank) Press(pin int) { b.SetLevel(pin, false) }

// Release lets an active-low button pin float back high.
func (b *PinBank) Release(pin int) { b.SetLevel(pin, true) }

// Sample implements AnalogSource. Unknown channels read mid-scale.
func (b *PinBank) Sample(ch int) uint16 {
	if uint(ch) >= MaxChannels {
		return AnalogCenter
	}
	return uint16(b.analog[ch].Load())
}

// SetSample stores a raw reading, clamped to the ADC range.
func (b *PinBank) SetSample(ch int, v uint16) {
	if uint(ch) >= MaxChannels {
		return
	}
	b.analog[ch].Store(uint32(min(v, AnalogMax)))
}
