//go:build tinygo

// Command pico is the handheld firmware: an SSD1306 on I2C0, four arrow
// buttons and a fire button on pull-ups, a joystick and a dial on the ADC,
// a red/green LED pair and a piezo.
package main

import (
	"machine"
	"time"

	"github.com/Garsondee/pico-arcade/internal/arcade"
	"github.com/Garsondee/pico-arcade/internal/clock"
	"github.com/Garsondee/pico-arcade/internal/display"
	"github.com/Garsondee/pico-arcade/internal/input"
)

const (
	pinSDA     machine.Pin = machine.GP16
	pinSCL     machine.Pin = machine.GP17
	pinRed     machine.Pin = machine.GP0
	pinGreen   machine.Pin = machine.GP1
	pinSpeaker machine.Pin = machine.GP22
)

var analogPins = [3]machine.Pin{machine.GP26, machine.GP27, machine.GP28}

// menu lists what the dial can select, left to right.
var menu = [...]arcade.Session{
	{Game: arcade.GameRhythm, Mode: 'A'},
	{Game: arcade.GameRhythm, Mode: 'B'},
	{Game: arcade.GameRhythm, Mode: 'C'},
	{Game: arcade.GameRhythm, Mode: 'D'},
	{Game: arcade.GameShooter, Mode: 'E'},
	{Game: arcade.GameShooter, Mode: 'F'},
	{Game: arcade.GameGauge},
}

var menuLabels = [len(menu)]string{
	"UP ARROWS", "DOWN ARROWS", "LEFT ARROWS", "RIGHT ARROWS",
	"SQUARES", "CIRCLES", "DIAL",
}

func main() {
	board, ok := setup()
	if !ok {
		failLoop()
	}
	for {
		s := choose(board)
		if _, err := s.Play(board); err != nil {
			println("arcade:", err.Error())
		}
		board.SetLEDs(false, false)
	}
}

func setup() (*arcade.Board, bool) {
	i2c := machine.I2C0
	err := i2c.Configure(machine.I2CConfig{SCL: pinSCL, SDA: pinSDA, Frequency: 400 * machine.KHz})
	if err != nil {
		println("i2c:", err.Error())
		return nil, false
	}

	clk := clock.NewReal()
	r := display.NewRenderer(display.NewI2CTransport(i2c, display.Address), clk)
	if err := r.Init(); err != nil {
		println("display:", err.Error())
		return nil, false
	}

	layout := arcade.DefaultLayout()
	pins := input.NewPinBank()
	buttons := append(layout.Arrows[:], layout.Fire)
	for _, n := range buttons {
		p := machine.Pin(n)
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		pins.SetLevel(n, p.Get())
		// The handler only stores the level; the game loop does the rest.
		err := p.SetInterrupt(machine.PinRising|machine.PinFalling, func(p machine.Pin) {
			pins.SetLevel(int(p), p.Get())
		})
		if err != nil {
			println("button", n, "interrupt:", err.Error())
			return nil, false
		}
	}

	machine.InitADC()
	var adc adcBank
	for i, p := range analogPins {
		adc[i] = machine.ADC{Pin: p}
		if err := adc[i].Configure(machine.ADCConfig{}); err != nil {
			println("adc", i, ":", err.Error())
			return nil, false
		}
	}

	pinRed.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinGreen.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinSpeaker.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinRed.Low()
	pinGreen.Low()
	pinSpeaker.Low()

	b := arcade.NewBoard(r, pins, &adc, clk, layout)
	b.LEDs = leds{}
	b.Buzzer = piezo{}
	b.Seed(int64(adc[layout.Pot].Get()) ^ time.Now().UnixNano())
	return b, true
}

// choose shows the entry the dial points at until fire is pressed. A fire
// button still held from the last session does not count.
func choose(b *arcade.Board) arcade.Session {
	fire := input.NewEdge(b.Pins, b.Clock, b.FirePin, 20*time.Millisecond)
	fire.Sync()
	for {
		i := b.Pot.Percent() * len(menu) / 101
		b.Display.Framed(menuLabels[i])
		b.Display.SmallText(2, 2, "TURN DIAL, FIRE TO PLAY")
		b.Present()
		for range 10 {
			if fire.Update() {
				return menu[i]
			}
			b.Clock.Sleep(10 * time.Millisecond)
		}
	}
}

// adcBank reads the three ADC inputs scaled to 12 bits.
type adcBank [3]machine.ADC

func (a *adcBank) Sample(ch int) uint16 {
	if uint(ch) >= uint(len(a)) {
		return input.AnalogCenter
	}
	return a[ch].Get() >> 4
}

type leds struct{}

func (leds) Set(red, green bool) {
	pinRed.Set(red)
	pinGreen.Set(green)
}

type piezo struct{}

// Tone bit-bangs a square wave on the speaker pin for d.
func (piezo) Tone(hz int, d time.Duration) {
	if hz <= 0 {
		return
	}
	half := time.Second / time.Duration(hz*2)
	start := time.Now()
	for time.Since(start) < d {
		pinSpeaker.High()
		time.Sleep(half)
		pinSpeaker.Low()
		time.Sleep(half)
	}
}

func failLoop() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.Low()
		time.Sleep(100 * time.Millisecond)
		led.High()
		time.Sleep(100 * time.Millisecond)
	}
}
