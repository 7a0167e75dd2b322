package arcade

import (
	"math/rand"
	"time"

	"github.com/Garsondee/pico-arcade/internal/input"
)

// botStartEvery spaces a bot's start presses while a game sits idle.
const botStartEvery = time.Second

// presser holds one pin down for a fixed time.
type presser struct {
	pins      *input.PinBank
	held      int
	releaseAt time.Duration
}

func newPresser(pins *input.PinBank) presser {
	return presser{pins: pins, held: -1}
}

func (p *presser) busy() bool { return p.held >= 0 }

func (p *presser) press(pin int, now, hold time.Duration) {
	p.pins.Press(pin)
	p.held = pin
	p.releaseAt = now + hold
}

// update releases the pin once its hold time is over.
func (p *presser) update(now time.Duration) {
	if p.held >= 0 && now >= p.releaseAt {
		p.pins.Release(p.held)
		p.held = -1
	}
}

// --- Rhythm ---

// RhythmBot answers each arrow Lag after its instant, pressing the right
// button with probability Accuracy.
type RhythmBot struct {
	Lag      time.Duration
	Accuracy float64
	Hold     time.Duration

	game      *Rhythm
	layout    Layout
	rng       *rand.Rand
	btn       presser
	answered  time.Duration
	nextStart time.Duration
}

// NewRhythmBot attaches a bot to g on rig r.
func NewRhythmBot(r *Rig, g *Rhythm, lag time.Duration, accuracy float64, seed int64) *RhythmBot {
	return &RhythmBot{
		Lag:      lag,
		Accuracy: accuracy,
		Hold:     40 * time.Millisecond,
		game:     g,
		layout:   r.Layout,
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- bot behaviour
		btn:      newPresser(r.Pins),
		answered: -1,
	}
}

// Step implements Bot.
func (b *RhythmBot) Step(now time.Duration) {
	b.btn.update(now)
	if b.btn.busy() {
		return
	}
	switch b.game.State.Phase {
	case PhaseIdle:
		if now >= b.nextStart {
			b.btn.press(b.layout.Arrows[Up], now, b.Hold)
			b.nextStart = now + botStartEvery
		}
	case PhaseActive:
		a := b.game.Arena()
		for i := 0; i < Capacity; i++ {
			e := a.At(i)
			if e == nil || e.Resolved || e.HitAt <= b.answered || now < e.HitAt+b.Lag {
				continue
			}
			d := e.Dir
			if b.rng.Float64() >= b.Accuracy {
				d = Directions[(int(d)+1)%len(Directions)]
			}
			b.btn.press(b.layout.Arrows[d], now, b.Hold)
			b.answered = e.HitAt
			return
		}
	}
}

// --- Shooter ---

// ShooterBot steers the stick toward the largest target and fires once the
// crosshair is on it. Jitter adds a random aim error in pixels.
type ShooterBot struct {
	Jitter int

	game      *Shooter
	layout    Layout
	pins      *input.PinBank
	rng       *rand.Rand
	btn       presser
	cooldown  time.Duration
	nextStart time.Duration
}

// NewShooterBot attaches a bot to g on rig r.
func NewShooterBot(r *Rig, g *Shooter, jitter int, seed int64) *ShooterBot {
	return &ShooterBot{
		Jitter: jitter,
		game:   g,
		layout: r.Layout,
		pins:   r.Pins,
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- bot behaviour
		btn:    newPresser(r.Pins),
	}
}

// Step implements Bot.
func (b *ShooterBot) Step(now time.Duration) {
	b.btn.update(now)
	switch b.game.State.Phase {
	case PhaseIdle:
		if !b.btn.busy() && now >= b.nextStart {
			b.btn.press(b.layout.Fire, now, 40*time.Millisecond)
			b.nextStart = now + botStartEvery
		}
	case PhaseActive:
		b.aim(now)
		return
	}
	// Let go of the stick so the next calibration sees its rest point.
	b.steer(b.layout.StickX, 0)
	b.steer(b.layout.StickY, 0)
}

func (b *ShooterBot) aim(now time.Duration) {
	g := b.game
	a := g.Arena()
	best := -1
	for i := 0; i < Capacity; i++ {
		e := a.At(i)
		if e == nil || e.Resolved {
			continue
		}
		if best < 0 || e.Size > a.At(best).Size {
			best = i
		}
	}
	cur := g.Cursor()
	if best < 0 {
		b.steer(b.layout.StickX, 0)
		b.steer(b.layout.StickY, 0)
		return
	}
	e := a.At(best)
	dx := e.X - cur.X
	dy := targetRow - cur.Y
	if b.Jitter > 0 {
		dx += b.rng.Intn(2*b.Jitter+1) - b.Jitter
		dy += b.rng.Intn(2*b.Jitter+1) - b.Jitter
	}
	b.steer(b.layout.StickX, dx)
	b.steer(b.layout.StickY, dy)

	if !b.btn.busy() && now >= b.cooldown && Hit(e, cur.X, cur.Y, targetRow) {
		tick := g.cfg.Tick
		b.btn.press(b.layout.Fire, now, tick)
		b.cooldown = now + 2*tick
	}
}

// steer deflects a stick channel so the cursor moves about d pixels on the
// next tick.
func (b *ShooterBot) steer(ch, d int) {
	speed := b.game.cfg.Speed
	if speed <= 0 || d == 0 {
		b.pins.SetSample(ch, input.AnalogCenter)
		return
	}
	off := max(-1, min(1, float64(d)/speed))
	raw := float64(input.AnalogCenter) + off*input.DefaultScale
	// Nudge past the truncation in the cursor's integer step.
	if d > 0 {
		raw += 4
	} else {
		raw -= 4
	}
	b.pins.SetSample(ch, uint16(max(0, min(float64(input.AnalogMax), raw))))
}

// --- Gauge ---

// GaugeBot turns the dial to the middle of each zone, wobbling by up to
// Wobble degrees every step.
type GaugeBot struct {
	Wobble float64

	game      *Gauge
	layout    Layout
	pins      *input.PinBank
	rng       *rand.Rand
	btn       presser
	nextStart time.Duration
}

// NewGaugeBot attaches a bot to g on rig r.
func NewGaugeBot(r *Rig, g *Gauge, wobble float64, seed int64) *GaugeBot {
	return &GaugeBot{
		Wobble: wobble,
		game:   g,
		layout: r.Layout,
		pins:   r.Pins,
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- bot behaviour
		btn:    newPresser(r.Pins),
	}
}

// Step implements Bot.
func (b *GaugeBot) Step(now time.Duration) {
	b.btn.update(now)
	switch b.game.State.Phase {
	case PhaseIdle:
		if !b.btn.busy() && now >= b.nextStart {
			b.btn.press(b.layout.Fire, now, 40*time.Millisecond)
			b.nextStart = now + botStartEvery
		}
	case PhaseActive:
		z, ok := b.game.Zone()
		if !ok {
			return
		}
		angle := (z.From + z.To) / 2
		if b.Wobble > 0 {
			angle += (b.rng.Float64()*2 - 1) * b.Wobble
		}
		b.pins.SetSample(b.layout.Pot, RawForDegrees(angle))
	}
}

// RawForDegrees is the dial reading that puts the needle at angle.
func RawForDegrees(angle float64) uint16 {
	angle = max(0, min(180, angle))
	return uint16((180-angle)/180*float64(input.AnalogMax) + 0.5)
}
