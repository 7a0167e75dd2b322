package arcade

import (
	"time"

	"github.com/Garsondee/pico-arcade/internal/clock"
	"github.com/Garsondee/pico-arcade/internal/display"
	"github.com/Garsondee/pico-arcade/internal/input"
)

// MaxGaugeRounds bounds the zone table.
const MaxGaugeRounds = 8

// GaugeConfig tunes the dial game.
type GaugeConfig struct {
	Rounds    int
	ZoneWidth int           // degrees
	Entry     time.Duration // time allowed to reach the zone
	Hold      time.Duration // time the needle must stay in it
	Tick      time.Duration

	Screens Screens
}

// DefaultGaugeConfig returns the handheld's tuning.
func DefaultGaugeConfig() GaugeConfig {
	sc := DefaultScreens()
	sc.CountdownStep = time.Second
	return GaugeConfig{
		Rounds:    5,
		ZoneWidth: 20,
		Entry:     3 * time.Second,
		Hold:      3 * time.Second,
		Tick:      50 * time.Millisecond,
		Screens:   sc,
	}
}

// Degrees maps a raw dial reading to the needle angle. Angles run
// counter-clockwise from the right end of the gauge, so turning the dial up
// sweeps the needle from the left end (180°) to the right end (0°).
func Degrees(raw uint16) float64 {
	raw = min(raw, input.AnalogMax)
	return 180 - float64(raw)/float64(input.AnalogMax)*180
}

// Zone is a target arc on the gauge, inclusive at both ends.
type Zone struct {
	From, To float64
}

// Contains reports whether angle lies in the zone.
func (z Zone) Contains(angle float64) bool {
	return angle >= z.From && angle <= z.To
}

// Gauge geometry: a semicircle centred on the middle row.
const (
	gaugeCX     = (display.Width - 1) / 2
	gaugeCY     = display.Height / 2
	gaugeRadius = 28
)

// Gauge is the dial game: each round shows a zone on a semicircular gauge;
// turn the dial to bring the needle into it within the entry time, then
// hold it there for the hold time.
type Gauge struct {
	State RoundState

	board *Board
	cfg   GaugeConfig
	zones [MaxGaugeRounds]Zone
	n     int
	pacer *clock.Pacer
}

// NewGauge prepares a dial game.
func NewGauge(b *Board, cfg GaugeConfig) *Gauge {
	cfg.Rounds = max(1, min(MaxGaugeRounds, cfg.Rounds))
	cfg.ZoneWidth = max(1, min(90, cfg.ZoneWidth))
	return &Gauge{
		board: b,
		cfg:   cfg,
		pacer: clock.NewPacer(b.Clock, cfg.Tick),
	}
}

// PickZones draws one zone per round. Zone start angles are whole degrees
// and never repeat within a session.
func (g *Gauge) PickZones() []Zone {
	span := 181 - g.cfg.ZoneWidth
	g.n = 0
	for g.n < g.cfg.Rounds {
		from := g.board.Rand.Intn(span)
		dup := false
		for _, z := range g.zones[:g.n] {
			if int(z.From) == from {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		g.zones[g.n] = Zone{From: float64(from), To: float64(from + g.cfg.ZoneWidth)}
		g.n++
	}
	return g.zones[:g.n]
}

// Zone returns the zone of the current round once zones are picked.
func (g *Gauge) Zone() (Zone, bool) {
	if g.State.Round >= g.n {
		return Zone{}, false
	}
	return g.zones[g.State.Round], true
}

// Needle samples the dial and returns the needle angle.
func (g *Gauge) Needle() float64 {
	return Degrees(g.board.Pot.Read())
}

// Play runs one zone: the entry stage then the hold stage. It reports
// whether the needle was brought in and held.
func (g *Gauge) Play(z Zone) bool {
	b := g.board
	g.pacer.Reset()
	start := b.Clock.Now()
	for {
		elapsed := b.Clock.Now() - start
		if elapsed >= g.cfg.Entry {
			b.Log.Add(b.Clock.Now(), g.State.Round, "gauge", "entry_timeout", "", z.From)
			return false
		}
		if g.sample(z, g.cfg.Entry-elapsed) {
			break
		}
		g.pacer.Wait()
	}

	g.pacer.Reset()
	start = b.Clock.Now()
	for {
		elapsed := b.Clock.Now() - start
		if elapsed >= g.cfg.Hold {
			return true
		}
		if !g.sample(z, g.cfg.Hold-elapsed) {
			b.Log.Add(b.Clock.Now(), g.State.Round, "gauge", "left_zone", "", z.From)
			return false
		}
		g.pacer.Wait()
	}
}

// sample reads the dial, drives the LEDs, draws the frame and reports
// whether the needle is in the zone.
func (g *Gauge) sample(z Zone, left time.Duration) bool {
	angle := g.Needle()
	in := z.Contains(angle)
	g.board.SetLEDs(!in, in)
	g.State.Remaining = left
	g.draw(angle, z, left)
	return in
}

func (g *Gauge) draw(angle float64, z Zone, left time.Duration) {
	fb := &g.board.Display.Framebuffer
	fb.Clear()
	fb.Arc(gaugeCX, gaugeCY, gaugeRadius, 0, 180, 3)
	for a := 0.0; a <= 180; a += 30 {
		x, y := display.PolarPoint(gaugeCX, gaugeCY, gaugeRadius-2, a)
		fb.SetPixel(x, y, true)
		x, y = display.PolarPoint(gaugeCX, gaugeCY, gaugeRadius, a)
		fb.SetPixel(x, y, true)
	}
	fb.Arc(gaugeCX, gaugeCY, gaugeRadius-10, z.From, z.To, 1)
	nx, ny := display.PolarPoint(gaugeCX, gaugeCY, gaugeRadius-2, angle)
	fb.Line(gaugeCX, gaugeCY, nx, ny)

	secs := int((left + time.Second - 1) / time.Second)
	fb.Number((display.Width-display.NumberWidth(secs))/2, display.Height-8, secs)
	fb.SmallText(0, 0, "ROUND")
	fb.Number(22, 0, g.State.Round+1)
	g.board.Present()
}

// Run plays a session: start screen, countdown, then every zone in turn.
// The first failed zone ends the session as a loss.
func (g *Gauge) Run() (Result, error) {
	b := g.board
	g.State = RoundState{}
	b.SetLEDs(false, false)
	b.WaitToStart("PRESS TO START", b.Fire)

	if err := g.State.Enter(PhaseCountdown); err != nil {
		return newResult(GameGauge, &g.State, OutcomeIncomplete, 0, b, err.Error()), err
	}
	b.Countdown(g.cfg.Screens)
	if err := g.State.Enter(PhaseActive); err != nil {
		return newResult(GameGauge, &g.State, OutcomeIncomplete, 0, b, err.Error()), err
	}
	b.SetLEDs(true, false)

	start := b.Clock.Now()
	won := true
	for i, z := range g.PickZones() {
		g.State.Round = i
		b.Log.Add(b.Clock.Now(), i, "gauge", "zone", "", z.From)
		if !g.Play(z) {
			won = false
			g.State.Misses++
			b.Beep(220, 300*time.Millisecond)
			break
		}
		b.Beep(1320, 80*time.Millisecond)
		g.State.Hits++
		g.State.Tracked++
	}
	g.State.Elapsed = b.Clock.Now() - start

	if err := g.State.Enter(PhaseResolved); err != nil {
		return newResult(GameGauge, &g.State, OutcomeIncomplete, g.State.Elapsed, b, err.Error()), err
	}
	outcome, verdict := OutcomeLost, "YOU DIED!"
	if won {
		outcome, verdict = OutcomeWon, "YOU WON!"
	}
	b.SetLEDs(!won, won)
	b.Log.Add(b.Clock.Now(), g.State.Round, "phase", "resolved", outcome.String(), float64(g.State.Hits))
	b.Dwell(verdict, g.cfg.Screens.Verdict)

	res := newResult(GameGauge, &g.State, outcome, g.State.Elapsed, b, verdict)
	return res, g.State.Enter(PhaseIdle)
}

// PlayGauge runs one dial session and reports whether every zone was held.
func PlayGauge(b *Board) bool {
	g := NewGauge(b, DefaultGaugeConfig())
	res, err := g.Run()
	if err != nil {
		b.Log.Add(b.Clock.Now(), g.State.Round, "phase", "error", err.Error(), 0)
		return false
	}
	return res.Outcome == OutcomeWon
}
