package arcade

import (
	"time"

	"github.com/Garsondee/pico-arcade/internal/clock"
	"github.com/Garsondee/pico-arcade/internal/display"
	"github.com/Garsondee/pico-arcade/internal/input"
)

// ShooterConfig tunes the survival shooter.
type ShooterConfig struct {
	MaxEnemies int
	SpawnEvery time.Duration
	StartSize  float64
	Growth     float64 // size added per tick
	CollideAt  float64 // size at which a target reaches the player
	Survive    time.Duration

	Tick         time.Duration
	Speed        float64       // crosshair pixels per tick at full deflection
	FireDebounce time.Duration // zero accepts a press on the tick it is seen
	Rest         time.Duration // pause after the verdict screen

	Screens Screens
}

// DefaultShooterConfig returns the handheld's tuning. The tick matches the
// frame time of a full 100kHz panel refresh.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		MaxEnemies: Capacity,
		SpawnEvery: 1200 * time.Millisecond,
		StartSize:  1,
		Growth:     1.5,
		CollideAt:  30,
		Survive:    15 * time.Second,
		Tick:       100 * time.Millisecond,
		Speed:      12,
		Rest:       250 * time.Millisecond,
		Screens:    DefaultScreens(),
	}
}

// ParseShooterMode maps a mode letter to the tracked shape: E squares,
// F circles. Anything else tracks squares.
func ParseShooterMode(mode byte) Kind {
	switch mode {
	case 'F', 'f':
		return KindCircle
	default:
		return KindSquare
	}
}

// Playfield geometry. Targets sit on the centre row; the crosshair keeps a
// four pixel margin so its arms stay on screen.
const (
	targetRow = display.Height / 2
	crossArm  = 2
)

// CrosshairBounds is the clamp rectangle of the crosshair.
var CrosshairBounds = input.Bounds{MinX: 4, MinY: 4, MaxX: display.Width - 5, MaxY: display.Height - 5}

// Shooter is the survival game: targets appear on the centre row and grow
// toward the player; shoot them with the crosshair before any reaches the
// collision size, and last until the timer runs out.
type Shooter struct {
	State RoundState

	board  *Board
	cfg    ShooterConfig
	target Kind
	arena  Arena
	cursor *input.Cursor
	fire   *input.Edge
	pacer  *clock.Pacer

	start     time.Duration
	lastSpawn time.Duration
	ticks     int
}

// NewShooter prepares a shooter counting hits on shapes of kind target.
func NewShooter(b *Board, target Kind, cfg ShooterConfig) *Shooter {
	g := &Shooter{
		board:  b,
		cfg:    cfg,
		target: target,
		cursor: input.NewCursor(CrosshairBounds, cfg.Speed),
		pacer:  clock.NewPacer(b.Clock, cfg.Tick),
	}
	g.arena.SetLimit(cfg.MaxEnemies)
	return g
}

// Arena exposes the live targets.
func (g *Shooter) Arena() *Arena { return &g.arena }

// Cursor exposes the crosshair.
func (g *Shooter) Cursor() *input.Cursor { return g.cursor }

// Ticks is the number of active ticks played.
func (g *Shooter) Ticks() int { return g.ticks }

// Begin resets the field for a new run starting now.
func (g *Shooter) Begin() {
	b := g.board
	g.arena.Clear()
	b.StickX.Calibrate()
	b.StickY.Calibrate()
	g.cursor.Center()
	g.fire = b.FireEdge(g.cfg.FireDebounce)
	g.start = b.Clock.Now()
	g.lastSpawn = g.start
	g.ticks = 0
	g.State.Elapsed = 0
	g.State.Remaining = g.cfg.Survive
	g.pacer.Reset()
}

// Spawn places a target of random shape at a random x. At capacity it does
// nothing.
func (g *Shooter) Spawn() bool {
	if g.arena.Full() {
		return false
	}
	margin := int(g.cfg.StartSize)
	kind := KindSquare
	if g.board.Rand.Intn(2) == 1 {
		kind = KindCircle
	}
	e := Entity{
		Kind: kind,
		X:    margin + g.board.Rand.Intn(display.Width-2*margin),
		Size: g.cfg.StartSize,
	}
	i, ok := g.arena.Spawn(e)
	if ok {
		g.board.Log.Add(g.board.Clock.Now(), 0, "spawn", kind.String(), "", float64(i))
	}
	return ok
}

// Grow enlarges every live target by one tick's growth and reports whether
// any reached the collision size.
func (g *Shooter) Grow() bool {
	hit := false
	for i := 0; i < Capacity; i++ {
		e := g.arena.At(i)
		if e == nil || e.Resolved {
			continue
		}
		e.Size += g.cfg.Growth
		if Collided(e, g.cfg.CollideAt) {
			hit = true
		}
	}
	return hit
}

// Shoot fires at (x, y). Targets are tested nearest first, the largest
// being nearest, with ties going to the lower slot. The first target hit
// is resolved and its slot returned.
func (g *Shooter) Shoot(x, y int) (int, bool) {
	var order [Capacity]int
	n := 0
	for i := 0; i < Capacity; i++ {
		e := g.arena.At(i)
		if e == nil || e.Resolved {
			continue
		}
		j := n
		for j > 0 && g.arena.At(order[j-1]).Size < e.Size {
			order[j] = order[j-1]
			j--
		}
		order[j] = i
		n++
	}

	b := g.board
	for _, i := range order[:n] {
		e := g.arena.At(i)
		if !Hit(e, x, y, targetRow) {
			continue
		}
		e.Resolved = true
		g.State.Hits++
		g.State.Count(e, e.Kind == g.target)
		b.Log.Add(b.Clock.Now(), 0, "shot", "hit", e.Kind.String(), e.Size)
		b.Beep(1320, 30*time.Millisecond)
		return i, true
	}
	g.State.Misses++
	b.Log.Add(b.Clock.Now(), 0, "shot", "miss", "", 0)
	return -1, false
}

// Tick plays one active frame. It reports whether the run is over and, if
// so, whether the player survived.
func (g *Shooter) Tick() (done, won bool) {
	b := g.board
	now := b.Clock.Now()
	if now-g.lastSpawn >= g.cfg.SpawnEvery {
		g.Spawn()
		g.lastSpawn = now
	}

	g.State.Elapsed = now - g.start
	if g.State.Elapsed >= g.cfg.Survive {
		g.State.Remaining = 0
		return true, true
	}
	g.State.Remaining = g.cfg.Survive - g.State.Elapsed

	g.cursor.Follow(b.StickX, b.StickY)
	if g.fire.Update() {
		g.Shoot(g.cursor.X, g.cursor.Y)
	}
	g.arena.Sweep()

	g.ticks++
	if g.Grow() {
		b.Log.Add(now, 0, "judge", "collision", "", float64(g.ticks))
		b.Beep(220, 300*time.Millisecond)
		return true, false
	}

	g.draw()
	g.pacer.Wait()
	return false, false
}

func (g *Shooter) draw() {
	fb := &g.board.Display.Framebuffer
	fb.Clear()

	for i := 0; i < Capacity; i++ {
		e := g.arena.At(i)
		if e == nil {
			continue
		}
		r := int(e.Size)
		if e.Kind == KindSquare {
			fb.FillRect(e.X-r, targetRow-r, 2*r+1, 2*r+1)
		} else {
			fb.Disc(e.X, targetRow, r)
		}
	}

	// The crosshair inverts what it covers so it stays visible over targets.
	cx, cy := g.cursor.X, g.cursor.Y
	for d := -crossArm; d <= crossArm; d++ {
		fb.SetPixel(cx+d, cy, !fb.Pixel(cx+d, cy))
		if d != 0 {
			fb.SetPixel(cx, cy+d, !fb.Pixel(cx, cy+d))
		}
	}

	secs := int((g.State.Remaining + time.Second - 1) / time.Second)
	fb.Number((display.Width-display.NumberWidth(secs))/2, display.Height-8, secs)
	fb.SmallText(0, 0, g.target.Label())
	fb.Number(display.Width-display.NumberWidth(g.State.Tracked), 0, g.State.Tracked)
	g.board.Present()
}

// Run plays one session: start screen, countdown, the survival loop and
// the verdict.
func (g *Shooter) Run() (Result, error) {
	b := g.board
	g.State = RoundState{}
	b.WaitToStart("PRESS TO START", b.Fire)

	if err := g.State.Enter(PhaseCountdown); err != nil {
		return newResult(GameShooter, &g.State, OutcomeIncomplete, 0, b, err.Error()), err
	}
	b.Countdown(g.cfg.Screens)
	if err := g.State.Enter(PhaseActive); err != nil {
		return newResult(GameShooter, &g.State, OutcomeIncomplete, 0, b, err.Error()), err
	}

	g.Begin()
	b.Log.Add(b.Clock.Now(), 0, "phase", "active", g.target.String(), 0)
	var done, won bool
	for !done {
		done, won = g.Tick()
	}
	elapsed := b.Clock.Now() - g.start

	if err := g.State.Enter(PhaseResolved); err != nil {
		return newResult(GameShooter, &g.State, OutcomeIncomplete, elapsed, b, err.Error()), err
	}
	outcome, verdict := OutcomeLost, "YOU DIED!"
	if won {
		outcome, verdict = OutcomeWon, "YOU WON!"
	}
	b.SetLEDs(!won, won)
	b.Log.Add(b.Clock.Now(), 0, "phase", "resolved", outcome.String(), float64(g.State.Tracked))
	b.Dwell(verdict, g.cfg.Screens.Verdict)
	b.Clock.Sleep(g.cfg.Rest)

	res := newResult(GameShooter, &g.State, outcome, elapsed, b, verdict)
	return res, g.State.Enter(PhaseIdle)
}

// PlayShooter runs one shooter session in the given mode and returns how
// many targets of the tracked shape were shot.
func PlayShooter(b *Board, mode byte) int {
	g := NewShooter(b, ParseShooterMode(mode), DefaultShooterConfig())
	if _, err := g.Run(); err != nil {
		b.Log.Add(b.Clock.Now(), 0, "phase", "error", err.Error(), 0)
	}
	return g.State.Tracked
}
