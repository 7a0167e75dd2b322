package arcade

import (
	"time"

	"github.com/Garsondee/pico-arcade/internal/clock"
	"github.com/Garsondee/pico-arcade/internal/display"
	"github.com/Garsondee/pico-arcade/internal/input"
)

// RhythmConfig tunes the arrow game.
type RhythmConfig struct {
	Rounds         int
	SequenceLength int

	BaseDelay time.Duration // arrow spacing in round 0
	DelayStep time.Duration // spacing removed per round
	MinDelay  time.Duration // spacing floor

	Windows Windows

	ScrollTick  time.Duration // redraw cadence while arrows travel
	Feedback    time.Duration // verdict banner dwell
	ResultDwell time.Duration // end-of-round tally dwell
	StartSettle time.Duration // pause between the start press and the countdown
	Speed       int           // arrow travel in pixels per second

	Screens Screens
}

// DefaultRhythmConfig returns the handheld's tuning.
func DefaultRhythmConfig() RhythmConfig {
	return RhythmConfig{
		Rounds:         3,
		SequenceLength: 5,
		BaseDelay:      2000 * time.Millisecond,
		DelayStep:      200 * time.Millisecond,
		MinDelay:       1000 * time.Millisecond,
		Windows:        DefaultWindows(),
		ScrollTick:     300 * time.Millisecond,
		Feedback:       500 * time.Millisecond,
		ResultDwell:    3 * time.Second,
		StartSettle:    500 * time.Millisecond,
		Speed:          40,
		Screens:        DefaultScreens(),
	}
}

// Delay is the arrow spacing for a round: BaseDelay shortened by DelayStep
// per round, never below MinDelay.
func (c RhythmConfig) Delay(round int) time.Duration {
	return max(c.MinDelay, c.BaseDelay-time.Duration(round)*c.DelayStep)
}

// ParseRhythmMode maps a mode letter to the tracked direction: A up, B down,
// C left, D right. Anything else tracks up.
func ParseRhythmMode(mode byte) Direction {
	switch mode {
	case 'A', 'a':
		return Up
	case 'B', 'b':
		return Down
	case 'C', 'c':
		return Left
	case 'D', 'd':
		return Right
	default:
		return Up
	}
}

// Lane geometry.
const (
	hitZoneX  = 2
	hitZoneW  = 12
	laneY     = 28
	laneRight = display.Width - 8
)

// Rhythm is the arrow-timing game. Arrows are scheduled against absolute
// instants and scroll toward the hit zone; each one that comes due gets
// exactly one press decision.
type Rhythm struct {
	State RoundState

	board  *Board
	cfg    RhythmConfig
	track  Direction
	arena  Arena
	pacer  *clock.Pacer
	banner string
}

// NewRhythm prepares a rhythm game tracking direction track.
func NewRhythm(b *Board, track Direction, cfg RhythmConfig) *Rhythm {
	g := &Rhythm{
		board:  b,
		cfg:    cfg,
		track:  track,
		pacer:  clock.NewPacer(b.Clock, cfg.ScrollTick),
		banner: "TRACK " + track.Label(),
	}
	g.arena.SetLimit(cfg.SequenceLength)
	return g
}

// Arena exposes the scheduled arrows.
func (g *Rhythm) Arena() *Arena { return &g.arena }

// Track is the direction whose hits are counted.
func (g *Rhythm) Track() Direction { return g.track }

// Schedule clears the lane and queues one sequence of random arrows, the
// i-th due at now + Delay(round)*(i+1). It returns the number queued, which
// is capped by the arena.
func (g *Rhythm) Schedule(round int) int {
	g.arena.Clear()
	g.State.Round = round
	g.State.Combo = 0
	now := g.board.Clock.Now()
	delay := g.cfg.Delay(round)
	queued := 0
	for i := 0; i < g.cfg.SequenceLength; i++ {
		e := Entity{
			Kind:  KindArrow,
			Dir:   Directions[g.board.Rand.Intn(len(Directions))],
			HitAt: now + delay*time.Duration(i+1),
		}
		if _, ok := g.arena.Spawn(e); !ok {
			break
		}
		queued++
	}
	g.board.Log.Add(now, round, "spawn", "schedule", "", float64(delay.Milliseconds()))
	return queued
}

// Position is the arrow's x on screen. It shrinks as the arrow's instant
// approaches and stops at the hit zone; a late arrow never passes it.
func (g *Rhythm) Position(e *Entity, now time.Duration) int {
	left := e.HitAt - now
	if left <= 0 {
		return hitZoneX
	}
	x := hitZoneX + int(left*time.Duration(g.cfg.Speed)/time.Second)
	return min(x, laneRight)
}

// Tick runs one scroll step: draw, wait for the next tick, give every due
// arrow its decision, then expire and sweep.
func (g *Rhythm) Tick() {
	g.draw(-1)
	g.pacer.Wait()

	for i := 0; i < Capacity; i++ {
		e := g.arena.At(i)
		if e == nil || e.Resolved {
			continue
		}
		now := g.board.Clock.Now()
		if g.cfg.Windows.Expired(e.HitAt, now) {
			continue
		}
		if g.cfg.Windows.Due(e.HitAt, now) {
			g.decide(i, e)
		}
	}
	g.expire()
	g.arena.Sweep()
}

func (g *Rhythm) expire() {
	now := g.board.Clock.Now()
	for i := 0; i < Capacity; i++ {
		e := g.arena.At(i)
		if e == nil || e.Resolved || !g.cfg.Windows.Expired(e.HitAt, now) {
			continue
		}
		g.State.Expire(e)
		g.board.Log.Add(now, g.State.Round, "judge", "expired", e.Dir.String(), 0)
	}
}

// decide solicits one press for the due arrow in slot i and grades it.
func (g *Rhythm) decide(i int, e *Entity) {
	b := g.board
	g.draw(i)

	tier := TierMiss
	btn := b.Arrows.WaitForPress(g.cfg.Windows.Hit)
	if btn != input.None && Direction(btn) == e.Dir {
		tier = g.cfg.Windows.Grade(b.Arrows.LastPress() - e.HitAt)
	}
	points := g.State.Judge(tier)
	e.Resolved = true
	if tier != TierMiss {
		g.State.Count(e, e.Dir == g.track)
	}
	b.Log.Add(b.Clock.Now(), g.State.Round, "judge", tier.String(), e.Dir.String(), float64(points))

	b.Beep(tierTone[tier], 60*time.Millisecond)
	b.Dwell(tier.Banner(), g.cfg.Feedback)
}

var tierTone = [...]int{
	TierMiss:    220,
	TierGood:    880,
	TierGreat:   1320,
	TierPerfect: 1760,
}

func (g *Rhythm) draw(prompt int) {
	fb := &g.board.Display.Framebuffer
	fb.Clear()
	now := g.board.Clock.Now()

	fb.SmallText(0, 1, "SCORE")
	fb.Number(22, 0, g.State.Score)
	if g.State.Combo > 1 {
		x := display.Width - display.NumberWidth(g.State.Combo)
		fb.SmallText(x-6, 1, "X")
		fb.Number(x, 0, g.State.Combo)
	}

	// Hit zone bracket.
	fb.HLine(0, laneY-3, hitZoneW)
	fb.HLine(0, laneY+10, hitZoneW)
	fb.Line(0, laneY-3, 0, laneY+10)
	fb.Line(hitZoneW-1, laneY-3, hitZoneW-1, laneY+10)

	for i := 0; i < Capacity; i++ {
		e := g.arena.At(i)
		if e == nil || e.Resolved {
			continue
		}
		fb.DrawGlyph(g.Position(e, now), laneY, ArrowGlyph(e.Dir))
	}
	if e := g.arena.At(prompt); e != nil {
		fb.SmallText(hitZoneW+4, laneY-11, "HIT")
		fb.DrawGlyph(hitZoneW+18, laneY-13, ArrowGlyph(e.Dir))
	}

	fb.SmallText(0, display.Height-6, g.banner)
	x := display.Width - display.NumberWidth(g.State.Tracked)
	fb.Number(x, display.Height-8, g.State.Tracked)
	g.board.Present()
}

// Run plays every round and returns the session result. Each round waits
// for a start press, counts down, scrolls its sequence to the end and shows
// the tracked tally.
func (g *Rhythm) Run() (Result, error) {
	b := g.board
	start := b.Clock.Now()
	g.State = RoundState{}
	for round := 0; round < g.cfg.Rounds; round++ {
		if err := g.playRound(round); err != nil {
			return newResult(GameRhythm, &g.State, OutcomeIncomplete, b.Clock.Now()-start, b, err.Error()), err
		}
	}
	return newResult(GameRhythm, &g.State, OutcomeCompleted, b.Clock.Now()-start, b, ""), nil
}

func (g *Rhythm) playRound(round int) error {
	b := g.board
	g.State.Round = round
	if round == 0 {
		b.WaitToStart(g.banner, b.Arrows)
	} else {
		b.FramedCount("ROUND", round+1)
		b.Arrows.WaitForStart()
	}
	b.Clock.Sleep(g.cfg.StartSettle)

	if err := g.State.Enter(PhaseCountdown); err != nil {
		return err
	}
	b.Countdown(g.cfg.Screens)

	if err := g.State.Enter(PhaseActive); err != nil {
		return err
	}
	b.Log.Add(b.Clock.Now(), round, "phase", "active", "", 0)
	g.Schedule(round)
	g.pacer.Reset()
	for g.arena.Len() > 0 {
		g.Tick()
	}

	if err := g.State.Enter(PhaseResolved); err != nil {
		return err
	}
	b.Log.Add(b.Clock.Now(), round, "phase", "resolved", "", float64(g.State.Tracked))
	b.FramedCount("TARGET", g.State.Tracked)
	b.Clock.Sleep(g.cfg.ResultDwell)
	return g.State.Enter(PhaseIdle)
}

// PlayRhythm runs a full rhythm session in the given mode and returns how
// many hits of the tracked direction were landed.
func PlayRhythm(b *Board, mode byte) int {
	g := NewRhythm(b, ParseRhythmMode(mode), DefaultRhythmConfig())
	if _, err := g.Run(); err != nil {
		b.Log.Add(b.Clock.Now(), g.State.Round, "phase", "error", err.Error(), 0)
	}
	return g.State.Tracked
}
