package arcade

import "time"

// --- Timing ---

// Tier is the grade of one timed decision.
type Tier uint8

const (
	TierMiss Tier = iota
	TierGood
	TierGreat
	TierPerfect
)

func (t Tier) String() string {
	switch t {
	case TierMiss:
		return "miss"
	case TierGood:
		return "good"
	case TierGreat:
		return "great"
	case TierPerfect:
		return "perfect"
	default:
		return "unknown"
	}
}

// Banner is the verdict text shown after a decision.
func (t Tier) Banner() string {
	switch t {
	case TierPerfect:
		return "PERFECT!"
	case TierGreat:
		return "GREAT!"
	case TierGood:
		return "GOOD"
	default:
		return "MISS!"
	}
}

// Windows are the timing tolerances of the rhythm game.
type Windows struct {
	Perfect time.Duration // |error| below this is Perfect
	Great   time.Duration // |error| below this is Great
	Hit     time.Duration // how long before and after HitAt a press is solicited
}

// DefaultWindows returns 100ms / 200ms / 400ms.
func DefaultWindows() Windows {
	return Windows{
		Perfect: 100 * time.Millisecond,
		Great:   200 * time.Millisecond,
		Hit:     400 * time.Millisecond,
	}
}

// Grade classifies a matching press that landed off by delta from its
// scheduled instant. Any matching press is at least Good; a press outside
// the hit window cannot reach here because nothing solicits it.
func (w Windows) Grade(delta time.Duration) Tier {
	if delta < 0 {
		delta = -delta
	}
	switch {
	case delta < w.Perfect:
		return TierPerfect
	case delta < w.Great:
		return TierGreat
	default:
		return TierGood
	}
}

// Due reports whether an arrow scheduled at hitAt should be solicited now.
func (w Windows) Due(hitAt, now time.Duration) bool {
	return hitAt-now < w.Hit
}

// Expired reports whether an arrow has passed the far edge of its window.
func (w Windows) Expired(hitAt, now time.Duration) bool {
	return now >= hitAt+w.Hit
}

// --- Round state ---

// RoundState is the scoreboard of one game. Judgement code mutates it; the
// renderers only read it.
type RoundState struct {
	Phase Phase
	Round int

	Score    int
	Combo    int
	MaxCombo int
	Tracked  int

	Hits    int
	Misses  int
	Expired int
	Tiers   [TierPerfect + 1]int

	Elapsed   time.Duration
	Remaining time.Duration
}

// Judge applies one graded decision and returns the points awarded. Perfect
// and Great extend the combo and multiply by it; Good pays a flat 20 and
// breaks the combo; a miss breaks the combo.
func (s *RoundState) Judge(t Tier) int {
	s.Tiers[t]++
	points := 0
	switch t {
	case TierPerfect:
		points = 100 * (s.Combo + 1)
		s.Combo++
	case TierGreat:
		points = 50 * (s.Combo + 1)
		s.Combo++
	case TierGood:
		points = 20
		s.Combo = 0
	default:
		s.Combo = 0
		s.Misses++
		return 0
	}
	s.Hits++
	s.Score += points
	s.MaxCombo = max(s.MaxCombo, s.Combo)
	return points
}

// Expire records an entity that left its window without a decision. It is
// not scored and leaves the combo alone.
func (s *RoundState) Expire(e *Entity) {
	e.Resolved = true
	s.Expired++
}

// Count adds a resolved hit to the tracked counter when it matches the
// tracked type. Each entity is counted at most once.
func (s *RoundState) Count(e *Entity, matches bool) bool {
	if !matches || e.Counted {
		return false
	}
	e.Counted = true
	s.Tracked++
	return true
}

// --- Spatial ---

// Hit reports whether point (x, y) lies on target e, whose centre row is
// cy. Squares use an inclusive box of half-width int(Size); circles use
// dx²+dy² ≤ r² with r = int(Size).
func Hit(e *Entity, x, y, cy int) bool {
	r := int(e.Size)
	dx, dy := x-e.X, y-cy
	switch e.Kind {
	case KindSquare:
		return abs(dx) <= r && abs(dy) <= r
	case KindCircle:
		return dx*dx+dy*dy <= r*r
	default:
		return false
	}
}

// Collided reports whether a growing target reached the collision size.
// The threshold is inclusive.
func Collided(e *Entity, threshold float64) bool {
	return e.Size >= threshold
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
