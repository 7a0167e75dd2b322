// Package arcade holds the shared minigame core: a fixed entity arena, the
// judgement rules that grade timing and spatial hits, the round phase
// machine, and the rhythm, shooter and gauge games built on them.
package arcade

import "time"

// --- Kinds ---

// Kind is what an entity is on screen.
type Kind uint8

const (
	KindArrow Kind = iota
	KindSquare
	KindCircle
)

func (k Kind) String() string {
	switch k {
	case KindArrow:
		return "arrow"
	case KindSquare:
		return "square"
	case KindCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Direction is an arrow's direction. The values double as indices into the
// arrow button group, so a pressed button compares directly with an arrow.
type Direction int8

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Directions lists every direction in button order.
var Directions = [4]Direction{Left, Up, Right, Down}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Label is the upper-case name drawn on screen.
func (d Direction) Label() string {
	switch d {
	case Left:
		return "LEFT"
	case Up:
		return "UP"
	case Right:
		return "RIGHT"
	case Down:
		return "DOWN"
	default:
		return "-"
	}
}

// Label is the upper-case name drawn on screen.
func (k Kind) Label() string {
	switch k {
	case KindArrow:
		return "ARROWS"
	case KindSquare:
		return "SQUARES"
	case KindCircle:
		return "CIRCLES"
	default:
		return "-"
	}
}

// --- Entities ---

// Entity is one arrow or target. Arrows use Dir and HitAt; growing targets
// use X and Size.
type Entity struct {
	Kind  Kind
	Dir   Direction
	HitAt time.Duration // absolute instant the arrow reaches the hit zone

	X    int     // lateral centre of a growing target
	Size float64 // half-extent of a growing target

	Resolved bool // hit, missed or shot; swept before the next tick
	Counted  bool // already added to the tracked counter
}

// Capacity is the hard ceiling on simultaneous entities.
const Capacity = 12

// Arena is a fixed block of entity slots. Slot indices are stable for an
// entity's lifetime and freed slots are reused; nothing is allocated after
// construction.
type Arena struct {
	slots [Capacity]Entity
	live  [Capacity]bool
	limit int
	n     int
}

// NewArena returns an arena admitting at most limit entities. The limit is
// clamped to 1..Capacity.
func NewArena(limit int) *Arena {
	a := &Arena{}
	a.SetLimit(limit)
	return a
}

// SetLimit changes the admission limit without touching live entities.
func (a *Arena) SetLimit(limit int) {
	a.limit = max(1, min(Capacity, limit))
}

// Cap is the admission limit.
func (a *Arena) Cap() int { return a.limit }

// Len is the number of live entities.
func (a *Arena) Len() int { return a.n }

// Full reports whether another Spawn would be refused.
func (a *Arena) Full() bool { return a.n >= a.limit }

// Spawn stores e in the lowest free slot and returns its index. At capacity
// it does nothing and returns false.
func (a *Arena) Spawn(e Entity) (int, bool) {
	if a.Full() {
		return -1, false
	}
	for i := range a.slots {
		if !a.live[i] {
			a.slots[i] = e
			a.live[i] = true
			a.n++
			return i, true
		}
	}
	return -1, false
}

// Live reports whether slot i holds an entity.
func (a *Arena) Live(i int) bool {
	return i >= 0 && i < Capacity && a.live[i]
}

// At returns the entity in slot i, or nil for an empty slot.
func (a *Arena) At(i int) *Entity {
	if !a.Live(i) {
		return nil
	}
	return &a.slots[i]
}

// Remove frees slot i.
func (a *Arena) Remove(i int) {
	if !a.Live(i) {
		return
	}
	a.live[i] = false
	a.slots[i] = Entity{}
	a.n--
}

// Sweep frees every resolved entity and returns how many were removed.
func (a *Arena) Sweep() int {
	removed := 0
	for i := range a.slots {
		if a.live[i] && a.slots[i].Resolved {
			a.Remove(i)
			removed++
		}
	}
	return removed
}

// Clear frees every slot.
func (a *Arena) Clear() {
	for i := range a.slots {
		a.Remove(i)
	}
}

// Each calls fn for every live entity in slot order.
func (a *Arena) Each(fn func(i int, e *Entity)) {
	for i := range a.slots {
		if a.live[i] {
			fn(i, &a.slots[i])
		}
	}
}
