package arcade

import (
	"errors"
	"fmt"
)

// Phase is where a game is in its round cycle.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseCountdown
	PhaseActive
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseActive:
		return "active"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// ErrBadTransition is returned for a phase change the cycle does not allow.
var ErrBadTransition = errors.New("arcade: invalid phase transition")

// next is the single legal successor of each phase.
var next = [...]Phase{
	PhaseIdle:      PhaseCountdown,
	PhaseCountdown: PhaseActive,
	PhaseActive:    PhaseResolved,
	PhaseResolved:  PhaseIdle,
}

// CanEnter reports whether to may follow p.
func (p Phase) CanEnter(to Phase) bool {
	return int(p) < len(next) && next[p] == to
}

// Enter moves the round to phase p. Skipping or reversing a phase is a
// programming error and leaves the state unchanged.
func (s *RoundState) Enter(p Phase) error {
	if !s.Phase.CanEnter(p) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, s.Phase, p)
	}
	s.Phase = p
	return nil
}
