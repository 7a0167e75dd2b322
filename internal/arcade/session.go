package arcade

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownGame is returned by ParseSession for a name it does not know.
var ErrUnknownGame = errors.New("arcade: unknown game")

// Session selects one game for a host run: which game, its mode letter and
// how many rounds. Zero rounds keeps the game's default.
type Session struct {
	Game   string
	Mode   byte
	Rounds int
}

// ParseSession validates command-line style arguments. The mode may be empty;
// each game then falls back to its first mode.
func ParseSession(game, mode string, rounds int) (Session, error) {
	s := Session{Game: strings.ToLower(strings.TrimSpace(game)), Rounds: rounds}
	switch s.Game {
	case GameRhythm, GameShooter, GameGauge:
	default:
		return Session{}, fmt.Errorf("%w: %q (supported: %s, %s, %s)", ErrUnknownGame, game, GameRhythm, GameShooter, GameGauge)
	}
	if rounds < 0 {
		return Session{}, fmt.Errorf("arcade: rounds must be >= 0, got %d", rounds)
	}
	if len(mode) > 1 {
		return Session{}, fmt.Errorf("arcade: mode must be a single letter, got %q", mode)
	}
	if mode != "" {
		s.Mode = strings.ToUpper(mode)[0]
	}
	return s, nil
}

// Play runs the session to completion on b.
func (s Session) Play(b *Board) (Result, error) {
	switch s.Game {
	case GameRhythm:
		cfg := DefaultRhythmConfig()
		if s.Rounds > 0 {
			cfg.Rounds = s.Rounds
		}
		return NewRhythm(b, ParseRhythmMode(s.Mode), cfg).Run()
	case GameShooter:
		return NewShooter(b, ParseShooterMode(s.Mode), DefaultShooterConfig()).Run()
	case GameGauge:
		cfg := DefaultGaugeConfig()
		if s.Rounds > 0 {
			cfg.Rounds = s.Rounds
		}
		return NewGauge(b, cfg).Run()
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownGame, s.Game)
}
