package arcade

import (
	"fmt"
	"time"
)

// Outcome is how a game session ended.
type Outcome int

const (
	OutcomeIncomplete Outcome = iota
	OutcomeWon
	OutcomeLost
	OutcomeCompleted // a game without win or loss, such as the rhythm game
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	case OutcomeCompleted:
		return "completed"
	case OutcomeIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// Game names used in results and reports.
const (
	GameRhythm  = "rhythm"
	GameShooter = "shooter"
	GameGauge   = "gauge"
)

// Result is the record of one finished session.
type Result struct {
	Game    string
	Outcome Outcome

	Score    int
	MaxCombo int
	Tracked  int
	Hits     int
	Misses   int
	Expired  int
	Tiers    [TierPerfect + 1]int
	Rounds   int

	Elapsed       time.Duration
	FramesDropped int
	Description   string
}

// String is a one-line summary suitable for logs and the clipboard.
func (r Result) String() string {
	return fmt.Sprintf("%s %s score=%d tracked=%d hits=%d misses=%d expired=%d rounds=%d elapsed=%.1fs",
		r.Game, r.Outcome, r.Score, r.Tracked, r.Hits, r.Misses, r.Expired, r.Rounds, r.Elapsed.Seconds())
}

func newResult(game string, s *RoundState, outcome Outcome, elapsed time.Duration, b *Board, desc string) Result {
	return Result{
		Game:          game,
		Outcome:       outcome,
		Score:         s.Score,
		MaxCombo:      s.MaxCombo,
		Tracked:       s.Tracked,
		Hits:          s.Hits,
		Misses:        s.Misses,
		Expired:       s.Expired,
		Tiers:         s.Tiers,
		Rounds:        s.Round + 1,
		Elapsed:       elapsed,
		FramesDropped: b.Display.Dropped(),
		Description:   desc,
	}
}
