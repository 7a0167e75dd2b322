package arcade

import (
	"fmt"
	"strings"
	"time"
)

// GameSummary aggregates every session of one game.
type GameSummary struct {
	Game     string
	Sessions int
	Outcomes map[Outcome]int

	TotalScore   int
	BestScore    int
	TotalTracked int
	MaxCombo     int
	Hits         int
	Misses       int
	Expired      int
	Tiers        [TierPerfect + 1]int
	Elapsed      time.Duration
	Dropped      int
}

// MeanScore is the average score per session.
func (s *GameSummary) MeanScore() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(s.Sessions)
}

// MeanTracked is the average tracked count per session.
func (s *GameSummary) MeanTracked() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.TotalTracked) / float64(s.Sessions)
}

// WinRate is the fraction of sessions won.
func (s *GameSummary) WinRate() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.Outcomes[OutcomeWon]) / float64(s.Sessions)
}

// HitRate is hits over all decisions.
func (s *GameSummary) HitRate() float64 {
	total := s.Hits + s.Misses + s.Expired
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Report collects session results and summarises them per game.
type Report struct {
	games map[string]*GameSummary
	order []string
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{games: map[string]*GameSummary{}}
}

// Add folds one result into the report.
func (r *Report) Add(res Result) {
	s, ok := r.games[res.Game]
	if !ok {
		s = &GameSummary{Game: res.Game, Outcomes: map[Outcome]int{}}
		r.games[res.Game] = s
		r.order = append(r.order, res.Game)
	}
	s.Sessions++
	s.Outcomes[res.Outcome]++
	s.TotalScore += res.Score
	s.BestScore = max(s.BestScore, res.Score)
	s.TotalTracked += res.Tracked
	s.MaxCombo = max(s.MaxCombo, res.MaxCombo)
	s.Hits += res.Hits
	s.Misses += res.Misses
	s.Expired += res.Expired
	for t, n := range res.Tiers {
		s.Tiers[t] += n
	}
	s.Elapsed += res.Elapsed
	s.Dropped += res.FramesDropped
}

// Summary returns the summary for game, or nil if none was recorded.
func (r *Report) Summary(game string) *GameSummary {
	return r.games[game]
}

// Summaries returns every game's summary in first-seen order.
func (r *Report) Summaries() []*GameSummary {
	out := make([]*GameSummary, 0, len(r.order))
	for _, g := range r.order {
		out = append(out, r.games[g])
	}
	return out
}

// Format returns a human-readable multi-line report.
func (r *Report) Format() string {
	if len(r.order) == 0 {
		return "No sessions recorded.\n"
	}
	var sb strings.Builder
	for _, s := range r.Summaries() {
		fmt.Fprintf(&sb, "=== %s (%d sessions) ===\n", strings.ToUpper(s.Game), s.Sessions)
		fmt.Fprintf(&sb, "  outcomes:  won=%d lost=%d completed=%d incomplete=%d  (win rate %.0f%%)\n",
			s.Outcomes[OutcomeWon], s.Outcomes[OutcomeLost], s.Outcomes[OutcomeCompleted],
			s.Outcomes[OutcomeIncomplete], s.WinRate()*100)
		fmt.Fprintf(&sb, "  score:     mean=%.1f best=%d max_combo=%d\n",
			s.MeanScore(), s.BestScore, s.MaxCombo)
		fmt.Fprintf(&sb, "  tracked:   mean=%.2f total=%d\n", s.MeanTracked(), s.TotalTracked)
		fmt.Fprintf(&sb, "  decisions: hits=%d misses=%d expired=%d  (hit rate %.0f%%)\n",
			s.Hits, s.Misses, s.Expired, s.HitRate()*100)
		if s.Game == GameRhythm {
			fmt.Fprintf(&sb, "  tiers:     perfect=%d great=%d good=%d miss=%d\n",
				s.Tiers[TierPerfect], s.Tiers[TierGreat], s.Tiers[TierGood], s.Tiers[TierMiss])
		}
		fmt.Fprintf(&sb, "  time:      %.1fs simulated, %d frames dropped\n", s.Elapsed.Seconds(), s.Dropped)
	}
	return sb.String()
}
