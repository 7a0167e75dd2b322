package arcade

import (
	"strings"
	"testing"
	"time"
)

func TestReport_AggregatesPerGame(t *testing.T) {
	rep := NewReport()
	rep.Add(Result{Game: GameShooter, Outcome: OutcomeWon, Score: 0, Tracked: 4, Hits: 9, Misses: 3, Elapsed: 15 * time.Second})
	rep.Add(Result{Game: GameShooter, Outcome: OutcomeLost, Tracked: 2, Hits: 3, Misses: 1, Elapsed: 5 * time.Second})
	rep.Add(Result{Game: GameRhythm, Outcome: OutcomeCompleted, Score: 1500, MaxCombo: 5, Tracked: 2, Hits: 5})

	sums := rep.Summaries()
	if len(sums) != 2 || sums[0].Game != GameShooter || sums[1].Game != GameRhythm {
		t.Fatalf("summaries should keep first-seen order, got %d", len(sums))
	}
	sh := rep.Summary(GameShooter)
	if sh.Sessions != 2 || sh.WinRate() != 0.5 {
		t.Fatalf("expected 2 sessions and 50%% wins, got %d / %v", sh.Sessions, sh.WinRate())
	}
	if sh.MeanTracked() != 3 {
		t.Fatalf("expected mean tracked 3, got %v", sh.MeanTracked())
	}
	if sh.HitRate() != 0.75 {
		t.Fatalf("expected hit rate 0.75, got %v", sh.HitRate())
	}
	rh := rep.Summary(GameRhythm)
	if rh.BestScore != 1500 || rh.MaxCombo != 5 {
		t.Fatalf("unexpected rhythm summary: %+v", rh)
	}
	if rep.Summary(GameGauge) != nil {
		t.Fatal("no gauge sessions were added")
	}

	out := rep.Format()
	for _, want := range []string{"SHOOTER (2 sessions)", "RHYTHM (1 sessions)", "win rate 50%", "tiers:"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReport_Empty(t *testing.T) {
	if got := NewReport().Format(); got != "No sessions recorded.\n" {
		t.Fatalf("unexpected empty report: %q", got)
	}
}
