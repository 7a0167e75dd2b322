package main

import (
	"strings"
	"testing"
	"time"

	"github.com/Garsondee/pico-arcade/internal/arcade"
)

func TestFirstAt(t *testing.T) {
	entries := []arcade.Event{
		{At: 1 * time.Second, Category: "phase", Key: "active"},
		{At: 2 * time.Second, Category: "judge", Key: "miss"},
		{At: 3 * time.Second, Category: "judge", Key: "great"},
		{At: 4 * time.Second, Category: "judge", Key: "perfect"},
	}
	if got := firstAt(entries, "judge", "perfect", "great"); got != 3*time.Second {
		t.Fatalf("expected first hit at 3s, got %s", got)
	}
	if got := firstAt(entries, "shot", "hit"); got != -1 {
		t.Fatalf("expected -1 for a missing event, got %s", got)
	}
}

func TestModeFor_RotatesModes(t *testing.T) {
	var rhythm, shooter string
	for i := 0; i < 4; i++ {
		rhythm += string(modeFor(arcade.GameRhythm, i))
		shooter += string(modeFor(arcade.GameShooter, i))
	}
	if rhythm != "ABCD" || shooter != "EFEF" {
		t.Fatalf("unexpected rotation %q / %q", rhythm, shooter)
	}
	if modeFor(arcade.GameGauge, 3) != 0 {
		t.Fatal("gauge has no modes")
	}
}

func TestDetectCollapse_TrueWhenLostAndFailuresDominate(t *testing.T) {
	rs := runStats{
		result:      arcade.Result{Outcome: arcade.OutcomeLost, Hits: 2, Misses: 4},
		collisionAt: 5 * time.Second,
	}

	collapsed, reason := detectCollapse(rs)
	if !collapsed {
		t.Fatalf("expected collapse=true, got false (reason=%s)", reason)
	}
	if !strings.Contains(reason, "overrun") {
		t.Fatalf("expected reason to mention overrun, got: %s", reason)
	}
}

func TestDetectCollapse_FalseWhenWon(t *testing.T) {
	rs := runStats{
		result:      arcade.Result{Outcome: arcade.OutcomeWon, Hits: 1, Misses: 9},
		collisionAt: -1,
	}
	if collapsed, reason := detectCollapse(rs); collapsed {
		t.Fatalf("a won run never collapses (reason=%s)", reason)
	}
}

func TestDetectCollapse_FalseWhenHitsKeepUp(t *testing.T) {
	rs := runStats{
		result:      arcade.Result{Outcome: arcade.OutcomeCompleted, Hits: 8, Misses: 3, Expired: 2},
		collisionAt: -1,
	}
	if collapsed, reason := detectCollapse(rs); collapsed {
		t.Fatalf("expected collapse=false when hits outnumber failures (reason=%s)", reason)
	}
}

func TestRunSession_GaugeBotCompletes(t *testing.T) {
	s := arcade.Session{Game: arcade.GameGauge, Rounds: 2}
	rs := runSession(1, 5, s, botSkill{wobble: 0}, false)
	if rs.err != nil {
		t.Fatalf("run: %v", rs.err)
	}
	if rs.result.Game != arcade.GameGauge || rs.result.Outcome != arcade.OutcomeWon {
		t.Fatalf("a steady bot should win the gauge, got %s", rs.result)
	}
	if rs.events == 0 {
		t.Fatal("the run should have logged events")
	}
}
