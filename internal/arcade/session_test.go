package arcade

import (
	"errors"
	"testing"
	"time"
)

func TestParseSession(t *testing.T) {
	tests := []struct {
		game, mode string
		rounds     int
		want       Session
		wantErr    bool
	}{
		{game: "rhythm", mode: "c", rounds: 2, want: Session{Game: GameRhythm, Mode: 'C', Rounds: 2}},
		{game: " Shooter ", mode: "F", want: Session{Game: GameShooter, Mode: 'F'}},
		{game: "gauge", want: Session{Game: GameGauge}},
		{game: "pinball", wantErr: true},
		{game: "rhythm", mode: "AB", wantErr: true},
		{game: "gauge", rounds: -1, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSession(tt.game, tt.mode, tt.rounds)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSession(%q, %q, %d) should fail", tt.game, tt.mode, tt.rounds)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSession(%q, %q, %d): %v", tt.game, tt.mode, tt.rounds, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSession(%q, %q, %d) = %+v, want %+v", tt.game, tt.mode, tt.rounds, got, tt.want)
		}
	}
}

func TestParseSession_UnknownGameIsSentinel(t *testing.T) {
	_, err := ParseSession("tetris", "", 0)
	if !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("expected ErrUnknownGame, got %v", err)
	}
	if _, err := (Session{Game: "tetris"}).Play(nil); !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("Play should refuse unknown games, got %v", err)
	}
}

func TestSession_IdleShooterDies(t *testing.T) {
	r := newRig(t, WithSeed(9), WithFire(100*time.Millisecond, 100*time.Millisecond))
	res, err := Session{Game: GameShooter, Mode: 'E'}.Play(r.Board)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if res.Game != GameShooter || res.Outcome != OutcomeLost {
		t.Fatalf("a shooter that never fires should lose, got %s", res)
	}
	if res.Hits != 0 {
		t.Fatalf("no shots were fired, got %d hits", res.Hits)
	}
}
