package arcade

import (
	"testing"
	"time"
)

func newRig(t *testing.T, opts ...RigOption) *Rig {
	t.Helper()
	r, err := NewRig(opts...)
	if err != nil {
		t.Fatalf("rig: %v", err)
	}
	return r
}

func TestRig_ScriptedPressFiresAtTime(t *testing.T) {
	r := newRig(t, WithFire(30*time.Millisecond, 20*time.Millisecond))
	if r.Board.Fire.Sample() != -1 {
		t.Fatal("fire should start released")
	}
	r.Clock.Advance(30 * time.Millisecond)
	if r.Board.Fire.Sample() != 0 {
		t.Fatal("fire should be held at 30ms")
	}
	r.Clock.Advance(20 * time.Millisecond)
	if r.Board.Fire.Sample() != -1 {
		t.Fatal("fire should be released at 50ms")
	}
}

func TestBoard_PresentLogsOncePerBurst(t *testing.T) {
	r := newRig(t)
	r.Panel.Stall(true)
	for i := 0; i < 3; i++ {
		if r.Board.Present() {
			t.Fatal("flush should fail on a stalled panel")
		}
	}
	r.Panel.Stall(false)
	if !r.Board.Present() {
		t.Fatal("flush should recover")
	}
	if n := r.Log().Count("display", "frame_dropped"); n != 1 {
		t.Fatalf("expected one drop event per burst, got %d", n)
	}
	if n := r.Log().Count("display", "recovered"); n != 1 {
		t.Fatalf("expected one recovery event, got %d", n)
	}
	if r.Board.Display.Dropped() != 3 {
		t.Fatalf("expected 3 dropped frames, got %d", r.Board.Display.Dropped())
	}
}

func TestBoard_CountdownSequence(t *testing.T) {
	r := newRig(t)
	start := r.Clock.Now()
	sc := DefaultScreens()
	r.Board.Countdown(sc)
	if got, want := r.Clock.Now()-start, 3*sc.CountdownStep+sc.Go; got != want {
		t.Fatalf("countdown took %v, want %v", got, want)
	}
	// Last frame is GO! between the rules.
	if !r.PanelPixel(1, 64/2-16+3) {
		t.Fatal("expected the top rule on the panel")
	}
}
