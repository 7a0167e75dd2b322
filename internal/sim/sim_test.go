package sim

import (
	"encoding/binary"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/pico-arcade/internal/arcade"
	"github.com/Garsondee/pico-arcade/internal/clock"
	"github.com/Garsondee/pico-arcade/internal/display"
	"github.com/Garsondee/pico-arcade/internal/input"
)

func newHost(t *testing.T) *Host {
	t.Helper()
	h, err := NewHost(arcade.DefaultLayout(), clock.NewManual(0), 1, nil)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	return h
}

func newTerminal(t *testing.T, h *Host) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(TermCols, TermRows)
	t.Cleanup(screen.Fini)
	return NewTerminal(h, screen), screen
}

func TestHost_PanelPoweredAndBlank(t *testing.T) {
	h := newHost(t)
	var buf [display.BufferLen]byte
	if !h.Panel.Snapshot(&buf) {
		t.Fatal("panel should be on after init")
	}
	if strings.Contains(FrameText(&buf, true), "#") {
		t.Fatal("panel should start blank")
	}
	if h.Finished() {
		t.Fatal("no session was started")
	}
}

func TestHost_NudgeClamps(t *testing.T) {
	h := newHost(t)
	pot := h.Layout.Pot
	h.Nudge(pot, 100000)
	if got := h.Pins.Sample(pot); got != input.AnalogMax {
		t.Fatalf("nudge past the top should clamp, got %d", got)
	}
	h.Nudge(pot, -100000)
	if got := h.Pins.Sample(pot); got != 0 {
		t.Fatalf("nudge past the bottom should clamp, got %d", got)
	}
	h.Deflect(h.Layout.StickX, 0)
	if got := h.Pins.Sample(h.Layout.StickX); got != input.AnalogCenter {
		t.Fatalf("centred stick should read %d, got %d", input.AnalogCenter, got)
	}
}

func TestLamps_Latch(t *testing.T) {
	var l Lamps
	l.Set(true, false)
	if r, g := l.State(); !r || g {
		t.Fatalf("expected red only, got %v %v", r, g)
	}
	l.Set(false, true)
	if r, g := l.State(); r || !g {
		t.Fatalf("expected green only, got %v %v", r, g)
	}
}

func TestFrameText_Shape(t *testing.T) {
	var buf [display.BufferLen]byte
	buf[0] = 0x01 // pixel (0,0)
	out := FrameText(&buf, true)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != display.Height {
		t.Fatalf("expected %d lines, got %d", display.Height, len(lines))
	}
	if len(lines[0]) != display.Width || lines[0][0] != '#' || lines[0][1] != '.' {
		t.Fatalf("unexpected first row %q", lines[0][:8])
	}
	if strings.Contains(FrameText(&buf, false), "#") {
		t.Fatal("a panel that is off should render blank")
	}
}

func TestSquareWave_LengthAndFade(t *testing.T) {
	pcm := SquareWave(1000, 10*time.Millisecond, 48000, 0.5)
	if len(pcm) != 480*4 {
		t.Fatalf("expected 480 stereo frames, got %d bytes", len(pcm))
	}
	first := int16(binary.LittleEndian.Uint16(pcm[0:]))
	if first <= 0 {
		t.Fatalf("wave should start high, got %d", first)
	}
	if l, r := pcm[0:2], pcm[2:4]; l[0] != r[0] || l[1] != r[1] {
		t.Fatal("channels should match")
	}
	last := int16(binary.LittleEndian.Uint16(pcm[len(pcm)-4:]))
	if last > first/4 || last < -first/4 {
		t.Fatalf("tail should fade, got %d against %d", last, first)
	}
	if SquareWave(0, time.Second, 48000, 1) != nil || SquareWave(440, 0, 48000, 1) != nil {
		t.Fatal("silent tones should synthesise nothing")
	}
}

func TestTerminal_DrawsHalfBlocks(t *testing.T) {
	h := newHost(t)
	h.Board.Display.FillRect(0, 0, 2, 2)
	h.Board.Display.SetPixel(5, 1, true)
	if !h.Board.Present() {
		t.Fatal("present failed")
	}
	term, screen := newTerminal(t, h)
	term.Draw()

	tests := []struct {
		x, y        int
		top, bottom bool
	}{
		{0, 0, true, true},
		{5, 0, false, true},
		{0, 1, false, false},
	}
	for _, tt := range tests {
		r, _, style, _ := screen.GetContent(tt.x, tt.y)
		if r != '▀' {
			t.Fatalf("cell (%d,%d) should be a half block, got %q", tt.x, tt.y, r)
		}
		fg, bg, _ := style.Decompose()
		if (fg == litColor) != tt.top || (bg == litColor) != tt.bottom {
			t.Errorf("cell (%d,%d): top lit %v bottom lit %v, want %v %v",
				tt.x, tt.y, fg == litColor, bg == litColor, tt.top, tt.bottom)
		}
	}
}

func TestTerminal_StatusShowsLamps(t *testing.T) {
	h := newHost(t)
	h.Lamps.Set(false, true)
	term, screen := newTerminal(t, h)
	term.Draw()

	r, _, style, _ := screen.GetContent(2, statusLine)
	if r != 'G' {
		t.Fatalf("expected the green lamp at column 2, got %q", r)
	}
	if _, bg, _ := style.Decompose(); bg != tcell.ColorGreen {
		t.Fatalf("lit green lamp should fill its cell, got %v", bg)
	}
	_, _, style, _ = screen.GetContent(0, statusLine)
	if _, bg, _ := style.Decompose(); bg == tcell.ColorRed {
		t.Fatal("red lamp is off and should not fill its cell")
	}
}

func TestTerminal_KeyHoldsPinThenReleases(t *testing.T) {
	h := newHost(t)
	term, _ := newTerminal(t, h)
	up := h.Layout.Arrows[arcade.Up]
	t0 := time.Unix(100, 0)

	if !term.HandleKey(tcell.KeyRune, 'w', t0) {
		t.Fatal("w should not quit")
	}
	if h.Pins.Level(up) {
		t.Fatal("w should pull the up pin low")
	}
	term.ReleaseExpired(t0.Add(term.Hold / 2))
	if h.Pins.Level(up) {
		t.Fatal("pin released before its hold ran out")
	}
	term.ReleaseExpired(t0.Add(term.Hold))
	if !h.Pins.Level(up) {
		t.Fatal("pin should be released once the hold runs out")
	}
}

func TestTerminal_StickAndDial(t *testing.T) {
	h := newHost(t)
	term, _ := newTerminal(t, h)
	l := h.Layout
	t0 := time.Unix(100, 0)

	term.HandleKey(tcell.KeyRune, 'j', t0)
	if got := h.Pins.Sample(l.StickX); got > 10 {
		t.Fatalf("j should push the stick fully left, got %d", got)
	}
	term.ReleaseExpired(t0.Add(term.Hold))
	if got := h.Pins.Sample(l.StickX); got != input.AnalogCenter {
		t.Fatalf("stick should spring back to centre, got %d", got)
	}

	before := h.Pins.Sample(l.Pot)
	term.HandleKey(tcell.KeyRune, ']', t0)
	if got := h.Pins.Sample(l.Pot); int(got) != int(before)+term.PotStep {
		t.Fatalf("] should turn the dial up by %d, got %d -> %d", term.PotStep, before, got)
	}
}

func TestTerminal_QuitKeys(t *testing.T) {
	h := newHost(t)
	term, _ := newTerminal(t, h)
	now := time.Unix(100, 0)
	if term.HandleKey(tcell.KeyEscape, 0, now) {
		t.Fatal("escape should quit")
	}
	if term.HandleKey(tcell.KeyRune, 'q', now) {
		t.Fatal("q should quit")
	}
	if !term.HandleKey(tcell.KeyRune, 'x', now) {
		t.Fatal("unbound keys should be ignored")
	}
}
