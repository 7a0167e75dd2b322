package sim

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/pico-arcade/internal/arcade"
	"github.com/Garsondee/pico-arcade/internal/display"
	"github.com/Garsondee/pico-arcade/internal/input"
)

// Terminal geometry: two pixel rows per cell using the upper half block,
// plus one status line under the panel.
const (
	TermCols   = display.Width
	TermRows   = display.Height/2 + 1
	statusLine = display.Height / 2
)

var (
	litColor  = tcell.NewRGBColor(120, 200, 255)
	darkColor = tcell.NewRGBColor(8, 10, 16)
)

// Terminal drives a host from a character terminal. Terminals report key
// presses but not releases, so every press holds its pin low for Hold and
// key auto-repeat keeps it held.
type Terminal struct {
	host   *Host
	screen tcell.Screen

	Hold     time.Duration
	PotStep  int
	Refresh  time.Duration
	deadline [input.MaxPins]time.Time
	stick    [2]time.Time
	frame    [display.BufferLen]byte
	help     string
}

// NewTerminal binds a host to an initialised screen.
func NewTerminal(h *Host, screen tcell.Screen) *Terminal {
	return &Terminal{
		host:    h,
		screen:  screen,
		Hold:    150 * time.Millisecond,
		PotStep: 96,
		Refresh: 33 * time.Millisecond,
		help:    "arrows/WASD  space:fire  IJKL:stick  [ ]:dial  q:quit",
	}
}

// Run pumps events and repaints until the player quits. When the session
// ends the last frame stays up until a key is pressed.
func (t *Terminal) Run() {
	ticker := time.NewTicker(t.Refresh)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !t.HandleKey(ev.Key(), ev.Rune(), time.Now()) {
					return
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case now := <-ticker.C:
			t.ReleaseExpired(now)
			t.Draw()
		}
	}
}

// HandleKey applies one key press to the pin bank. It returns false when the
// key asks to quit, or when any key is pressed after the session ended.
func (t *Terminal) HandleKey(k tcell.Key, r rune, now time.Time) bool {
	if t.host.Finished() {
		return false
	}
	l := t.host.Layout
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		t.press(l.Arrows[arcade.Up], now)
	case tcell.KeyDown:
		t.press(l.Arrows[arcade.Down], now)
	case tcell.KeyLeft:
		t.press(l.Arrows[arcade.Left], now)
	case tcell.KeyRight:
		t.press(l.Arrows[arcade.Right], now)
	case tcell.KeyEnter:
		t.press(l.Fire, now)
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case 'w', 'W':
			t.press(l.Arrows[arcade.Up], now)
		case 's', 'S':
			t.press(l.Arrows[arcade.Down], now)
		case 'a', 'A':
			t.press(l.Arrows[arcade.Left], now)
		case 'd', 'D':
			t.press(l.Arrows[arcade.Right], now)
		case ' ':
			t.press(l.Fire, now)
		case 'j', 'J':
			t.deflect(0, l.StickX, -1, now)
		case 'l', 'L':
			t.deflect(0, l.StickX, 1, now)
		case 'i', 'I':
			t.deflect(1, l.StickY, -1, now)
		case 'k', 'K':
			t.deflect(1, l.StickY, 1, now)
		case '[':
			t.host.Nudge(l.Pot, -t.PotStep)
		case ']':
			t.host.Nudge(l.Pot, t.PotStep)
		}
	}
	return true
}

func (t *Terminal) press(pin int, now time.Time) {
	if uint(pin) >= input.MaxPins {
		return
	}
	t.host.Pins.Press(pin)
	t.deadline[pin] = now.Add(t.Hold)
}

func (t *Terminal) deflect(axis, ch int, dir float64, now time.Time) {
	t.host.Deflect(ch, dir)
	t.stick[axis] = now.Add(t.Hold)
}

// ReleaseExpired lets go of every pin and stick axis whose hold has run out.
func (t *Terminal) ReleaseExpired(now time.Time) {
	for pin := range t.deadline {
		if !t.deadline[pin].IsZero() && !now.Before(t.deadline[pin]) {
			t.host.Pins.Release(pin)
			t.deadline[pin] = time.Time{}
		}
	}
	chans := [2]int{t.host.Layout.StickX, t.host.Layout.StickY}
	for axis, ch := range chans {
		if !t.stick[axis].IsZero() && !now.Before(t.stick[axis]) {
			t.host.Deflect(ch, 0)
			t.stick[axis] = time.Time{}
		}
	}
}

// Draw paints the current panel contents and the status line.
func (t *Terminal) Draw() {
	on := t.host.Panel.Snapshot(&t.frame)
	for row := 0; row < display.Height/2; row++ {
		for x := 0; x < display.Width; x++ {
			top := on && display.SnapshotPixel(&t.frame, x, row*2)
			bottom := on && display.SnapshotPixel(&t.frame, x, row*2+1)
			t.screen.SetContent(x, row, '▀', nil, tcell.StyleDefault.Foreground(shade(top)).Background(shade(bottom)))
		}
	}
	t.drawStatus()
	t.screen.Show()
}

func shade(lit bool) tcell.Color {
	if lit {
		return litColor
	}
	return darkColor
}

func (t *Terminal) drawStatus() {
	red, green := t.host.Lamps.State()
	x := t.put(0, "R", lampStyle(red, tcell.ColorRed))
	x = t.put(x+1, "G", lampStyle(green, tcell.ColorGreen))
	msg := t.help
	if t.host.Finished() {
		res, err := t.host.Result()
		msg = res.String() + "  (any key)"
		if err != nil {
			msg = fmt.Sprintf("error: %v", err)
		}
	}
	x = t.put(x+2, msg, tcell.StyleDefault)
	for ; x < TermCols; x++ {
		t.screen.SetContent(x, statusLine, ' ', nil, tcell.StyleDefault)
	}
}

func lampStyle(on bool, c tcell.Color) tcell.Style {
	if on {
		return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(c)
	}
	return tcell.StyleDefault.Foreground(c)
}

func (t *Terminal) put(x int, s string, style tcell.Style) int {
	for _, r := range s {
		if x >= TermCols {
			break
		}
		t.screen.SetContent(x, statusLine, r, nil, style)
		x++
	}
	return x
}
