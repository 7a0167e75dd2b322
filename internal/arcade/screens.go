package arcade

import (
	"time"

	"github.com/Garsondee/pico-arcade/internal/display"
	"github.com/Garsondee/pico-arcade/internal/input"
)

// Screens holds the timings of the splash and verdict screens.
type Screens struct {
	CountdownStep time.Duration // each of 3, 2, 1
	Go            time.Duration // the GO! frame
	Verdict       time.Duration // YOU WON! / YOU DIED!
}

// DefaultScreens returns the timings of the action games.
func DefaultScreens() Screens {
	return Screens{
		CountdownStep: 500 * time.Millisecond,
		Go:            400 * time.Millisecond,
		Verdict:       2 * time.Second,
	}
}

var countdownDigits = [...]string{"1", "2", "3"}

// Framed shows msg between the dashed rules and flushes it.
func (b *Board) Framed(msg string) {
	b.Display.Framed(msg)
	b.Present()
}

// Dwell shows msg framed for d.
func (b *Board) Dwell(msg string, d time.Duration) {
	b.Framed(msg)
	b.Clock.Sleep(d)
}

// WaitToStart shows msg and blocks until one of btns is pressed and
// released. It returns the button that started play.
func (b *Board) WaitToStart(msg string, btns *input.Buttons) int {
	b.Framed(msg)
	return btns.WaitForStart()
}

// Countdown runs the 3, 2, 1, GO! sequence.
func (b *Board) Countdown(sc Screens) {
	for i := len(countdownDigits) - 1; i >= 0; i-- {
		b.Dwell(countdownDigits[i], sc.CountdownStep)
	}
	b.Dwell("GO!", sc.Go)
}

// FramedCount shows label followed by n between the dashed rules, e.g.
// TARGET 3. The number is drawn in place rather than formatted.
func (b *Board) FramedCount(label string, n int) {
	fb := &b.Display.Framebuffer
	fb.Framed("")
	w := display.TextWidth(label) + display.TextWidth(" ") + display.NumberWidth(n)
	x := fb.Text((display.Width-w)/2, display.Height/2-4, label)
	fb.Number(x+display.TextWidth(" "), display.Height/2-4, n)
	b.Present()
}
