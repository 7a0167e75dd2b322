package display

import (
	"fmt"
	"time"

	"github.com/Garsondee/pico-arcade/internal/clock"
)

const (
	// DefaultRetryWindow bounds how long one write may be retried before the
	// frame is abandoned.
	DefaultRetryWindow = 500 * time.Microsecond

	// retryBackoff is the pause between attempts; it also guarantees the
	// retry loop observes time passing on a manual clock.
	retryBackoff = 50 * time.Microsecond
)

// Renderer owns the frame and is the only component that talks to the panel.
// Games draw through the embedded Framebuffer and call Flush once per tick.
type Renderer struct {
	Framebuffer

	tx    Transport
	clk   clock.Clock
	retry time.Duration

	preamble [6]byte

	frames  int
	dropped int
	lastErr error
}

// NewRenderer returns a renderer that flushes through tx, timing its retries
// on clk.
func NewRenderer(tx Transport, clk clock.Clock) *Renderer {
	return &Renderer{
		tx:       tx,
		clk:      clk,
		retry:    DefaultRetryWindow,
		preamble: [6]byte{CmdColumnAddr, 0, Width - 1, CmdPageAddr, 0, Pages - 1},
	}
}

// SetRetryWindow overrides the per-write retry budget.
func (r *Renderer) SetRetryWindow(d time.Duration) {
	if d < 0 {
		d = 0
	}
	r.retry = d
}

// Init sends the controller power-up sequence and blanks the panel. Unlike
// Flush it reports failure: a display that cannot be initialised is a fatal
// startup condition.
func (r *Renderer) Init() error {
	for _, c := range InitSequence {
		if !r.attempt(func() error { return r.tx.WriteCommand(c) }) {
			return fmt.Errorf("display: init: %w", r.lastErr)
		}
	}
	r.Clear()
	if !r.Flush() {
		return fmt.Errorf("display: init: first frame: %w", r.lastErr)
	}
	return nil
}

// Flush sends the addressing preamble and the whole buffer. A write that
// keeps failing past the retry window abandons the rest of the frame; the
// loss is counted and reported through the return value only, never as an
// error, so a stalled panel cannot stop the game.
func (r *Renderer) Flush() bool {
	for _, c := range r.preamble {
		if !r.attempt(func() error { return r.tx.WriteCommand(c) }) {
			r.dropped++
			return false
		}
	}
	buf := r.Bytes()
	for off := 0; off < len(buf); off += DataChunk {
		chunk := buf[off:min(off+DataChunk, len(buf))]
		if !r.attempt(func() error { return r.tx.WriteData(chunk) }) {
			r.dropped++
			return false
		}
	}
	r.frames++
	return true
}

func (r *Renderer) attempt(write func() error) bool {
	deadline := r.clk.Now() + r.retry
	for {
		err := write()
		if err == nil {
			return true
		}
		r.lastErr = err
		if r.clk.Now() >= deadline {
			return false
		}
		r.clk.Sleep(retryBackoff)
	}
}

// Frames is the number of frames delivered in full.
func (r *Renderer) Frames() int { return r.frames }

// Dropped is the number of frames abandoned after the retry budget ran out.
func (r *Renderer) Dropped() int { return r.dropped }

// LastError is the most recent transport failure, retried or not.
func (r *Renderer) LastError() error { return r.lastErr }
