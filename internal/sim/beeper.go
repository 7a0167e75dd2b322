package sim

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const beepRate = beep.SampleRate(44100)

// Beeper is a buzzer on the host's sound card. Tones are queued on the
// speaker mixer and Tone returns immediately.
type Beeper struct {
	mu    sync.Mutex
	ready bool
}

// NewBeeper opens the speaker. A machine without audio gets an error and the
// caller can carry on silently.
func NewBeeper() (*Beeper, error) {
	if err := speaker.Init(beepRate, beepRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Beeper{ready: true}, nil
}

// Tone implements arcade.Buzzer.
func (b *Beeper) Tone(hz int, d time.Duration) {
	if b == nil || hz <= 0 || d <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.ready {
		return
	}
	sine, err := generators.SineTone(beepRate, float64(hz))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(beepRate.N(d), sine))
}

// Close stops playback and releases the speaker.
func (b *Beeper) Close() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ready {
		speaker.Close()
		b.ready = false
	}
}
