package window

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/Garsondee/pico-arcade/internal/sim"
)

const sampleRate = 48000

// Buzzer plays square-wave tones through ebiten's audio context, the closest
// the desktop gets to a piezo.
type Buzzer struct {
	ctx    *audio.Context
	Volume float64

	mu      sync.Mutex
	players [4]*audio.Player
	next    int
}

// NewBuzzer creates the process's audio context. Only one may exist.
func NewBuzzer() *Buzzer {
	return &Buzzer{ctx: audio.NewContext(sampleRate), Volume: 0.15}
}

// Tone implements arcade.Buzzer. It queues the note and returns at once.
func (b *Buzzer) Tone(hz int, d time.Duration) {
	pcm := sim.SquareWave(hz, d, sampleRate, b.Volume)
	if pcm == nil {
		return
	}
	p := b.ctx.NewPlayerFromBytes(pcm)

	b.mu.Lock()
	defer b.mu.Unlock()
	if old := b.players[b.next]; old != nil {
		_ = old.Close()
	}
	b.players[b.next] = p
	b.next = (b.next + 1) % len(b.players)
	p.Play()
}
