package sim

import (
	"encoding/binary"
	"math"
	"strings"
	"time"

	"github.com/Garsondee/pico-arcade/internal/display"
)

// FrameText renders a panel snapshot as ASCII art, one line per pixel row.
// A panel that is off renders blank.
func FrameText(buf *[display.BufferLen]byte, on bool) string {
	var sb strings.Builder
	sb.Grow((display.Width + 1) * display.Height)
	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			if on && display.SnapshotPixel(buf, x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SquareWave synthesises a tone as signed 16-bit little-endian stereo PCM,
// the layout ebiten's audio players consume. The last few milliseconds fade
// out so the note does not click.
func SquareWave(hz int, d time.Duration, rate int, volume float64) []byte {
	n := int(int64(rate) * int64(d) / int64(time.Second))
	if n <= 0 || hz <= 0 {
		return nil
	}
	out := make([]byte, n*4)
	period := float64(rate) / float64(hz)
	fade := min(n, rate/200)
	amp := volume * math.MaxInt16
	for i := 0; i < n; i++ {
		a := amp
		if left := n - i; left < fade {
			a *= float64(left) / float64(fade)
		}
		v := int16(a)
		if math.Mod(float64(i), period) >= period/2 {
			v = -v
		}
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	return out
}
