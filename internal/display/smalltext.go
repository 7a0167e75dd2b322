package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// tinyTarget lets tinyfont draw straight into the packed buffer.
type tinyTarget struct {
	fb *Framebuffer
}

var _ drivers.Displayer = tinyTarget{}

func (t tinyTarget) Size() (int16, int16) { return Width, Height }

func (t tinyTarget) SetPixel(x, y int16, c color.RGBA) {
	t.fb.SetPixel(int(x), int(y), c.R|c.G|c.B != 0)
}

func (t tinyTarget) Display() error { return nil }

var lit = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// SmallTextHeight is the line pitch of SmallText.
const SmallTextHeight = 6

// SmallText draws s in the 3×5 TomThumb face with its top edge at y. It is
// used for HUD counters that would not fit in the 8×8 font. Only lit pixels
// are written.
func (fb *Framebuffer) SmallText(x, y int, s string) {
	// tinyfont positions text by baseline.
	tinyfont.WriteLine(tinyTarget{fb: fb}, &tinyfont.TomThumb, int16(x), int16(y+SmallTextHeight-1), s, lit)
}
