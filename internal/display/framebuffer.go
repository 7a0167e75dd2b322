// Package display owns the monochrome frame: a bit-packed buffer laid out the
// way SSD1306-class controllers store GDDRAM, the drawing primitives the games
// need, and the flush path to the panel.
package display

const (
	Width  = 128
	Height = 64
	Pages  = Height / 8

	// BufferLen is ceil(Width*Height/8): one bit per pixel.
	BufferLen = (Width*Height + 7) / 8

	glyphSize = 8
)

// Framebuffer is a fixed-size monochrome bitmap. Rows are packed into 8-pixel
// tall pages: byte (y>>3)*Width+x holds column x of page y>>3, bit y&7.
type Framebuffer struct {
	buf [BufferLen]byte
}

// Clear turns every pixel off.
func (fb *Framebuffer) Clear() {
	for i := range fb.buf {
		fb.buf[i] = 0
	}
}

// Bytes exposes the packed buffer in transmission order.
func (fb *Framebuffer) Bytes() []byte {
	return fb.buf[:]
}

// SetPixel sets or clears one pixel. Coordinates outside the panel are ignored.
func (fb *Framebuffer) SetPixel(x, y int, on bool) {
	if uint(x) >= Width || uint(y) >= Height {
		return
	}
	idx := (y>>3)*Width + x
	mask := byte(1) << uint(y&7)
	if on {
		fb.buf[idx] |= mask
	} else {
		fb.buf[idx] &^= mask
	}
}

// Pixel reports whether a pixel is lit. Out-of-bounds pixels read as off.
func (fb *Framebuffer) Pixel(x, y int) bool {
	if uint(x) >= Width || uint(y) >= Height {
		return false
	}
	return fb.buf[(y>>3)*Width+x]&(1<<uint(y&7)) != 0
}

// Line draws a one-pixel line with integer Bresenham stepping. Endpoints are
// put in a canonical order first so Line(a, b) and Line(b, a) light exactly
// the same pixels.
func (fb *Framebuffer) Line(x0, y0, x1, y1 int) {
	if x1 < x0 || (x1 == x0 && y1 < y0) {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	// x never decreases after the swap.
	sx, sy := 1, 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	x, y := x0, y0
	for {
		fb.SetPixel(x, y, true)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// HLine draws a horizontal run of w pixels starting at (x, y).
func (fb *Framebuffer) HLine(x, y, w int) {
	for i := 0; i < w; i++ {
		fb.SetPixel(x+i, y, true)
	}
}

// Disc fills every pixel with dx²+dy² ≤ r². A negative radius draws nothing.
func (fb *Framebuffer) Disc(cx, cy, r int) {
	if r < 0 {
		return
	}
	rr := r * r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= rr {
				fb.SetPixel(cx+dx, cy+dy, true)
			}
		}
	}
}

// Circle draws the outline of a circle with the midpoint algorithm.
func (fb *Framebuffer) Circle(cx, cy, r int) {
	if r < 0 {
		return
	}
	x, y := r, 0
	err := 1 - r
	for x >= y {
		fb.SetPixel(cx+x, cy+y, true)
		fb.SetPixel(cx+y, cy+x, true)
		fb.SetPixel(cx-y, cy+x, true)
		fb.SetPixel(cx-x, cy+y, true)
		fb.SetPixel(cx-x, cy-y, true)
		fb.SetPixel(cx-y, cy-x, true)
		fb.SetPixel(cx+y, cy-x, true)
		fb.SetPixel(cx+x, cy-y, true)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// FillRect lights the w×h rectangle whose top-left corner is (x, y).
func (fb *Framebuffer) FillRect(x, y, w, h int) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, Width), min(y+h, Height)
	for yy := y0; yy < y1; yy++ {
		for xx := x0; xx < x1; xx++ {
			fb.SetPixel(xx, yy, true)
		}
	}
}

// Arc plots points on a circle of radius r from fromDeg to toDeg (inclusive)
// every stepDeg degrees. 0° points right and angles grow counter-clockwise,
// so 0..180 draws the upper half.
func (fb *Framebuffer) Arc(cx, cy, r int, fromDeg, toDeg, stepDeg float64) {
	if stepDeg <= 0 {
		stepDeg = 1
	}
	for a := fromDeg; a <= toDeg; a += stepDeg {
		x, y := PolarPoint(cx, cy, float64(r), a)
		fb.SetPixel(x, y, true)
	}
}

// DrawGlyph copies an 8×8 glyph to (x, y). Lit and unlit bits are both
// written, so the glyph cell replaces whatever was underneath.
func (fb *Framebuffer) DrawGlyph(x, y int, g Glyph) {
	for cx := 0; cx < glyphSize; cx++ {
		col := g[cx]
		for cy := 0; cy < glyphSize; cy++ {
			fb.SetPixel(x+cx, y+cy, col&(1<<uint(cy)) != 0)
		}
	}
}

// Text draws s with the fixed 8×8 font and returns the x just past the last
// glyph. Characters outside the font render as blank cells.
func (fb *Framebuffer) Text(x, y int, s string) int {
	for i := 0; i < len(s); i++ {
		fb.DrawGlyph(x, y, glyphFor(s[i]))
		x += glyphSize
	}
	return x
}

// Number draws n in decimal with the 8×8 font and returns the x just past
// the last digit. It formats in place, so HUD counters can be redrawn every
// tick without building strings.
func (fb *Framebuffer) Number(x, y, n int) int {
	var digits [20]byte
	i := len(digits)
	neg := n < 0
	if neg {
		n = -n
	}
	for {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	if neg {
		i--
		digits[i] = '-'
	}
	for ; i < len(digits); i++ {
		fb.DrawGlyph(x, y, glyphFor(digits[i]))
		x += glyphSize
	}
	return x
}

// NumberWidth is the pixel width Number uses for n.
func NumberWidth(n int) int {
	w := glyphSize
	if n < 0 {
		w += glyphSize
		n = -n
	}
	for n >= 10 {
		w += glyphSize
		n /= 10
	}
	return w
}

// TextWidth is the pixel width of s in the 8×8 font.
func TextWidth(s string) int {
	return len(s) * glyphSize
}

// TextCentered draws s horizontally centred on row y.
func (fb *Framebuffer) TextCentered(y int, s string) {
	fb.Text((Width-TextWidth(s))/2, y, s)
}

const rule = "----------------"

// Framed clears the frame and shows msg centred between two dashed rules,
// the layout every splash and verdict screen uses.
func (fb *Framebuffer) Framed(msg string) {
	fb.Clear()
	fb.Text(0, Height/2-16, rule)
	fb.TextCentered(Height/2-4, msg)
	fb.Text(0, Height/2+8, rule)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
