package display

import (
	"strconv"
	"testing"
)

func TestSetPixel_PageLayout(t *testing.T) {
	var fb Framebuffer
	fb.SetPixel(5, 0, true)
	fb.SetPixel(5, 9, true)
	fb.SetPixel(127, 63, true)

	buf := fb.Bytes()
	if len(buf) != 1024 {
		t.Fatalf("expected 1024-byte buffer, got %d", len(buf))
	}
	if buf[5] != 0x01 {
		t.Errorf("pixel (5,0): expected byte 5 = 0x01, got 0x%02X", buf[5])
	}
	if buf[1*Width+5] != 0x02 {
		t.Errorf("pixel (5,9): expected byte %d = 0x02, got 0x%02X", Width+5, buf[Width+5])
	}
	if buf[7*Width+127] != 0x80 {
		t.Errorf("pixel (127,63): expected last byte 0x80, got 0x%02X", buf[7*Width+127])
	}

	fb.SetPixel(5, 9, false)
	if fb.Pixel(5, 9) {
		t.Error("pixel (5,9) should be cleared")
	}
}

func TestSetPixel_OutOfBoundsIsNoOp(t *testing.T) {
	var fb Framebuffer
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {Width, 0}, {0, Height}, {-1000, 5000}} {
		fb.SetPixel(p[0], p[1], true)
		if fb.Pixel(p[0], p[1]) {
			t.Errorf("out-of-bounds pixel %v reads as lit", p)
		}
	}
	for i, b := range fb.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d modified by out-of-bounds writes: 0x%02X", i, b)
		}
	}
}

func countLit(fb *Framebuffer) int {
	n := 0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if fb.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

func TestLine_AxisAlignedIsExact(t *testing.T) {
	var fb Framebuffer
	fb.Line(10, 20, 30, 20)
	if n := countLit(&fb); n != 21 {
		t.Fatalf("horizontal line: expected 21 pixels, got %d", n)
	}
	for x := 10; x <= 30; x++ {
		if !fb.Pixel(x, 20) {
			t.Fatalf("horizontal line missing (%d,20)", x)
		}
	}

	fb.Clear()
	fb.Line(7, 50, 7, 3)
	if n := countLit(&fb); n != 48 {
		t.Fatalf("vertical line: expected 48 pixels, got %d", n)
	}
}

func TestLine_Symmetric(t *testing.T) {
	cases := [][4]int{
		{0, 0, 127, 63},
		{3, 40, 90, 2},
		{64, 32, 70, 60},
		{100, 10, 12, 11},
	}
	for _, c := range cases {
		var a, b Framebuffer
		a.Line(c[0], c[1], c[2], c[3])
		b.Line(c[2], c[3], c[0], c[1])
		if a != b {
			t.Errorf("line %v differs when drawn in reverse", c)
		}
		if !a.Pixel(c[0], c[1]) || !a.Pixel(c[2], c[3]) {
			t.Errorf("line %v does not include both endpoints", c)
		}
	}
}

func TestDisc_Membership(t *testing.T) {
	var fb Framebuffer
	fb.Disc(64, 32, 5)
	for y := 20; y < 45; y++ {
		for x := 50; x < 80; x++ {
			dx, dy := x-64, y-32
			want := dx*dx+dy*dy <= 25
			if fb.Pixel(x, y) != want {
				t.Fatalf("pixel (%d,%d): expected %v", x, y, want)
			}
		}
	}
}

func TestDisc_ClipsAtEdges(t *testing.T) {
	var fb Framebuffer
	fb.Disc(0, 0, 10)
	if !fb.Pixel(0, 0) || !fb.Pixel(10, 0) || fb.Pixel(10, 10) {
		t.Fatal("corner disc drawn incorrectly")
	}
}

func TestFillRect_Clipped(t *testing.T) {
	var fb Framebuffer
	fb.FillRect(-5, -5, 10, 10)
	if n := countLit(&fb); n != 25 {
		t.Fatalf("expected 25 visible pixels, got %d", n)
	}
}

func TestText_UnsupportedRendersBlank(t *testing.T) {
	var fb Framebuffer
	fb.FillRect(0, 0, 16, 8)
	end := fb.Text(0, 0, "?A")
	if end != 16 {
		t.Fatalf("expected advance to x=16, got %d", end)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if fb.Pixel(x, y) {
				t.Fatalf("unsupported glyph left pixel (%d,%d) lit", x, y)
			}
		}
	}
	lit := 0
	for y := 0; y < 8; y++ {
		for x := 8; x < 16; x++ {
			if fb.Pixel(x, y) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("glyph A drew nothing")
	}
}

func TestText_CaseInsensitive(t *testing.T) {
	var a, b Framebuffer
	a.Text(0, 0, "GO!")
	b.Text(0, 0, "go!")
	if a != b {
		t.Fatal("lower-case text should render with the upper-case glyphs")
	}
}

func TestCompileGlyph_ColumnMajor(t *testing.T) {
	g := CompileGlyph("#.......", ".#......", "........", "...#....")
	if g[0] != 0x01 || g[1] != 0x02 || g[3] != 0x08 {
		t.Fatalf("unexpected glyph columns %v", g)
	}
}

func TestFramed_CentresMessage(t *testing.T) {
	var fb Framebuffer
	fb.Framed("GO!")
	// 3 glyphs are 24px wide: centred text starts at x=52.
	var ref Framebuffer
	ref.Text(52, Height/2-4, "GO!")
	for y := Height/2 - 4; y < Height/2+4; y++ {
		for x := 0; x < Width; x++ {
			if fb.Pixel(x, y) != ref.Pixel(x, y) {
				t.Fatalf("message row mismatch at (%d,%d)", x, y)
			}
		}
	}
	if !fb.Pixel(1, Height/2-16+3) {
		t.Fatal("upper rule missing")
	}
}

func TestSmallText_DrawsSomething(t *testing.T) {
	var fb Framebuffer
	fb.SmallText(0, 0, "88")
	if countLit(&fb) == 0 {
		t.Fatal("small text drew nothing")
	}
	for x := 0; x < Width; x++ {
		for y := SmallTextHeight + 2; y < Height; y++ {
			if fb.Pixel(x, y) {
				t.Fatalf("small text spilled to row %d", y)
			}
		}
	}
}

func TestNumber_MatchesText(t *testing.T) {
	for _, n := range []int{0, 7, 42, 1200, -15} {
		var a, b Framebuffer
		endA := a.Number(3, 10, n)
		endB := b.Text(3, 10, strconv.Itoa(n))
		if endA != endB {
			t.Fatalf("Number(%d) ended at %d, Text at %d", n, endA, endB)
		}
		if a.buf != b.buf {
			t.Fatalf("Number(%d) drew different pixels than Text", n)
		}
		if w := NumberWidth(n); w != endA-3 {
			t.Fatalf("NumberWidth(%d) = %d, want %d", n, w, endA-3)
		}
	}
}

func TestPolarPoint_Compass(t *testing.T) {
	tests := []struct {
		deg          float64
		wantX, wantY int
	}{
		{0, 73, 32},
		{90, 63, 22},
		{180, 53, 32},
		{270, 63, 42},
	}
	for _, tt := range tests {
		x, y := PolarPoint(63, 32, 10, tt.deg)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("PolarPoint(%v°) = (%d,%d), want (%d,%d)", tt.deg, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestArc_UpperHalfOnly(t *testing.T) {
	var fb Framebuffer
	fb.Arc(63, 32, 28, 0, 180, 3)
	for _, p := range [][2]int{{91, 32}, {63, 4}, {35, 32}} {
		if !fb.Pixel(p[0], p[1]) {
			t.Errorf("arc should light (%d,%d)", p[0], p[1])
		}
	}
	for y := 33; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if fb.Pixel(x, y) {
				t.Fatalf("upper arc lit (%d,%d) below the centre", x, y)
			}
		}
	}
}
