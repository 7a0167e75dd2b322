// Package window is the desktop front end: the emulated panel scaled up in
// an ebiten window, keyboard and gamepad wired to the host's pins.
package window

import (
	"image/color"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/pico-arcade/internal/arcade"
	"github.com/Garsondee/pico-arcade/internal/display"
	"github.com/Garsondee/pico-arcade/internal/input"
	"github.com/Garsondee/pico-arcade/internal/sim"
)

const (
	barHeight = 20
	noteTicks = 90

	// dialRate is how far Q/E turn the dial per update, in ADC counts.
	dialRate = 40
)

var (
	bezel    = color.RGBA{R: 10, G: 12, B: 18, A: 255}
	litPixel = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	offPixel = color.RGBA{R: 8, G: 10, B: 16, A: 255}
	barFill  = color.RGBA{R: 24, G: 28, B: 36, A: 255}
	barText  = color.RGBA{R: 170, G: 170, B: 170, A: 255}
	redOn    = color.RGBA{R: 230, G: 40, B: 40, A: 255}
	greenOn  = color.RGBA{R: 40, G: 220, B: 90, A: 255}
	lampOff  = color.RGBA{R: 60, G: 60, B: 60, A: 255}
)

var arrowKeys = [4][2]ebiten.Key{
	arcade.Left:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	arcade.Up:    {ebiten.KeyArrowUp, ebiten.KeyW},
	arcade.Right: {ebiten.KeyArrowRight, ebiten.KeyD},
	arcade.Down:  {ebiten.KeyArrowDown, ebiten.KeyS},
}

var arrowPad = [4]ebiten.StandardGamepadButton{
	arcade.Left:  ebiten.StandardGamepadButtonLeftLeft,
	arcade.Up:    ebiten.StandardGamepadButtonLeftTop,
	arcade.Right: ebiten.StandardGamepadButtonLeftRight,
	arcade.Down:  ebiten.StandardGamepadButtonLeftBottom,
}

// Window implements ebiten.Game over a sim.Host.
type Window struct {
	host  *sim.Host
	scale int

	panel *ebiten.Image
	frame [display.BufferLen]byte
	on    bool
	rgba  []byte
	pads  []ebiten.GamepadID

	showBar bool
	note    string
	noteFor int
}

// New returns a window showing h's panel at scale screen pixels per panel
// pixel.
func New(h *sim.Host, scale int) *Window {
	return &Window{
		host:    h,
		scale:   max(1, scale),
		rgba:    make([]byte, display.Width*display.Height*4),
		showBar: true,
	}
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run(title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w.Layout(0, 0))
	return ebiten.RunGame(w)
}

func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		w.showBar = !w.showBar
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		w.copyFrame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		w.copyResult()
	}

	w.pads = ebiten.AppendGamepadIDs(w.pads[:0])
	w.pollButtons()
	w.pollStick()
	w.pollDial()

	if w.noteFor > 0 {
		w.noteFor--
	}
	return nil
}

func (w *Window) pollButtons() {
	l := w.host.Layout
	for d, keys := range arrowKeys {
		down := ebiten.IsKeyPressed(keys[0]) || ebiten.IsKeyPressed(keys[1]) || w.padPressed(arrowPad[d])
		w.host.Pins.SetLevel(l.Arrows[d], !down)
	}
	fire := ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyEnter) ||
		w.padPressed(ebiten.StandardGamepadButtonRightBottom)
	w.host.Pins.SetLevel(l.Fire, !fire)
}

func (w *Window) padPressed(b ebiten.StandardGamepadButton) bool {
	for _, id := range w.pads {
		if ebiten.IsStandardGamepadLayoutAvailable(id) && ebiten.IsStandardGamepadButtonPressed(id, b) {
			return true
		}
	}
	return false
}

func (w *Window) padAxis(a ebiten.StandardGamepadAxis) float64 {
	for _, id := range w.pads {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			if v := ebiten.StandardGamepadAxisValue(id, a); v != 0 {
				return v
			}
		}
	}
	return 0
}

// pollStick maps IJKL to full deflection; without keys the left analog
// stick of the first pad is passed through.
func (w *Window) pollStick() {
	jx, jy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyJ) {
		jx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyL) {
		jx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyI) {
		jy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyK) {
		jy++
	}
	if jx == 0 && jy == 0 {
		jx = w.padAxis(ebiten.StandardGamepadAxisLeftStickHorizontal)
		jy = w.padAxis(ebiten.StandardGamepadAxisLeftStickVertical)
	}
	w.host.Deflect(w.host.Layout.StickX, jx)
	w.host.Deflect(w.host.Layout.StickY, jy)
}

// pollDial turns the dial with Q/E or the right stick. Holding the left
// mouse button points the needle at the cursor instead.
func (w *Window) pollDial() {
	pot := w.host.Layout.Pot
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, _ := ebiten.CursorPosition()
		w.host.Pins.SetSample(pot, DialForX(x, display.Width*w.scale))
		return
	}
	turn := w.padAxis(ebiten.StandardGamepadAxisRightStickHorizontal)
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		turn--
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		turn++
	}
	if turn != 0 {
		w.host.Nudge(pot, int(turn*dialRate))
	}
}

// DialForX maps a horizontal position across a window of width w to the
// dial reading whose needle points there: the left edge is 180 degrees.
func DialForX(x, w int) uint16 {
	if w <= 1 {
		return input.AnalogCenter
	}
	x = max(0, min(x, w-1))
	return uint16(x * input.AnalogMax / (w - 1))
}

func (w *Window) copyFrame() {
	if err := clipboard.WriteAll(sim.FrameText(&w.frame, w.on)); err != nil {
		w.say("clipboard: " + err.Error())
		return
	}
	w.say("frame copied")
}

func (w *Window) copyResult() {
	if !w.host.Finished() {
		w.say("session still running")
		return
	}
	res, err := w.host.Result()
	line := res.String()
	if err != nil {
		line = "error: " + err.Error()
	}
	if err := clipboard.WriteAll(line); err != nil {
		w.say("clipboard: " + err.Error())
		return
	}
	w.say("result copied")
}

func (w *Window) say(msg string) {
	w.note, w.noteFor = msg, noteTicks
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.panel == nil {
		w.panel = ebiten.NewImage(display.Width, display.Height)
	}
	screen.Fill(bezel)

	w.on = w.host.Panel.Snapshot(&w.frame)
	Paint(w.rgba, &w.frame, w.on)
	w.panel.WritePixels(w.rgba)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.panel, &op)

	if w.showBar {
		w.drawBar(screen)
	}
	if w.noteFor > 0 {
		ebitenutil.DebugPrintAt(screen, w.note, 4, 4)
	}
}

func (w *Window) drawBar(screen *ebiten.Image) {
	width := float32(display.Width * w.scale)
	y := float32(display.Height * w.scale)
	vector.FillRect(screen, 0, y, width, barHeight, barFill, false)

	red, green := w.host.Lamps.State()
	drawLamp(screen, 6, y+5, red, redOn)
	drawLamp(screen, 20, y+5, green, greenOn)

	status := "arrows/WASD  space  IJKL  Q/E dial  C copy"
	if w.host.Finished() {
		res, _ := w.host.Result()
		status = res.Game + " " + res.Outcome.String() + "  R copy result"
	}
	face := basicfont.Face7x13
	text.Draw(screen, status, face, 36, int(y)+14, barText)
	frames := "frames " + strconv.FormatUint(w.host.Panel.Frames(), 10)
	text.Draw(screen, frames, face, int(width)-text.BoundString(face, frames).Dx()-6, int(y)+14, barText)
}

func drawLamp(screen *ebiten.Image, x, y float32, lit bool, c color.RGBA) {
	fill := lampOff
	if lit {
		fill = c
	}
	vector.FillRect(screen, x, y, 10, 10, fill, false)
	vector.StrokeRect(screen, x, y, 10, 10, 1, c, false)
}

func (w *Window) Layout(_, _ int) (int, int) {
	return display.Width * w.scale, display.Height*w.scale + barHeight
}

// Paint expands a panel snapshot into RGBA pixels.
func Paint(dst []byte, frame *[display.BufferLen]byte, on bool) {
	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			c := offPixel
			if on && display.SnapshotPixel(frame, x, y) {
				c = litPixel
			}
			i := (y*display.Width + x) * 4
			dst[i], dst[i+1], dst[i+2], dst[i+3] = c.R, c.G, c.B, c.A
		}
	}
}
