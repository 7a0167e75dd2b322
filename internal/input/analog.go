package input

// DefaultScale maps a full half-range deflection to ±1.
const DefaultScale = 2048.0

// DefaultDeadZone swallows rest-point jitter of cheap joysticks.
const DefaultDeadZone = 0.03

// Axis is one calibrated analog channel. The first read captures the rest
// reading as the centre; later reads are offsets from it.
type Axis struct {
	src AnalogSource
	ch  int

	Scale    float64
	DeadZone float64

	center     uint16
	calibrated bool
	raw        uint16
}

// NewAxis binds an axis to an analog channel.
func NewAxis(src AnalogSource, ch int) *Axis {
	return &Axis{src: src, ch: ch, Scale: DefaultScale, DeadZone: DefaultDeadZone}
}

// Calibrate captures the current reading as the rest point.
func (a *Axis) Calibrate() {
	a.center = a.src.Sample(a.ch)
	a.raw = a.center
	a.calibrated = true
}

// Center returns the calibrated rest reading.
func (a *Axis) Center() uint16 { return a.center }

// Raw returns the most recent sample.
func (a *Axis) Raw() uint16 { return a.raw }

// Offset samples the channel and returns the normalised deflection in
// [-1, 1]. Deflections inside the dead zone read as zero.
func (a *Axis) Offset() float64 {
	if !a.calibrated {
		a.Calibrate()
	}
	a.raw = a.src.Sample(a.ch)
	scale := a.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	v := (float64(a.raw) - float64(a.center)) / scale
	if v > -a.DeadZone && v < a.DeadZone {
		return 0
	}
	return max(-1, min(1, v))
}

// Read samples the channel and returns the raw reading, uncalibrated.
func (a *Axis) Read() uint16 {
	a.raw = min(a.src.Sample(a.ch), AnalogMax)
	return a.raw
}

// Percent samples the channel as an absolute position, 0..100.
func (a *Axis) Percent() int {
	return Percent(a.Read())
}

// Percent maps a raw 0..4095 reading to 0..100, clamping larger readings.
func Percent(raw uint16) int {
	raw = min(raw, AnalogMax)
	return int(raw) * 100 / int(AnalogMax)
}

// Bounds is an inclusive rectangle the cursor is confined to.
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Clamp confines a point to the bounds.
func (b Bounds) Clamp(x, y int) (int, int) {
	return max(b.MinX, min(b.MaxX, x)), max(b.MinY, min(b.MaxY, y))
}

// Cursor is a velocity-mode pointer: each tick the stick deflection is
// scaled by Speed and added to the position, which is then clamped. A
// drifting rest point cannot walk the cursor because the axes cancel it at
// calibration.
type Cursor struct {
	X, Y   int
	Speed  float64
	bounds Bounds
}

// NewCursor returns a cursor centred in bounds.
func NewCursor(bounds Bounds, speed float64) *Cursor {
	c := &Cursor{Speed: speed, bounds: bounds}
	c.Center()
	return c
}

// Center moves the cursor to the middle of its bounds.
func (c *Cursor) Center() {
	c.X = (c.bounds.MinX + c.bounds.MaxX + 1) / 2
	c.Y = (c.bounds.MinY + c.bounds.MaxY + 1) / 2
}

// Bounds returns the clamp rectangle.
func (c *Cursor) Bounds() Bounds { return c.bounds }

// Step integrates one tick of stick deflection.
func (c *Cursor) Step(jx, jy float64) {
	c.X += int(jx * c.Speed)
	c.Y += int(jy * c.Speed)
	c.X, c.Y = c.bounds.Clamp(c.X, c.Y)
}

// Follow samples both axes and steps the cursor.
func (c *Cursor) Follow(x, y *Axis) {
	c.Step(x.Offset(), y.Offset())
}
