package display

import "math"

// PolarPoint returns the pixel at distance r from (cx, cy) along angle deg,
// measured counter-clockwise from the positive x axis with y pointing down
// the screen.
func PolarPoint(cx, cy int, r, deg float64) (int, int) {
	rad := deg * math.Pi / 180
	x := float64(cx) + r*math.Cos(rad)
	y := float64(cy) - r*math.Sin(rad)
	return int(math.Round(x)), int(math.Round(y))
}
