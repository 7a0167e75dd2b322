package arcade

import "github.com/Garsondee/pico-arcade/internal/display"

// arrowGlyphs are indexed by Direction.
var arrowGlyphs = [4]display.Glyph{
	Left: display.CompileGlyph(
		"...#....",
		"..##....",
		".#######",
		"########",
		".#######",
		"..##....",
		"...#....",
	),
	Up: display.CompileGlyph(
		"...#...",
		"..###..",
		".#####.",
		"#######",
		"..###..",
		"..###..",
		"..###..",
	),
	Right: display.CompileGlyph(
		"....#...",
		"....##..",
		"#######.",
		"########",
		"#######.",
		"....##..",
		"....#...",
	),
	Down: display.CompileGlyph(
		"..###..",
		"..###..",
		"..###..",
		"#######",
		".#####.",
		"..###..",
		"...#...",
	),
}

// ArrowGlyph returns the sprite for d.
func ArrowGlyph(d Direction) display.Glyph {
	return arrowGlyphs[d&3]
}
