package display

// Glyph is an 8×8 cell stored column by column: byte i is column i, bit j is
// row j. This matches the page layout, so a glyph on a page boundary is a
// straight copy.
type Glyph [8]byte

// CompileGlyph builds a Glyph from up to eight rows of '#' (lit) and any other
// rune (unlit). Rows longer than eight pixels are truncated.
func CompileGlyph(rows ...string) Glyph {
	var g Glyph
	for y, row := range rows {
		if y >= glyphSize {
			break
		}
		for x := 0; x < len(row) && x < glyphSize; x++ {
			if row[x] == '#' {
				g[x] |= 1 << uint(y)
			}
		}
	}
	return g
}

// Glyph slots: 0 is blank, 1..26 letters, 27..36 digits, then '!' and '-'.
const (
	glyphBlank  = 0
	glyphLetter = 1
	glyphDigit  = 27
	glyphBang   = 37
	glyphDash   = 38
	glyphCount  = 39
)

var font [glyphCount]Glyph

// 5×7 shapes drawn one column in from the left edge of the cell.
var fontRows = [glyphCount][7]string{
	{},
	{".###.", "#...#", "#...#", "#####", "#...#", "#...#", "#...#"},
	{"####.", "#...#", "#...#", "####.", "#...#", "#...#", "####."},
	{".###.", "#...#", "#....", "#....", "#....", "#...#", ".###."},
	{"####.", "#...#", "#...#", "#...#", "#...#", "#...#", "####."},
	{"#####", "#....", "#....", "####.", "#....", "#....", "#####"},
	{"#####", "#....", "#....", "####.", "#....", "#....", "#...."},
	{".###.", "#...#", "#....", "#.###", "#...#", "#...#", ".###."},
	{"#...#", "#...#", "#...#", "#####", "#...#", "#...#", "#...#"},
	{".###.", "..#..", "..#..", "..#..", "..#..", "..#..", ".###."},
	{"..###", "...#.", "...#.", "...#.", "...#.", "#..#.", ".##.."},
	{"#...#", "#..#.", "#.#..", "##...", "#.#..", "#..#.", "#...#"},
	{"#....", "#....", "#....", "#....", "#....", "#....", "#####"},
	{"#...#", "##.##", "#.#.#", "#.#.#", "#...#", "#...#", "#...#"},
	{"#...#", "#...#", "##..#", "#.#.#", "#..##", "#...#", "#...#"},
	{".###.", "#...#", "#...#", "#...#", "#...#", "#...#", ".###."},
	{"####.", "#...#", "#...#", "####.", "#....", "#....", "#...."},
	{".###.", "#...#", "#...#", "#...#", "#.#.#", "#..#.", ".##.#"},
	{"####.", "#...#", "#...#", "####.", "#.#..", "#..#.", "#...#"},
	{".####", "#....", "#....", ".###.", "....#", "....#", "####."},
	{"#####", "..#..", "..#..", "..#..", "..#..", "..#..", "..#.."},
	{"#...#", "#...#", "#...#", "#...#", "#...#", "#...#", ".###."},
	{"#...#", "#...#", "#...#", "#...#", "#...#", ".#.#.", "..#.."},
	{"#...#", "#...#", "#...#", "#.#.#", "#.#.#", "#.#.#", ".#.#."},
	{"#...#", "#...#", ".#.#.", "..#..", ".#.#.", "#...#", "#...#"},
	{"#...#", "#...#", ".#.#.", "..#..", "..#..", "..#..", "..#.."},
	{"#####", "....#", "...#.", "..#..", ".#...", "#....", "#####"},
	{".###.", "#...#", "#..##", "#.#.#", "##..#", "#...#", ".###."},
	{"..#..", ".##..", "..#..", "..#..", "..#..", "..#..", ".###."},
	{".###.", "#...#", "....#", "...#.", "..#..", ".#...", "#####"},
	{"#####", "...#.", "..#..", "...#.", "....#", "#...#", ".###."},
	{"...#.", "..##.", ".#.#.", "#..#.", "#####", "...#.", "...#."},
	{"#####", "#....", "####.", "....#", "....#", "#...#", ".###."},
	{"..##.", ".#...", "#....", "####.", "#...#", "#...#", ".###."},
	{"#####", "....#", "...#.", "..#..", ".#...", ".#...", ".#..."},
	{".###.", "#...#", "#...#", ".###.", "#...#", "#...#", ".###."},
	{".###.", "#...#", "#...#", ".####", "....#", "...#.", ".##.."},
	{"..#..", "..#..", "..#..", "..#..", "..#..", ".....", "..#.."},
	{".....", ".....", ".....", "#####", ".....", ".....", "....."},
}

func init() {
	for i, rows := range fontRows {
		var padded [7]string
		for y, r := range rows {
			if r != "" {
				padded[y] = "." + r
			}
		}
		font[i] = CompileGlyph(padded[:]...)
	}
}

func glyphIndex(c byte) int {
	switch {
	case c >= 'A' && c <= 'Z':
		return glyphLetter + int(c-'A')
	case c >= 'a' && c <= 'z':
		return glyphLetter + int(c-'a')
	case c >= '0' && c <= '9':
		return glyphDigit + int(c-'0')
	case c == '!':
		return glyphBang
	case c == '-':
		return glyphDash
	}
	return glyphBlank
}

func glyphFor(c byte) Glyph {
	return font[glyphIndex(c)]
}
