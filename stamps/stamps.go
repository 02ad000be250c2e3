// Package stamps holds the glyph appearance atlas used to match image cells
// against printable ASCII characters. The atlas is a dense table of
// pre-rendered RGB stamps, one CellWidth x CellHeight bitmap per character
// per background/foreground palette pair.
package stamps

const (
	// FirstChar is the character code of stamp index 0 (space).
	FirstChar = 32
	// CharCount is the number of printable ASCII characters, 32 through 126.
	CharCount = 95
	// BGCount and FGCount are the number of background and foreground
	// palette entries a stamp can be rendered with.
	BGCount = 16
	FGCount = 16
	// CellWidth and CellHeight define the pixel size of every stamp. The
	// embedded asset must be regenerated when these change.
	CellWidth  = 10
	CellHeight = 20
	// Channels is the number of bytes per stamp pixel (R, G, B).
	Channels = 3

	columnSelector = Channels
	rowSelector    = columnSelector * CellWidth
	fgSelector     = rowSelector * CellHeight
	bgSelector     = fgSelector * FGCount
	charSelector   = bgSelector * BGCount

	// Size is the length in bytes of a complete decompressed atlas.
	Size = charSelector * CharCount
)

// Color is a single stamp pixel.
type Color struct {
	R, G, B uint8
}

// Offset returns the byte offset of the stamp pixel at (y, x) for the given
// character, background and foreground indices. The second return value is
// false if any coordinate is outside its declared range.
func Offset(char, bg, fg, y, x int) (int, bool) {
	if char < 0 || char >= CharCount ||
		bg < 0 || bg >= BGCount ||
		fg < 0 || fg >= FGCount ||
		y < 0 || y >= CellHeight ||
		x < 0 || x >= CellWidth {
		return 0, false
	}
	return char*charSelector +
		bg*bgSelector +
		fg*fgSelector +
		y*rowSelector +
		x*columnSelector, true
}

// Atlas is a read-only view over a decompressed stamp table. The zero value
// is an empty atlas on which every lookup misses.
type Atlas struct {
	data []byte
}

// New wraps buf as an atlas. The atlas takes ownership of buf; callers must
// not modify it afterwards. A buffer shorter than Size is accepted and
// lookups past its end report no value.
func New(buf []byte) *Atlas {
	return &Atlas{data: buf}
}

// Len returns the number of bytes backing the atlas.
func (a *Atlas) Len() int {
	return len(a.data)
}

// Lookup returns the stamp color at (y, x) of character char rendered with
// background bg and foreground fg. It reports false when a coordinate is out
// of range or the addressed bytes lie past the end of the buffer.
func (a *Atlas) Lookup(char, bg, fg, y, x int) (Color, bool) {
	index, ok := Offset(char, bg, fg, y, x)
	if !ok || index+Channels > len(a.data) {
		return Color{}, false
	}
	return Color{
		R: a.data[index],
		G: a.data[index+1],
		B: a.data[index+2],
	}, true
}
