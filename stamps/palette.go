package stamps

import "image/color"

// Palette is the set of colors stamps are rendered with. Background and
// foreground indices in the atlas refer to entries of the palette that was
// used to generate it.
type Palette [BGCount]Color

// ANSI16 is the 16 color VGA palette in ANSI order. The atlas embedded in
// this package was rendered with it.
var ANSI16 = Palette{
	{0, 0, 0},       // 0: black
	{170, 0, 0},     // 1: red
	{0, 170, 0},     // 2: green
	{170, 85, 0},    // 3: brown
	{0, 0, 170},     // 4: blue
	{170, 0, 170},   // 5: magenta
	{0, 170, 170},   // 6: cyan
	{170, 170, 170}, // 7: light grey
	{85, 85, 85},    // 8: dark grey
	{255, 85, 85},   // 9: bright red
	{85, 255, 85},   // 10: bright green
	{255, 255, 85},  // 11: yellow
	{85, 85, 255},   // 12: bright blue
	{255, 85, 255},  // 13: bright magenta
	{85, 255, 255},  // 14: bright cyan
	{255, 255, 255}, // 15: white
}

// ToColor converts c to an opaque color.RGBA.
func (c Color) ToColor() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// blend mixes bg and fg by coverage, where 0 is pure background and 255 is
// pure foreground.
func blend(bg, fg Color, coverage uint8) Color {
	mix := func(b, f uint8) uint8 {
		a := int(coverage)
		return uint8((int(b)*(255-a) + int(f)*a + 127) / 255)
	}
	return Color{
		R: mix(bg.R, fg.R),
		G: mix(bg.G, fg.G),
		B: mix(bg.B, fg.B),
	}
}
