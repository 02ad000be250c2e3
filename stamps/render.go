package stamps

import (
	"image"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// RasterOptions controls how Rasterize renders a font into stamps.
type RasterOptions struct {
	// Size is the font size in pixels (points at 72 DPI). Zero means 16,
	// which fits a typical monospace advance into CellWidth.
	Size float64
	// Palette supplies the background and foreground colors. The zero
	// value means ANSI16.
	Palette *Palette
}

// Rasterize renders the printable ASCII range of ttfFont into a complete
// stamp table of Size bytes, laid out the way Offset addresses it.
//
// Each glyph is drawn once into a CellWidth x CellHeight alpha image,
// horizontally centered on its advance and vertically placed on a baseline
// derived from the font's ascent and descent. The anti-aliased coverage is
// then blended between every background/foreground pair of the palette, so
// the stamp for (bg, fg) looks like the glyph as a terminal would show it.
func Rasterize(ttfFont *truetype.Font, opts RasterOptions) []byte {
	size := opts.Size
	if size <= 0 {
		size = 16
	}
	palette := &ANSI16
	if opts.Palette != nil {
		palette = opts.Palette
	}

	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	metrics := face.Metrics()
	ascent := metrics.Ascent.Round()
	descent := metrics.Descent.Round()
	baselineY := (CellHeight + ascent - descent) / 2

	buf := make([]byte, Size)
	for char := 0; char < CharCount; char++ {
		r := rune(FirstChar + char)
		coverage := renderCoverage(ttfFont, face, size, r, baselineY)
		for bg := 0; bg < BGCount; bg++ {
			for fg := 0; fg < FGCount; fg++ {
				for y := 0; y < CellHeight; y++ {
					for x := 0; x < CellWidth; x++ {
						c := blend(palette[bg], palette[fg], coverage.AlphaAt(x, y).A)
						index, _ := Offset(char, bg, fg, y, x)
						buf[index] = c.R
						buf[index+1] = c.G
						buf[index+2] = c.B
					}
				}
			}
		}
	}
	return buf
}

// renderCoverage draws r into a cell-sized alpha image.
func renderCoverage(
	ttfFont *truetype.Font,
	face font.Face,
	size float64,
	r rune,
	baselineY int,
) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, CellWidth, CellHeight))
	if r == ' ' {
		return img
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttfFont)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	var originX fixed.Int26_6
	if advance, ok := face.GlyphAdvance(r); ok && advance < fixed.I(CellWidth) {
		originX = (fixed.I(CellWidth) - advance) / 2
	}
	pt := fixed.Point26_6{X: originX, Y: fixed.I(baselineY)}
	if _, err := ctx.DrawString(string(r), pt); err != nil {
		// A glyph the font cannot draw stays blank, like a space.
		return image.NewAlpha(img.Bounds())
	}
	return img
}
