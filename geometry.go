package img2ascii

import "github.com/wbrown/img2ascii/stamps"

// Geometry is the output grid derived from a source image size and a column
// count.
type Geometry struct {
	Cols, Rows  int
	PixelWidth  int
	PixelHeight int
	Scale       float64
}

// ComputeGeometry scales the source so that cols cells of stamps.CellWidth
// span its width, keeping the aspect ratio, and fits as many whole rows of
// stamps.CellHeight as the scaled height allows. The arithmetic order is
// fixed so outputs are reproducible bit for bit.
func ComputeGeometry(srcWidth, srcHeight, cols int) Geometry {
	pixelWidth := cols * stamps.CellWidth
	scale := float64(pixelWidth) / float64(srcWidth)
	pixelHeight := int(float64(srcHeight) * scale)
	return Geometry{
		Cols:        cols,
		Rows:        pixelHeight / stamps.CellHeight,
		PixelWidth:  pixelWidth,
		PixelHeight: pixelHeight,
		Scale:       scale,
	}
}

// ResampledSize is the size the source is resampled to. The extra pixel in
// each direction keeps every cell inside the image when Rows was rounded
// down.
func (g Geometry) ResampledSize() (width, height int) {
	return g.PixelWidth + 1, g.PixelHeight + 1
}

// Cells returns the number of characters a conversion emits, excluding row
// terminators.
func (g Geometry) Cells() int {
	return g.Rows * g.Cols
}
