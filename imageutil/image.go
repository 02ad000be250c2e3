// Package imageutil provides the pixel-buffer side of the converter:
// decoding, resampling and per-pixel adjustments on RGBA images.
package imageutil

import (
	"image"
	"image/color"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to color.RGBA for use with standard library.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Opaque copies img into a new RGBAImage whose bounds start at the origin.
// Alpha is dropped: every pixel keeps the color channels it stores in
// straight (non-premultiplied) form and becomes fully opaque, so a
// transparent pixel that stores white comes out white. img is not modified.
func Opaque(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	dst := NewRGBAImage(bounds.Dx(), bounds.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		rowLen := 4 * bounds.Dx()
		for y := 0; y < bounds.Dy(); y++ {
			row := dst.Pix[dst.PixOffset(0, y):][:rowLen]
			copy(row, src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):][:rowLen])
			for i := 3; i < rowLen; i += 4 {
				row[i] = 0xff
			}
		}
		return dst
	}

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			dst.SetRGB(x, y, straightRGB(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return dst
}

// straightRGB returns the stored color channels of c. Straight-alpha
// colors are read directly; anything else goes through color.NRGBAModel,
// which can only recover what premultiplication left.
func straightRGB(c color.Color) RGB {
	switch c := c.(type) {
	case color.NRGBA:
		return RGB{R: c.R, G: c.G, B: c.B}
	case color.NRGBA64:
		return RGB{R: uint8(c.R >> 8), G: uint8(c.G >> 8), B: uint8(c.B >> 8)}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// SetRGB sets the RGB value at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
}
