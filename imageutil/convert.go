package imageutil

import (
	"github.com/disintegration/gift"
)

// Flatten makes every pixel of img opaque in place. RGBAImage stores
// premultiplied color, so the visible result is the image composited over
// black.
func Flatten(img *RGBAImage) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}

// Invert returns a copy of img with every color channel replaced by its
// ones' complement (255 - v). Alpha is preserved; callers that need the
// exact per-channel complement should Flatten first, since translucent
// pixels are inverted in straight-alpha space.
func Invert(img *RGBAImage) *RGBAImage {
	g := gift.New(gift.Invert())
	dst := NewRGBAImage(img.Width(), img.Height())
	g.Draw(dst.RGBA, img.RGBA)
	return dst
}
