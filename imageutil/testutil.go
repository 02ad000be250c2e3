package imageutil

import "math"

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Clone creates a deep copy of the image.
func (img *RGBAImage) Clone() *RGBAImage {
	clone := NewRGBAImage(img.Width(), img.Height())
	copy(clone.Pix, img.Pix)
	return clone
}

// fillImage creates an opaque width x height image colored by at.
func fillImage(width, height int, at func(x, y int) RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, at(x, y))
		}
	}
	return img
}

func grey(v uint8) RGB {
	return RGB{R: v, G: v, B: v}
}

// CreateGradientImage creates a horizontal black to white ramp.
func CreateGradientImage(width, height int) *RGBAImage {
	span := max(width-1, 1)
	return fillImage(width, height, func(x, _ int) RGB {
		return grey(uint8(255 * x / span))
	})
}

// CreateCheckerboardImage alternates white and black squares of the given
// size, white at the origin.
func CreateCheckerboardImage(width, height, squareSize int) *RGBAImage {
	return fillImage(width, height, func(x, y int) RGB {
		if (x/squareSize+y/squareSize)%2 == 0 {
			return grey(255)
		}
		return grey(0)
	})
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	return fillImage(width, height, func(int, int) RGB { return c })
}

// colorBars runs from white through the primaries and secondaries to black.
var colorBars = [...]RGB{
	{255, 255, 255}, {255, 255, 0}, {0, 255, 255}, {0, 255, 0},
	{255, 0, 255}, {255, 0, 0}, {0, 0, 255}, {0, 0, 0},
}

// CreateColorBarsImage creates vertical bars of saturated colors.
func CreateColorBarsImage(width, height int) *RGBAImage {
	barWidth := max(width/len(colorBars), 1)
	return fillImage(width, height, func(x, _ int) RGB {
		return colorBars[min(x/barWidth, len(colorBars)-1)]
	})
}

// channelDiffs calls visit with the signed R, G and B differences of every
// pixel pair. It reports false when the sizes differ.
func channelDiffs(img1, img2 *RGBAImage, visit func(dr, dg, db int)) bool {
	if img1.Bounds().Size() != img2.Bounds().Size() {
		return false
	}
	for y := 0; y < img1.Height(); y++ {
		for x := 0; x < img1.Width(); x++ {
			c1, c2 := img1.RGBAAt(x, y), img2.RGBAAt(x, y)
			visit(int(c1.R)-int(c2.R), int(c1.G)-int(c2.G), int(c1.B)-int(c2.B))
		}
	}
	return true
}

// CalculateMSE returns the mean squared channel error between two images,
// or math.MaxFloat64 when their sizes differ.
func CalculateMSE(img1, img2 *RGBAImage) float64 {
	var sumSq float64
	same := channelDiffs(img1, img2, func(dr, dg, db int) {
		sumSq += float64(dr*dr + dg*dg + db*db)
	})
	if !same {
		return math.MaxFloat64
	}
	if n := img1.Width() * img1.Height() * 3; n > 0 {
		return sumSq / float64(n)
	}
	return 0
}

// CalculateMaxDiff returns the largest channel difference between two
// images, or 256 when their sizes differ.
func CalculateMaxDiff(img1, img2 *RGBAImage) int {
	maxDiff := 0
	same := channelDiffs(img1, img2, func(dr, dg, db int) {
		maxDiff = max(maxDiff, abs(dr), abs(dg), abs(db))
	})
	if !same {
		return 256
	}
	return maxDiff
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
