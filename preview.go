package img2ascii

import (
	"fmt"
	"image"
	"strings"

	"github.com/wbrown/img2ascii/stamps"
)

// RenderPreview paints converted text back into pixels using the
// (BackgroundIndex, ForegroundIndex) stamps of atlas, one cell per
// character. Comparing the preview with the source shows what the matcher
// saw. Lines shorter than the longest are padded with background; a
// trailing row terminator does not add an empty row.
func RenderPreview(text string, atlas *stamps.Atlas) (*image.RGBA, error) {
	lines := strings.Split(strings.TrimSuffix(text, string(RowTerminator)),
		string(RowTerminator))
	if text == "" {
		lines = nil
	}

	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	img := image.NewRGBA(image.Rect(0, 0,
		width*stamps.CellWidth, len(lines)*stamps.CellHeight))

	for row, line := range lines {
		for col := 0; col < width; col++ {
			c := byte(' ')
			if col < len(line) {
				c = line[col]
			}
			if c < stamps.FirstChar || int(c) >= stamps.FirstChar+stamps.CharCount {
				return nil, fmt.Errorf("%w: character %q at (%d, %d) has no stamp",
					ErrInvalidInput, c, col, row)
			}
			if err := renderStamp(img, atlas, int(c)-stamps.FirstChar,
				col*stamps.CellWidth, row*stamps.CellHeight); err != nil {
				return nil, err
			}
		}
	}
	return img, nil
}

// renderStamp copies one stamp into img with its top left corner at
// (startX, startY).
func renderStamp(img *image.RGBA, atlas *stamps.Atlas, char, startX, startY int) error {
	for y := 0; y < stamps.CellHeight; y++ {
		for x := 0; x < stamps.CellWidth; x++ {
			c, ok := atlas.Lookup(char, BackgroundIndex, ForegroundIndex, y, x)
			if !ok {
				return &InvariantError{
					Row:       -1,
					Col:       -1,
					Candidate: char,
					Reason:    fmt.Sprintf("no stamp at pixel (%d, %d)", x, y),
				}
			}
			img.SetRGBA(startX+x, startY+y, c.ToColor())
		}
	}
	return nil
}
