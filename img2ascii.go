// Package img2ascii converts raster images into monospaced ASCII art. The
// image is resampled so that every character cell covers exactly one
// stamps.CellWidth x stamps.CellHeight block of pixels, and each block is
// replaced by the printable character whose pre-rendered stamp is closest to
// it in RGB.
package img2ascii

import (
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"sync"

	"github.com/wbrown/img2ascii/imageutil"
	"github.com/wbrown/img2ascii/stamps"
)

const (
	// BackgroundIndex and ForegroundIndex select the palette pair whose
	// stamps every cell is matched against: light grey on black.
	BackgroundIndex = 0
	ForegroundIndex = 7

	progressInterval = 10
)

// Converter turns images into characters. A Converter holds no per-call
// state and may be shared between goroutines.
type Converter struct {
	atlas  *stamps.Atlas
	interp imageutil.Interpolation
	logger *log.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithAtlas matches against atlas instead of the embedded stamp table.
func WithAtlas(atlas *stamps.Atlas) Option {
	return func(c *Converter) {
		c.atlas = atlas
	}
}

// WithLogger reports geometry and progress to logger. By default nothing is
// logged.
func WithLogger(logger *log.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithInterpolation replaces the Lanczos3 resampler. Output changes with
// the resampler, so reproducible results require pinning it.
func WithInterpolation(interp imageutil.Interpolation) Option {
	return func(c *Converter) {
		c.interp = interp
	}
}

// NewConverter returns a Converter. Without WithAtlas it uses
// stamps.Default, and fails if the embedded table cannot be decompressed.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		interp: imageutil.InterpolationLanczos3,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.atlas == nil {
		atlas, err := stamps.Default()
		if err != nil {
			return nil, err
		}
		c.atlas = atlas
	}
	return c, nil
}

var defaultConverter = sync.OnceValues(func() (*Converter, error) {
	return NewConverter()
})

// Convert decodes data and converts it with the default Converter.
func Convert(data []byte, cols int, invert bool, sink Sink) error {
	c, err := defaultConverter()
	if err != nil {
		return err
	}
	return c.Convert(data, cols, invert, sink)
}

// Convert decodes an encoded image and streams cols characters per row to
// sink, each row followed by RowTerminator. If invert is set, colors are
// complemented after resampling and before matching.
func (c *Converter) Convert(data []byte, cols int, invert bool, sink Sink) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty image data", ErrInvalidInput)
	}
	if cols <= 0 {
		return fmt.Errorf("%w: cols must be greater than 0, got %d",
			ErrInvalidInput, cols)
	}

	img, format, err := imageutil.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	c.logger.Printf("Decoded %s image: %dx%d", format, img.Width(), img.Height())

	return c.convert(img, cols, invert, sink)
}

// ConvertImage is Convert for an image that is already decoded. Alpha is
// ignored: pixels are matched by the color they store, as imageutil.Opaque
// reads it. img is not modified.
func (c *Converter) ConvertImage(img image.Image, cols int, invert bool, sink Sink) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	if cols <= 0 {
		return fmt.Errorf("%w: cols must be greater than 0, got %d",
			ErrInvalidInput, cols)
	}
	return c.convert(imageutil.Opaque(img), cols, invert, sink)
}

// ConvertToString converts data and returns the whole output.
func (c *Converter) ConvertToString(data []byte, cols int, invert bool) (string, error) {
	var sink StringSink
	if err := c.Convert(data, cols, invert, &sink); err != nil {
		return "", err
	}
	return sink.String(), nil
}

// Preview renders text produced by this converter with its own stamps.
func (c *Converter) Preview(text string) (*image.RGBA, error) {
	return RenderPreview(text, c.atlas)
}

func (c *Converter) convert(
	src *imageutil.RGBAImage,
	cols int,
	invert bool,
	sink Sink,
) (err error) {
	if src.Width() == 0 || src.Height() == 0 {
		return fmt.Errorf("%w: image has no pixels (%dx%d)",
			ErrInvalidInput, src.Width(), src.Height())
	}
	if f, ok := sink.(flusher); ok {
		defer func() {
			if ferr := f.Flush(); ferr != nil && err == nil {
				err = fmt.Errorf("%w: %w", ErrSinkFailed, ferr)
			}
		}()
	}

	geom := ComputeGeometry(src.Width(), src.Height(), cols)
	width, height := geom.ResampledSize()
	c.logger.Printf("Target cell dimensions: %dx%d cells", geom.Cols, geom.Rows)
	c.logger.Printf("Target pixel dimensions: %dx%d pixels (scale %g)",
		geom.PixelWidth, geom.PixelHeight, geom.Scale)

	resized := imageutil.Resize(src, width, height, c.interp)
	// The source is already opaque; resampling must not reintroduce alpha.
	imageutil.Flatten(resized)
	if invert {
		resized = imageutil.Invert(resized)
	}

	if geom.Cells() == 0 {
		c.logger.Printf("Image too short for a single row, nothing to emit")
		return nil
	}
	table, err := c.loadStamps()
	if err != nil {
		return err
	}

	for row := 0; row < geom.Rows; row++ {
		for col := 0; col < geom.Cols; col++ {
			best, err := table.match(resized, row, col)
			if err != nil {
				return err
			}
			if err := sink.WriteChar(byte(stamps.FirstChar + best)); err != nil {
				return fmt.Errorf("%w: cell (%d, %d): %w", ErrSinkFailed, col, row, err)
			}
		}
		if err := sink.WriteChar(RowTerminator); err != nil {
			return fmt.Errorf("%w: end of row %d: %w", ErrSinkFailed, row, err)
		}
		if row%progressInterval == 0 {
			c.logger.Printf("Processed %d of %d rows", row+1, geom.Rows)
		}
	}
	c.logger.Printf("Conversion completed: %d cells", geom.Cells())
	return nil
}

// stampTable holds the normalized (BackgroundIndex, ForegroundIndex) stamp
// of every candidate, indexed [candidate][x][y].
type stampTable [stamps.CharCount][stamps.CellWidth][stamps.CellHeight][3]float32

// loadStamps reads the fixed-pair stamps out of the atlas. Every lookup
// must resolve; a miss means the atlas does not match the cell constants.
func (c *Converter) loadStamps() (*stampTable, error) {
	table := new(stampTable)
	for candidate := range table {
		for x := 0; x < stamps.CellWidth; x++ {
			for y := 0; y < stamps.CellHeight; y++ {
				color, ok := c.atlas.Lookup(candidate,
					BackgroundIndex, ForegroundIndex, y, x)
				if !ok {
					return nil, &InvariantError{
						Row:       -1,
						Col:       -1,
						Candidate: candidate,
						Reason: fmt.Sprintf(
							"no stamp for pair (%d, %d) at pixel (%d, %d), atlas has %d of %d bytes",
							BackgroundIndex, ForegroundIndex, x, y,
							c.atlas.Len(), stamps.Size),
					}
				}
				table[candidate][x][y] = [3]float32{
					float32(color.R) / 255,
					float32(color.G) / 255,
					float32(color.B) / 255,
				}
			}
		}
	}
	return table, nil
}

// match returns the index of the candidate whose stamp has the smallest
// summed squared RGB distance to the cell at (row, col). Candidates are
// scanned in ascending order and only a strictly smaller score replaces
// the best, so ties go to the lower character code.
func (t *stampTable) match(img *imageutil.RGBAImage, row, col int) (int, error) {
	startX := col * stamps.CellWidth
	startY := row * stamps.CellHeight
	endX := startX + stamps.CellWidth
	endY := startY + stamps.CellHeight
	if endX > img.Width() || endY > img.Height() {
		return 0, &InvariantError{
			Row:       row,
			Col:       col,
			Candidate: -1,
			Reason: fmt.Sprintf("cell ends at (%d, %d), resampled image is %dx%d",
				endX, endY, img.Width(), img.Height()),
		}
	}

	var cell [stamps.CellWidth][stamps.CellHeight][3]float32
	for x := 0; x < stamps.CellWidth; x++ {
		for y := 0; y < stamps.CellHeight; y++ {
			p := img.RGBAAt(startX+x, startY+y)
			cell[x][y] = [3]float32{
				float32(p.R) / 255,
				float32(p.G) / 255,
				float32(p.B) / 255,
			}
		}
	}

	best := -1
	bestScore := float32(math.MaxFloat32)
	for candidate := range t {
		stamp := &t[candidate]
		var score float32
		for x := 0; x < stamps.CellWidth; x++ {
			for y := 0; y < stamps.CellHeight; y++ {
				p, s := &cell[x][y], &stamp[x][y]
				dr := p[0] - s[0]
				dg := p[1] - s[1]
				db := p[2] - s[2]
				// Explicit conversions forbid fused multiply-add, keeping
				// scores identical across architectures.
				score += float32(dr*dr) + float32(dg*dg) + float32(db*db)
			}
		}
		if score < bestScore {
			bestScore = score
			best = candidate
		}
	}
	if best < 0 {
		return 0, &InvariantError{
			Row:       row,
			Col:       col,
			Candidate: -1,
			Reason:    "no candidate selected",
		}
	}
	return best, nil
}
