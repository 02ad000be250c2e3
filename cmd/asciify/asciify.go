package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
	"github.com/wbrown/img2ascii/stamps"
	"golang.org/x/term"
)

const fallbackWidth = 80

// terminalWidth returns the column count of stdout when it is a terminal,
// and fallbackWidth otherwise.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

// buildOptions turns the command line into converter options.
func buildOptions(atlasPath, interp string, logger *log.Logger) ([]img2ascii.Option, error) {
	opts := []img2ascii.Option{img2ascii.WithLogger(logger)}

	method, ok := imageutil.ParseInterpolation(interp)
	if !ok {
		return nil, fmt.Errorf("invalid interpolation %q, options are "+
			"lanczos3, area, linear or nearest", interp)
	}
	opts = append(opts, img2ascii.WithInterpolation(method))

	if atlasPath != "" {
		data, err := os.ReadFile(atlasPath)
		if err != nil {
			return nil, fmt.Errorf("reading atlas: %w", err)
		}
		atlas, err := stamps.Load(data)
		if err != nil {
			return nil, fmt.Errorf("loading atlas %s: %w", atlasPath, err)
		}
		opts = append(opts, img2ascii.WithAtlas(atlas))
	}
	return opts, nil
}

// teeSink writes through to a WriterSink and keeps a copy of the text for
// the preview. Flush is promoted so the converter still flushes it.
type teeSink struct {
	*img2ascii.WriterSink
	text strings.Builder
}

func (s *teeSink) WriteChar(ch byte) error {
	s.text.WriteByte(ch)
	return s.WriterSink.WriteChar(ch)
}

// run converts input to out and optionally writes a PNG preview.
func run(c *img2ascii.Converter, input string, width int, invert bool,
	out io.Writer, previewPath string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	sink := &teeSink{WriterSink: img2ascii.NewWriterSink(out)}
	if err := c.Convert(data, width, invert, sink); err != nil {
		return err
	}
	if previewPath == "" {
		return nil
	}
	img, err := c.Preview(sink.text.String())
	if err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}
	return imageutil.SavePNG(img, previewPath)
}

// writeOutput calls write with stdout when path is empty, and otherwise
// with a newly created file that is closed before returning. A failed
// close is reported like a failed write.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

func main() {
	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputFile := flag.String("output", "",
		"Path to save the output (if not specified, prints to stdout)")
	targetWidth := flag.Int("width", 0,
		"Output width in characters (default: terminal width, or 80)")
	invert := flag.Bool("invert", false,
		"Invert colors before matching, for light backgrounds")
	previewFile := flag.String("preview", "",
		"Path to save a PNG rendering of the output")
	atlasFile := flag.String("atlas", "",
		"Path to a compressed stamp table (default: embedded)")
	interp := flag.String("interp", "lanczos3",
		"Resampling method: lanczos3, area, linear, or nearest")
	verbose := flag.Bool("v", false,
		"Log progress to stderr")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("Please provide the image using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}
	width := *targetWidth
	if width == 0 {
		width = terminalWidth()
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "asciify: ", log.LstdFlags)
	}

	begin := time.Now()
	opts, err := buildOptions(*atlasFile, *interp, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	converter, err := img2ascii.NewConverter(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading stamps: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("Initialization time: %v", time.Since(begin))

	begin = time.Now()
	err = writeOutput(*outputFile, func(out io.Writer) error {
		return run(converter, *inputFile, width, *invert, out, *previewFile)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting image: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("Computation time: %v", time.Since(begin))
}
