package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/img2ascii/stamps"
	"golang.org/x/image/font/gofont/gomono"
)

// loadFont parses a TrueType font from path, or returns Go Mono when path
// is empty.
func loadFont(path string) (*truetype.Font, string, error) {
	if path == "" {
		f, err := freetype.ParseFont(gomono.TTF)
		return f, "Go Mono (embedded)", err
	}
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	f, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// formatFor picks the container from the output file name.
func formatFor(path string) stamps.Format {
	if strings.HasSuffix(strings.ToLower(path), ".zst") {
		return stamps.FormatZstd
	}
	return stamps.FormatGzip
}

// writeStamps encodes buf to path, removing the partial file on failure.
func writeStamps(path string, buf []byte, f stamps.Format) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := stamps.Encode(out, buf, f); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}

func main() {
	fontPath := flag.String("font", "",
		"Path to a TrueType font (default: embedded Go Mono)")
	size := flag.Float64("size", 16,
		"Font size in pixels")
	outputFile := flag.String("output", "",
		"Path to save the compressed stamp table (required, .zst selects zstd)")
	flag.Parse()

	if *outputFile == "" {
		fmt.Println("Please provide the destination using the -output flag")
		flag.PrintDefaults()
		os.Exit(1)
	}

	ttf, name, err := loadFont(*fontPath)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	log.Printf("Rasterizing %d glyphs of %s at %gpx into %dx%d cells",
		stamps.CharCount, name, *size, stamps.CellWidth, stamps.CellHeight)

	buf := stamps.Rasterize(ttf, stamps.RasterOptions{Size: *size})
	if len(buf) != stamps.Size {
		log.Fatalf("Stamp table has %d bytes, expected %d", len(buf), stamps.Size)
	}

	// Round trip through the loader so a bad file is never written silently.
	format := formatFor(*outputFile)
	if err := writeStamps(*outputFile, buf, format); err != nil {
		log.Fatalf("Failed to save stamps: %v", err)
	}
	data, err := os.ReadFile(*outputFile)
	if err != nil {
		log.Fatalf("Failed to read back %s: %v", *outputFile, err)
	}
	atlas, err := stamps.Load(data)
	if err != nil {
		log.Fatalf("Saved stamps do not load: %v", err)
	}
	if atlas.Len() != stamps.Size {
		log.Fatalf("Saved stamps decompress to %d bytes, expected %d",
			atlas.Len(), stamps.Size)
	}

	log.Printf("Saved stamps to %s (%.2f KB compressed, %.2f MB raw)",
		*outputFile, float64(len(data))/1024, float64(stamps.Size)/(1024*1024))
	if format == stamps.FormatGzip {
		log.Printf("Copy to stamps/stampdata/stamps.bin.gz to embed it")
	}
}
