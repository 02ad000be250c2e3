package stamps

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Format selects the container Encode writes.
type Format int

const (
	// FormatGzip is the format of the embedded asset.
	FormatGzip Format = iota
	// FormatZstd trades slightly slower generation for a smaller file.
	FormatZstd
)

// Encode compresses a stamp table to w. Decompress reads either format back.
func Encode(w io.Writer, buf []byte, f Format) error {
	switch f {
	case FormatGzip:
		gz, err := gzip.NewWriterLevel(w, gzip.BestCompression)
		if err != nil {
			return fmt.Errorf("failed to create gzip writer: %w", err)
		}
		if _, err := gz.Write(buf); err != nil {
			gz.Close()
			return fmt.Errorf("failed to encode stamps: %w", err)
		}
		if err := gz.Close(); err != nil {
			return fmt.Errorf("failed to close gzip: %w", err)
		}
		return nil
	case FormatZstd:
		enc, err := zstd.NewWriter(w,
			zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
		if _, err := enc.Write(buf); err != nil {
			enc.Close()
			return fmt.Errorf("failed to encode stamps: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to close zstd: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown stamp format %d", f)
	}
}
