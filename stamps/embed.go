package stamps

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Embedded stamp table.
// To regenerate it:
// 1. Run: go run ./cmd/compute_stamps -font yourfont.ttf -output stamps/stampdata/stamps.bin.gz
// 2. Rebuild; the new table is picked up on the next Default call.
//
//go:embed stampdata/stamps.bin.gz
var stampFS embed.FS

const defaultAsset = "stampdata/stamps.bin.gz"

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

var loadDefault = sync.OnceValues(func() (*Atlas, error) {
	data, err := stampFS.ReadFile(defaultAsset)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded stamps: %w", err)
	}
	atlas, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("embedded stamps %s: %w", defaultAsset, err)
	}
	return atlas, nil
})

// Default returns the atlas decompressed from the embedded asset. The asset
// is decompressed once, on first use; every later call returns the same
// handle, or the same error if the asset is corrupt.
func Default() (*Atlas, error) {
	return loadDefault()
}

// MustDefault is like Default but panics if the embedded asset cannot be
// decompressed. Nothing can be converted without it.
func MustDefault() *Atlas {
	atlas, err := Default()
	if err != nil {
		panic(err)
	}
	return atlas
}

// Load decompresses a gzip or zstd compressed stamp table.
func Load(data []byte) (*Atlas, error) {
	buf, err := Decompress(data)
	if err != nil {
		return nil, err
	}
	return New(buf), nil
}

// Decompress inflates data, choosing the codec from its magic bytes.
func Decompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gr.Close()
		buf, err := io.ReadAll(gr)
		if err != nil {
			return nil, fmt.Errorf("failed to inflate gzip stamps: %w", err)
		}
		return buf, nil
	case bytes.HasPrefix(data, zstdMagic):
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer dec.Close()
		buf, err := dec.DecodeAll(data, make([]byte, 0, Size))
		if err != nil {
			return nil, fmt.Errorf("failed to inflate zstd stamps: %w", err)
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("unrecognized stamp container (%d bytes)", len(data))
	}
}
