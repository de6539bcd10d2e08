package input

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// decompress decodes data when it starts with a known magic number and
// returns the codec name used, or "" when data was left untouched.
func decompress(data []byte) ([]byte, string, error) {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return nil, "", fmt.Errorf("zstd decoder init: %w", err)
		}
		defer decoder.Close()

		out, err := decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, "", fmt.Errorf("zstd: %w", err)
		}

		return out, "zstd", nil

	case bytes.HasPrefix(data, gzipMagic):
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()

		out, err := io.ReadAll(gz)
		if err != nil {
			return nil, "", fmt.Errorf("gzip: %w", err)
		}

		return out, "gzip", nil

	default:
		return data, "", nil
	}
}
