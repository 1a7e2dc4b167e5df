package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse, matching
// arloliu/mebo/compress/lz4.go (the lz4.Compressor carries reusable
// internal state).
var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// decompressLZ4 decodes a raw LZ4 block (not the LZ4 frame format) into
// exactly expectedSize bytes, per spec §4.2 ("must yield exactly expected
// bytes"), using lz4.UncompressBlock the same way mebo's LZ4Compressor does.
func decompressLZ4(input []byte, expectedSize int) ([]byte, error) {
	dst := make([]byte, expectedSize)
	n, err := lz4.UncompressBlock(input, dst)
	if err != nil {
		return nil, &DecompressionFailedError{Codec: LZ4, Cause: err}
	}
	if n != expectedSize {
		return nil, &DecompressionFailedError{Codec: LZ4,
			Cause: errShortOutput(n, expectedSize)}
	}
	return dst, nil
}

// CompressLZ4Block compresses data into the LZ4 block format, for the
// TypeTree/bundle encoder side. Mirrors mebo's pooled-compressor approach.
func CompressLZ4Block(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	c, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(c)

	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Incompressible input: lz4 signals this by returning n == 0.
		return data, nil
	}
	return dst[:n], nil
}

type shortOutputError struct{ got, want int }

func (e *shortOutputError) Error() string {
	return fmt.Sprintf("lz4: decompressed %d bytes, expected %d", e.got, e.want)
}

func errShortOutput(got, want int) error { return &shortOutputError{got, want} }
