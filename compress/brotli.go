package compress

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
)

// DecompressBrotli decodes a Brotli stream into at most expectedSize bytes.
// The bundle parser does not call it, and nothing gates it on
// version.FeatureBrotli.
func DecompressBrotli(input []byte, expectedSize int) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(input))
	out := make([]byte, expectedSize)
	n, err := io.ReadFull(r, out)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, &DecompressionFailedError{Codec: Brotli, Cause: err}
	}
	return out[:n], nil
}
