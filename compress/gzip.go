package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// decompressGZip decodes a GZIP stream into at most expectedSize bytes,
// using klauspost/compress's faster drop-in gzip reader (the same module
// arloliu/mebo already depends on). The bundle parser does not select
// this codec.
func decompressGZip(input []byte, expectedSize int) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, &DecompressionFailedError{Codec: GZip, Cause: err}
	}
	defer zr.Close()

	out := make([]byte, expectedSize)
	n, err := io.ReadFull(zr, out)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, &DecompressionFailedError{Codec: GZip, Cause: err}
	}
	return out[:n], nil
}
