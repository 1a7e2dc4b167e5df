package compress

import (
	"bytes"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// lzmaAloneHeaderSize is the 5-byte properties + 8-byte uncompressed-size
// header Unity writes ahead of an LZMA1 stream, per spec §4.2/§6.
const lzmaAloneHeaderSize = 13

// decompressLZMA decodes an LZMA1 "alone" stream (5-byte properties + 8-byte
// uncompressed size header). Per spec §4.2 it tolerates trailing data and a
// declared-size mismatch, truncating or accepting a short result up to
// expectedSize; if the single-pass decode fails and the first 13 bytes look
// like a properties header, it retries against input[13:].
func decompressLZMA(input []byte, expectedSize int) ([]byte, error) {
	out, err := lzmaAloneDecode(input, expectedSize)
	if err == nil {
		return out, nil
	}

	if len(input) > lzmaAloneHeaderSize && looksLikeLZMAProps(input[:lzmaAloneHeaderSize]) {
		if out2, err2 := lzmaAloneDecode(input[lzmaAloneHeaderSize:], expectedSize); err2 == nil {
			return out2, nil
		}
	}

	return nil, &DecompressionFailedError{Codec: LZMA, Cause: err}
}

func lzmaAloneDecode(input []byte, expectedSize int) ([]byte, error) {
	r, err := lzma.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}

	buf := make([]byte, expectedSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}

	// Tolerate a short or long result: truncate/pad to the declared size,
	// per spec §4.2 ("tolerate trailing data and size mismatch").
	if n == expectedSize {
		return buf, nil
	}
	if n > expectedSize {
		return buf[:expectedSize], nil
	}
	return buf[:n], nil
}

// looksLikeLZMAProps performs a light sanity check on the 5-byte LZMA
// properties byte (lc/lp/pb packed into one byte, valid range 0-224 per the
// LZMA1 spec) ahead of the 8-byte size field.
func looksLikeLZMAProps(header []byte) bool {
	if len(header) < lzmaAloneHeaderSize {
		return false
	}
	return header[0] <= 224
}
