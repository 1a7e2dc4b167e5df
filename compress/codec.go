// Package compress dispatches and decodes the codecs Unity's container
// formats use: LZ4/LZ4HC block format, LZMA1 "alone" streams, Brotli and
// GZip streams (spec §4.2). Codec is a small enum and Decompress dispatches
// on it with a switch; each codec's decoder lives in its own file.
package compress

import "fmt"

// Codec identifies a Unity compression codec. Values match the codec
// nibble Unity stores in BundleHeader.flags and CompressionBlock.flags
// (flags & 0x3F), per spec §4.2.
type Codec uint8

// Supported codecs, per spec §4.2.
const (
	None Codec = 0
	LZMA Codec = 1
	LZ4  Codec = 2
	LZ4HC Codec = 3
	LZHAM Codec = 4 // unsupported

	// Brotli and GZip are not part of Unity's flags&0x3F codec nibble. The
	// bundle parser picks codecs only from that nibble, so it never selects
	// them; they are decoded only when passed to Decompress directly.
	Brotli Codec = 0xB0
	GZip   Codec = 0xB1
)

func (c Codec) String() string {
	switch c {
	case None:
		return "None"
	case LZMA:
		return "LZMA"
	case LZ4:
		return "LZ4"
	case LZ4HC:
		return "LZ4HC"
	case LZHAM:
		return "LZHAM"
	case Brotli:
		return "Brotli"
	case GZip:
		return "GZip"
	default:
		return fmt.Sprintf("Codec(%d)", uint8(c))
	}
}

// UnsupportedCodecError is returned for codecs this package recognizes but
// cannot decode (LZHAM) or does not recognize at all.
type UnsupportedCodecError struct {
	Code uint8
}

func (e *UnsupportedCodecError) Error() string {
	return fmt.Sprintf("compress: unsupported compression code %d", e.Code)
}

// DecompressionFailedError wraps a codec-specific decode failure, per
// spec §7 (DecompressionFailed{codec, cause}).
type DecompressionFailedError struct {
	Codec Codec
	Cause error
}

func (e *DecompressionFailedError) Error() string {
	return fmt.Sprintf("compress: %s decompression failed: %v", e.Codec, e.Cause)
}

func (e *DecompressionFailedError) Unwrap() error { return e.Cause }

// Decompress decodes input using the given codec, requiring the result to
// be exactly expectedSize bytes for codecs that carry a known output size
// (None, LZ4, LZ4HC). LZMA tolerates a size mismatch per spec §4.2.
func Decompress(input []byte, codec Codec, expectedSize int) ([]byte, error) {
	switch codec {
	case None:
		return decompressNone(input, expectedSize)
	case LZ4, LZ4HC:
		return decompressLZ4(input, expectedSize)
	case LZMA:
		return decompressLZMA(input, expectedSize)
	case LZHAM:
		return nil, &UnsupportedCodecError{Code: uint8(LZHAM)}
	case Brotli:
		return DecompressBrotli(input, expectedSize)
	case GZip:
		return decompressGZip(input, expectedSize)
	default:
		return nil, &UnsupportedCodecError{Code: uint8(codec)}
	}
}

func decompressNone(input []byte, expectedSize int) ([]byte, error) {
	if len(input) != expectedSize {
		return nil, &DecompressionFailedError{Codec: None,
			Cause: fmt.Errorf("identity codec requires input len == expected (%d != %d)", len(input), expectedSize)}
	}
	return input, nil
}
