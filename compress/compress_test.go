package compress

import (
	"bytes"
	"testing"

	"github.com/pierrec/lz4/v4"
)

func TestDecompressNone(t *testing.T) {
	data := []byte("hello world")
	out, err := Decompress(data, None, len(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("got %q, want %q", out, data)
	}
}

func TestDecompressNoneSizeMismatch(t *testing.T) {
	if _, err := Decompress([]byte("hello"), None, 10); err == nil {
		t.Fatalf("expected error for size mismatch")
	}
}

func TestLZ4RoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte("unity-asset-payload"), 64)

	dst := make([]byte, lz4.CompressBlockBound(len(original)))
	var c lz4.Compressor
	n, err := c.CompressBlock(original, dst)
	if err != nil {
		t.Fatalf("compress failed: %v", err)
	}
	compressed := dst[:n]

	out, err := Decompress(compressed, LZ4, len(original))
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if !bytes.Equal(out, original) {
		t.Errorf("round trip mismatch")
	}
}

func TestLZ4WrongSizeFails(t *testing.T) {
	original := bytes.Repeat([]byte("x"), 256)
	dst := make([]byte, lz4.CompressBlockBound(len(original)))
	var c lz4.Compressor
	n, err := c.CompressBlock(original, dst)
	if err != nil {
		t.Fatalf("compress failed: %v", err)
	}

	if _, err := Decompress(dst[:n], LZ4, len(original)+100); err == nil {
		t.Fatalf("expected DecompressionFailedError for wrong expected size")
	}
}

func TestUnsupportedCodec(t *testing.T) {
	if _, err := Decompress(nil, LZHAM, 0); err == nil {
		t.Fatalf("expected unsupported codec error")
	}
}
