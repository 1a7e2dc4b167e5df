package bundle

import (
	"encoding/binary"
	"testing"

	"github.com/pierrec/lz4/v4"
)

func beU32(buf *[]byte, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	*buf = append(*buf, tmp[:]...)
}

func beI64(buf *[]byte, v int64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(v))
	*buf = append(*buf, tmp[:]...)
}

func beU16(buf *[]byte, v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	*buf = append(*buf, tmp[:]...)
}

func leU32(buf *[]byte, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	*buf = append(*buf, tmp[:]...)
}

func cstr(buf *[]byte, s string) {
	*buf = append(*buf, []byte(s)...)
	*buf = append(*buf, 0)
}

// buildMinimalSerializedFile hand-encodes a format-17 SerializedFile with
// no types and no objects: the smallest buffer serializedfile.Parse will
// accept, used here only as an opaque payload to exercise the bundle
// decompression/slicing path.
func buildMinimalSerializedFile() []byte {
	const dataOffset = 64
	const format = 17

	var meta []byte
	cstr(&meta, "2021.3.5f1")
	leU32(&meta, 5)            // target_platform
	meta = append(meta, 0)     // enable_type_tree = false
	leU32(&meta, 0)            // types count
	leU32(&meta, 0)            // object count
	leU32(&meta, 0)            // script_types count
	leU32(&meta, 0)            // externals count
	cstr(&meta, "")            // user_information

	var header []byte
	beU32(&header, uint32(len(meta)))
	beU32(&header, dataOffset+1)
	beU32(&header, uint32(format))
	beU32(&header, dataOffset)
	header = append(header, 0, 0, 0, 0) // endian=0 + reserved[3]
	header = append(header, meta...)
	for len(header) < dataOffset {
		header = append(header, 0)
	}
	return header
}

// buildUnityFSFixture wraps one minimal SerializedFile in a single LZ4
// block, following spec §8 scenario 2's shape: header flags 0 (blocks-info
// stored uncompressed right after the header) and one data block with
// flags 2 (LZ4). The parser always reads blocks-info from the header
// position.
func buildUnityFSFixture(t *testing.T) []byte {
	t.Helper()

	inner := buildMinimalSerializedFile()

	dst := make([]byte, lz4.CompressBlockBound(len(inner)))
	var c lz4.Compressor
	n, err := c.CompressBlock(inner, dst)
	if err != nil {
		t.Fatalf("lz4 compress failed: %v", err)
	}
	compressedBlock := dst[:n]

	var blocksInfo []byte
	blocksInfo = append(blocksInfo, make([]byte, hashSize)...)
	beU32(&blocksInfo, 1) // block_count
	beU32(&blocksInfo, uint32(len(inner)))
	beU32(&blocksInfo, uint32(len(compressedBlock)))
	beU16(&blocksInfo, 2) // flags: LZ4
	beU32(&blocksInfo, 1) // node_count
	beI64(&blocksInfo, 0)
	beI64(&blocksInfo, int64(len(inner)))
	beU32(&blocksInfo, 4) // node flags
	cstr(&blocksInfo, "CAB-0123456789abcdef0123456789abcdef")

	var buf []byte
	cstr(&buf, "UnityFS")
	beU32(&buf, 6) // version < 7: no 16-byte alignment
	cstr(&buf, "2021.3.5f1")
	cstr(&buf, "2021.3.5f1c1")
	beI64(&buf, int64(len(buf)+len(blocksInfo)+len(compressedBlock)))
	beU32(&buf, uint32(len(blocksInfo))) // compressed == uncompressed: flags 0 (None)
	beU32(&buf, uint32(len(blocksInfo)))
	beU32(&buf, 0) // flags: blocks-info codec None

	buf = append(buf, blocksInfo...)
	buf = append(buf, compressedBlock...)
	return buf
}

func TestParseUnityFSScenarioTwo(t *testing.T) {
	data := buildUnityFSFixture(t)

	b, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(b.Nodes) != 1 {
		t.Fatalf("expected 1 directory node, got %d", len(b.Nodes))
	}
	if b.Nodes[0].Flags != 4 {
		t.Errorf("node flags = %d, want 4", b.Nodes[0].Flags)
	}

	name := b.Nodes[0].Name
	sf, ok := b.Files[name]
	if !ok {
		t.Fatalf("expected node %q to be parsed as a SerializedFile", name)
	}
	if sf.Header.Version != 17 {
		t.Errorf("inner file version = %d, want 17", sf.Header.Version)
	}
	if len(sf.Objects) != 0 {
		t.Errorf("expected 0 objects, got %d", len(sf.Objects))
	}

	entries := b.Container()
	if len(entries) != 1 || entries[0].Asset != sf {
		t.Fatalf("Container() did not surface the parsed asset")
	}
}

// buildUnityRawFixture wraps one minimal SerializedFile in the legacy
// uncompressed directory layout, matching the fixed-offset shape
// described for UnityRaw in spec §4.8.
func buildUnityRawFixture(t *testing.T) []byte {
	t.Helper()

	inner := buildMinimalSerializedFile()
	const name = "CAB-raw"

	// file_count(4) + name + NUL(1) + offset(4) + size(4), then inner data.
	fileStart := uint32(4 + len(name) + 1 + 4 + 4)

	var payload []byte
	beU32(&payload, 1) // file_count
	cstr(&payload, name)
	beU32(&payload, fileStart)
	beU32(&payload, uint32(len(inner)))
	payload = append(payload, inner...)

	var buf []byte
	cstr(&buf, "UnityRaw")
	buf = append(buf, payload...)
	return buf
}

func TestParseLegacyUnityRaw(t *testing.T) {
	data := buildUnityRawFixture(t)

	b, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(b.Nodes) != 1 || b.Nodes[0].Name != "CAB-raw" {
		t.Fatalf("unexpected nodes: %+v", b.Nodes)
	}
	sf, ok := b.Files["CAB-raw"]
	if !ok {
		t.Fatalf("expected CAB-raw to parse as a SerializedFile")
	}
	if sf.Header.Version != 17 {
		t.Errorf("inner file version = %d, want 17", sf.Header.Version)
	}
}

func TestParseRejectsUnknownSignature(t *testing.T) {
	var buf []byte
	cstr(&buf, "NotAUnityBundle")
	if _, err := Parse(buf, nil); err == nil {
		t.Fatalf("expected InvalidFormatError for unrecognized signature")
	}
}

func TestOutOfBoundsNodeRejected(t *testing.T) {
	var blocksInfo []byte
	blocksInfo = append(blocksInfo, make([]byte, hashSize)...)
	beU32(&blocksInfo, 1)
	beU32(&blocksInfo, 4)
	beU32(&blocksInfo, 4)
	beU16(&blocksInfo, 0) // None codec
	beU32(&blocksInfo, 1)
	beI64(&blocksInfo, 0)
	beI64(&blocksInfo, 1000) // declares far more than the 4-byte payload
	beU32(&blocksInfo, 0)
	cstr(&blocksInfo, "CAB-bad")

	compressedBlock := []byte{1, 2, 3, 4}

	var buf []byte
	cstr(&buf, "UnityFS")
	beU32(&buf, 6)
	cstr(&buf, "2021.3.5f1")
	cstr(&buf, "2021.3.5f1c1")
	beI64(&buf, int64(len(blocksInfo)+len(compressedBlock)))
	beU32(&buf, uint32(len(blocksInfo)))
	beU32(&buf, uint32(len(blocksInfo)))
	beU32(&buf, 0)
	buf = append(buf, blocksInfo...)
	buf = append(buf, compressedBlock...)

	if _, err := Parse(buf, nil); err == nil {
		t.Fatalf("expected OutOfBoundsError for a node exceeding the payload")
	}
}
