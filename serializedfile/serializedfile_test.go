package serializedfile

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/saferwall/unityasset/metadata"
	"github.com/saferwall/unityasset/value"
)

func beU32(buf *[]byte, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	*buf = append(*buf, tmp[:]...)
}

func leU16(buf *[]byte, v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	*buf = append(*buf, tmp[:]...)
}

func leI32(buf *[]byte, v int32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	*buf = append(*buf, tmp[:]...)
}

func leU32(buf *[]byte, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	*buf = append(*buf, tmp[:]...)
}

func leF32(buf *[]byte, v float32) {
	leU32(buf, math.Float32bits(v))
}

func cstr(buf *[]byte, s string) {
	*buf = append(*buf, []byte(s)...)
	*buf = append(*buf, 0)
}

// buildBlobTypeTree hand-encodes the Transform{m_LocalPosition:Vector3f{x,y,z}}
// fixture shared with the typetree package tests, in blob format for a
// format-17 file.
func buildBlobTypeTree() []byte {
	type rec struct {
		level     uint8
		typeName  string
		field     string
		byteSize  int32
	}
	recs := []rec{
		{0, "Transform", "Base", -1},
		{1, "Vector3f", "m_LocalPosition", 12},
		{2, "float", "x", 4},
		{2, "float", "y", 4},
		{2, "float", "z", 4},
	}

	var strbuf []byte
	type off struct{ typeOff, nameOff uint32 }
	offsets := make([]off, len(recs))
	for i, r := range recs {
		offsets[i].typeOff = uint32(len(strbuf))
		strbuf = append(strbuf, []byte(r.typeName)...)
		strbuf = append(strbuf, 0)
		offsets[i].nameOff = uint32(len(strbuf))
		strbuf = append(strbuf, []byte(r.field)...)
		strbuf = append(strbuf, 0)
	}

	var buf []byte
	leI32(&buf, int32(len(recs)))
	leI32(&buf, int32(len(strbuf)))
	for i, r := range recs {
		leU16(&buf, 1) // version
		buf = append(buf, r.level, 0)
		leU32(&buf, offsets[i].typeOff)
		leU32(&buf, offsets[i].nameOff)
		leI32(&buf, r.byteSize)
		leI32(&buf, int32(i))
		leI32(&buf, 0) // meta_flags
	}
	buf = append(buf, strbuf...)
	return buf
}

// buildFixture hand-encodes a minimal, valid format-17 SerializedFile: one
// Transform type with a TypeTree, one Transform object, no scripts/externals,
// matching spec §8 scenario 1's shape.
func buildFixture(t *testing.T) []byte {
	t.Helper()

	const dataOffset = 256
	const format = 17

	var meta []byte
	cstr(&meta, "2021.3.5f1")
	leI32(&meta, 5) // target_platform
	meta = append(meta, 1) // enable_type_tree = true

	leI32(&meta, 1) // types count
	leI32(&meta, 4) // ClassID = Transform
	meta = append(meta, 0) // is_stripped = false
	leU16(&meta, 0xFFFF)   // script_type_index = -1 as a u16 bit pattern
	meta = append(meta, make([]byte, 16)...) // old_type_hash

	// BigIDEnabled: version >= 14, so no explicit flag byte is stored; the
	// reader derives it implicitly.
	meta = append(meta, buildBlobTypeTree()...)

	leI32(&meta, 1) // object count
	for len(meta)%4 != 0 {
		meta = append(meta, 0) // matches the reader's align_to(4) before each ObjectInfo
	}
	var pathID [8]byte
	binary.LittleEndian.PutUint64(pathID[:], 1)
	meta = append(meta, pathID[:]...)
	leU32(&meta, 0)  // byte_start (relative to data_offset)
	leU32(&meta, 12) // byte_size
	leI32(&meta, 0)  // type_id -> types[0]

	leI32(&meta, 0) // script_types count
	leI32(&meta, 0) // externals count
	cstr(&meta, "") // user_information

	var header []byte
	beU32(&header, uint32(len(meta))) // metadata_size (informational only)
	beU32(&header, dataOffset+12)     // file_size
	beU32(&header, uint32(format))    // version
	beU32(&header, dataOffset)        // data_offset
	header = append(header, 0, 0, 0, 0) // endian=0 (little) + reserved[3]

	header = append(header, meta...)
	for len(header) < dataOffset {
		header = append(header, 0)
	}

	var obj []byte
	leF32(&obj, 1.0)
	leF32(&obj, 2.0)
	leF32(&obj, 3.0)
	header = append(header, obj...)

	return header
}

func TestParseScenarioOneTransform(t *testing.T) {
	data := buildFixture(t)

	sf, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if sf.Header.Version != 17 {
		t.Errorf("version = %d, want 17", sf.Header.Version)
	}
	if sf.UnityVersion != "2021.3.5f1" {
		t.Errorf("unity version = %q", sf.UnityVersion)
	}
	if !sf.BigIDEnabled {
		t.Errorf("expected BigIDEnabled for format 17")
	}
	if len(sf.Types) != 1 || sf.Types[0].ClassID != 4 {
		t.Fatalf("unexpected types: %+v", sf.Types)
	}
	if len(sf.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(sf.Objects))
	}
	if len(sf.DecodeErrors) != 0 {
		t.Fatalf("unexpected decode errors: %v", sf.DecodeErrors)
	}

	classes, err := sf.GetObjects()
	if err != nil {
		t.Fatalf("GetObjects failed: %v", err)
	}
	if len(classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(classes))
	}

	class := classes[0]
	if class.ClassName != "Transform" {
		t.Errorf("class name = %q, want Transform", class.ClassName)
	}
	pos, ok := class.Properties.Get("m_LocalPosition")
	if !ok {
		t.Fatalf("missing m_LocalPosition field")
	}
	if pos.Kind() != value.KindObject {
		t.Fatalf("m_LocalPosition kind = %v, want Object", pos.Kind())
	}
	x, _ := pos.Object().Get("x")
	if x.Float() != 1.0 {
		t.Errorf("x = %v, want 1.0", x.Float())
	}
}

func TestParseRejectsDataOffsetZero(t *testing.T) {
	var header []byte
	beU32(&header, 0)
	beU32(&header, 100)
	beU32(&header, 17)
	beU32(&header, 0) // data_offset == 0
	header = append(header, 0, 0, 0, 0)

	if _, err := Parse(header, nil); err == nil {
		t.Fatalf("expected InvalidFormatError for data_offset == 0")
	}
}

func TestExternalPathResolvesOneBased(t *testing.T) {
	sf := &SerializedFile{
		Externals: []metadata.FileIdentifier{{PathName: "library/foo.assets"}},
	}
	if _, ok := sf.ExternalPath(0); ok {
		t.Errorf("fileID 0 should never resolve")
	}
	path, ok := sf.ExternalPath(1)
	if !ok || path != "library/foo.assets" {
		t.Errorf("ExternalPath(1) = %q, %v", path, ok)
	}
	if _, ok := sf.ExternalPath(5); ok {
		t.Errorf("out-of-range fileID should not resolve")
	}
}
