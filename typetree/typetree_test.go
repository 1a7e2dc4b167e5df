package typetree

import (
	"encoding/binary"
	"testing"

	"github.com/saferwall/unityasset/reader"
)

func appendI32(buf *[]byte, v int32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	*buf = append(*buf, tmp[:]...)
}

func appendU32(buf *[]byte, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	*buf = append(*buf, tmp[:]...)
}

func appendU16(buf *[]byte, v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	*buf = append(*buf, tmp[:]...)
}

// buildBlobTree hand-encodes a tiny blob-format TypeTree: a Transform root
// with one child m_LocalPosition:Vector3{x,y,z float}, matching the literal
// fixture from spec §8 scenario 1.
func buildBlobTree(t *testing.T) []byte {
	t.Helper()

	type rec struct {
		level            uint8
		typeName, field  string
		byteSize         int32
	}
	recs := []rec{
		{0, "Transform", "Base", -1},
		{1, "Vector3f", "m_LocalPosition", 12},
		{2, "float", "x", 4},
		{2, "float", "y", 4},
		{2, "float", "z", 4},
	}

	var strbuf []byte
	offsets := make([]struct{ typeOff, nameOff uint32 }, len(recs))
	for i, r := range recs {
		offsets[i].typeOff = uint32(len(strbuf))
		strbuf = append(strbuf, []byte(r.typeName)...)
		strbuf = append(strbuf, 0)
		offsets[i].nameOff = uint32(len(strbuf))
		strbuf = append(strbuf, []byte(r.field)...)
		strbuf = append(strbuf, 0)
	}

	var buf []byte
	appendI32(&buf, int32(len(recs)))
	appendI32(&buf, int32(len(strbuf)))
	for i, r := range recs {
		appendU16(&buf, 1) // version
		buf = append(buf, r.level, 0)
		appendU32(&buf, offsets[i].typeOff)
		appendU32(&buf, offsets[i].nameOff)
		appendI32(&buf, r.byteSize)
		appendI32(&buf, int32(i)) // index
		appendI32(&buf, 0)        // meta_flags
	}
	buf = append(buf, strbuf...)
	return buf
}

func TestReadBlobHierarchy(t *testing.T) {
	data := buildBlobTree(t)
	r := reader.New(data, binary.LittleEndian)

	tree, err := ReadBlob(r, 17)
	if err != nil {
		t.Fatalf("ReadBlob failed: %v", err)
	}

	root := tree.Root()
	if root == nil {
		t.Fatalf("expected a root node")
	}
	if root.TypeName != "Transform" {
		t.Errorf("root type = %q, want Transform", root.TypeName)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	pos := root.Children[0]
	if pos.FieldName != "m_LocalPosition" || len(pos.Children) != 3 {
		t.Fatalf("unexpected m_LocalPosition node: %+v", pos)
	}
	for i, axis := range []string{"x", "y", "z"} {
		if pos.Children[i].FieldName != axis {
			t.Errorf("child %d field = %q, want %q", i, pos.Children[i].FieldName, axis)
		}
		if pos.Children[i].Level != 2 {
			t.Errorf("child %d level = %d, want 2", i, pos.Children[i].Level)
		}
	}
}

func TestTreeEqualStructuralFastPath(t *testing.T) {
	data := buildBlobTree(t)

	tree1, err := ReadBlob(reader.New(data, binary.LittleEndian), 17)
	if err != nil {
		t.Fatalf("ReadBlob failed: %v", err)
	}
	tree2, err := ReadBlob(reader.New(data, binary.LittleEndian), 17)
	if err != nil {
		t.Fatalf("ReadBlob failed: %v", err)
	}

	if tree1.Hash() != tree2.Hash() {
		t.Fatalf("two parses of the same bytes hashed differently")
	}
	if !tree1.Equal(tree2) {
		t.Fatalf("two parses of the same bytes were not Equal")
	}

	tree2.Root().Children[0].FieldName = "m_WorldPosition"
	if tree1.Hash() == tree2.Hash() {
		t.Fatalf("mutated tree hashed the same as the original")
	}
	if tree1.Equal(tree2) {
		t.Fatalf("mutated tree compared Equal to the original")
	}
}

// buildLegacyLeaf hand-encodes a single leaf node in the legacy depth-first
// shape: type cstring, name cstring, byte_size, is_array, type_flags,
// version, meta_flags, child_count.
func buildLegacyLeaf(buf *[]byte, typeName, fieldName string, byteSize int32) {
	*buf = append(*buf, []byte(typeName)...)
	*buf = append(*buf, 0)
	*buf = append(*buf, []byte(fieldName)...)
	*buf = append(*buf, 0)
	appendI32(buf, byteSize)
	appendI32(buf, 0)
	appendI32(buf, 0)
	appendI32(buf, 1)
	appendI32(buf, 0)
	appendI32(buf, 0) // no children
}

func TestReadLegacySingleLeaf(t *testing.T) {
	var buf []byte
	// int m_Value (no children), format <= 9 shape.
	buildLegacyLeaf(&buf, "int", "m_Value", 4)

	r := reader.New(buf, binary.LittleEndian)
	tree, err := ReadLegacy(r)
	if err != nil {
		t.Fatalf("ReadLegacy failed: %v", err)
	}
	root := tree.Root()
	if root.TypeName != "int" || root.FieldName != "m_Value" {
		t.Errorf("unexpected root: %+v", root)
	}
	if len(root.Children) != 0 {
		t.Errorf("expected no children, got %d", len(root.Children))
	}
}

func TestValidateRejectsBadLevels(t *testing.T) {
	root := &Node{TypeName: "Root", Level: 0}
	bad := &Node{TypeName: "Bad", Level: 2}
	root.Children = []*Node{bad}
	tree := &Tree{Roots: []*Node{root}}

	if err := tree.Validate(); err == nil {
		t.Fatalf("expected validation error for skipped level")
	}
}

func TestIsArrayDetection(t *testing.T) {
	sizeNode := &Node{TypeName: "int", FieldName: "size"}
	elemNode := &Node{TypeName: "int", FieldName: "data"}
	arrayChild := &Node{TypeName: "Array", Children: []*Node{sizeNode, elemNode}}
	vectorNode := &Node{TypeName: "vector", FieldName: "m_Values", Children: []*Node{arrayChild}}

	if !vectorNode.IsArray() {
		t.Errorf("expected vector node with Array child to report IsArray() == true")
	}
	if vectorNode.ArrayNode() != arrayChild {
		t.Errorf("ArrayNode() should return the Array child")
	}
}
