package typetree

import "github.com/saferwall/unityasset/reader"

// refTypeHashFormat is the file-format-version threshold at and above which
// blob records carry a trailing ref_type_hash:u64, per spec §4.4.
const refTypeHashFormat = 19

// ReadBlob decodes the flat "blob" on-disk shape used at format 10 and
// from format 12 onward: node_count:i32, string_buffer_size:i32, node_count fixed-size
// records, then the shared string buffer, per spec §4.4.
func ReadBlob(r *reader.Reader, fileFormatVersion int32) (*Tree, error) {
	nodeCount, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	stringBufferSize, err := r.ReadI32()
	if err != nil {
		return nil, err
	}

	records := make([]*Node, 0, nodeCount)
	for i := int32(0); i < nodeCount; i++ {
		n, err := readBlobRecord(r, fileFormatVersion)
		if err != nil {
			return nil, err
		}
		records = append(records, n)
	}

	buf, err := r.ReadBytes(uint64(stringBufferSize))
	if err != nil {
		return nil, err
	}

	for _, n := range records {
		typeName, err := resolveString(n.TypeStrOff, buf)
		if err != nil {
			return nil, err
		}
		fieldName, err := resolveString(n.NameStrOff, buf)
		if err != nil {
			return nil, err
		}
		n.TypeName = typeName
		n.FieldName = fieldName
	}

	t := &Tree{Roots: buildHierarchy(records), StringBuffer: append([]byte(nil), buf...)}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func readBlobRecord(r *reader.Reader, fileFormatVersion int32) (*Node, error) {
	version, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	level, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	typeFlags, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	typeStrOff, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	nameStrOff, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	byteSize, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	// Index is consumed for positional bookkeeping only; our rebuilt
	// hierarchy uses level, not index, to attach children (spec §4.4).
	if _, err := r.ReadI32(); err != nil {
		return nil, err
	}
	metaFlags, err := r.ReadI32()
	if err != nil {
		return nil, err
	}

	n := &Node{
		Version:    int32(version),
		Level:      int32(level),
		TypeFlags:  int32(typeFlags),
		TypeStrOff: typeStrOff,
		NameStrOff: nameStrOff,
		ByteSize:   byteSize,
		MetaFlags:  metaFlags,
	}

	if fileFormatVersion >= refTypeHashFormat {
		hash, err := r.ReadU64()
		if err != nil {
			return nil, err
		}
		n.RefTypeHash = hash
	}

	return n, nil
}

// buildHierarchy rebuilds the node tree from the flat record stream using a
// single linear pass with a stack: a child is attached to the nearest
// preceding node with strictly lower level, per spec §4.4.
func buildHierarchy(records []*Node) []*Node {
	var roots []*Node
	stack := make([]*Node, 0, 16)

	for _, n := range records {
		for len(stack) > 0 && stack[len(stack)-1].Level >= n.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
		}
		stack = append(stack, n)
	}
	return roots
}
