package typetree

import "github.com/saferwall/unityasset/reader"

// ReadLegacy decodes the pre-format-10 (and format 11) on-disk shape: a
// depth-first recursive emission where each node writes its type string and
// name string inline rather than as buffer offsets, per spec §4.4.
func ReadLegacy(r *reader.Reader) (*Tree, error) {
	root, err := readLegacyNode(r, 0)
	if err != nil {
		return nil, err
	}
	t := &Tree{Roots: []*Node{root}}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func readLegacyNode(r *reader.Reader, level int32) (*Node, error) {
	typeName, err := r.ReadCString()
	if err != nil {
		return nil, err
	}
	fieldName, err := r.ReadCString()
	if err != nil {
		return nil, err
	}
	byteSize, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	// Legacy records carry one more i32 between byte_size and type_flags;
	// array shape is decided by the IsArray() child-shape check, so it is
	// read and discarded.
	if _, err := r.ReadI32(); err != nil {
		return nil, err
	}
	typeFlags, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	version, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	metaFlags, err := r.ReadI32()
	if err != nil {
		return nil, err
	}

	n := &Node{
		TypeName:  typeName,
		FieldName: fieldName,
		ByteSize:  byteSize,
		TypeFlags: typeFlags,
		Version:   version,
		MetaFlags: metaFlags,
		Level:     level,
	}

	childCount, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	n.Children = make([]*Node, 0, childCount)
	for i := int32(0); i < childCount; i++ {
		c, err := readLegacyNode(r, level+1)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}
