// Package object implements the per-object binary record decoder (spec
// §4.6): given an ObjectInfo, locate its byte slice in a SerializedFile's
// payload, find the matching SerializedType, and drive the TypeTree
// serializer to produce a UnityClass field map.
package object

import (
	"fmt"

	"github.com/saferwall/unityasset/metadata"
	"github.com/saferwall/unityasset/reader"
	"github.com/saferwall/unityasset/serializer"
	"github.com/saferwall/unityasset/value"
)

// OutOfBoundsError is returned when an object's declared slice would run
// past the payload, per spec §7.
type OutOfBoundsError struct {
	Offset, Length, PayloadLen uint64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("object: slice [%d:%d) out of bounds for payload of length %d", e.Offset, e.Offset+e.Length, e.PayloadLen)
}

// findType locates the SerializedType for an object: first by indexing
// types with TypeID, then by scanning for a matching ClassID when TypeID
// is out of range, per spec §4.6.
func findType(types []metadata.SerializedType, info metadata.ObjectInfo) (*metadata.SerializedType, bool) {
	if info.TypeID >= 0 && int(info.TypeID) < len(types) {
		return &types[info.TypeID], true
	}
	for i := range types {
		if types[i].ClassID == info.ClassID {
			return &types[i], true
		}
	}
	return nil, false
}

// Decode slices payload at the object's declared region and, when a
// TypeTree is available, drives the serializer over it. When no TypeTree
// is available the object decodes as a raw `_raw_data` byte array, per
// spec §4.6.
func Decode(payload []byte, info metadata.ObjectInfo, types []metadata.SerializedType, dataOffset uint64, p *serializer.Parser) (*value.UnityClass, error) {
	start := dataOffset + info.ByteStart
	end := start + uint64(info.ByteSize)
	if end > uint64(len(payload)) || start > end {
		return nil, &OutOfBoundsError{Offset: start, Length: uint64(info.ByteSize), PayloadLen: uint64(len(payload))}
	}
	slice := payload[start:end]

	class := &value.UnityClass{
		ClassID:   info.ClassID,
		ClassName: value.ClassName(info.ClassID),
		Anchor:    fmt.Sprintf("%d", info.PathID),
	}

	st, ok := findType(types, info)
	if !ok || st.TypeTree == nil || st.TypeTree.Root() == nil {
		class.Properties = rawData(slice)
		return class, nil
	}

	if st.ClassName != "" {
		class.ClassName = st.ClassName
	}

	r := reader.New(slice, info.ByteOrder)
	obj, err := p.Parse(r, st.TypeTree.Root())
	if err != nil {
		// Object-level TypeTree errors are caught at the object boundary
		// so sibling objects remain decodable, per spec §7: the failed
		// object's field map is replaced with `_raw_data` plus the error.
		fallback := value.NewObject()
		fallback.Set("_raw_data", arrayOfBytes(slice))
		fallback.Set("_partial_fields", value.Obj(obj))
		class.Properties = fallback
		return class, err
	}
	class.Properties = obj
	return class, nil
}

func rawData(slice []byte) *value.Object {
	o := value.NewObject()
	o.Set("_raw_data", arrayOfBytes(slice))
	return o
}

func arrayOfBytes(b []byte) value.Value {
	items := make([]value.Value, len(b))
	for i, by := range b {
		items[i] = value.Int(int64(by))
	}
	return value.Array(items)
}
