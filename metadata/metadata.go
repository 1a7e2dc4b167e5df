// Package metadata holds the SerializedFile metadata records shared by the
// serializedfile and object packages: SerializedType, ObjectInfo and
// FileIdentifier (spec §3). It is deliberately leaf-level (no dependency on
// serializedfile or bundle) so both can depend on it without a cycle.
package metadata

import (
	"encoding/binary"

	"github.com/saferwall/unityasset/typetree"
)

// SerializedType describes one class's on-disk layout within a
// SerializedFile, per spec §3.
type SerializedType struct {
	ClassID           int32
	IsStripped        bool
	ScriptTypeIndex   int16 // -1 when absent
	TypeTree          *typetree.Tree
	ScriptID          [16]byte
	OldTypeHash       [16]byte
	TypeDependencies  []int32
	ClassName         string
	Namespace         string
	AssemblyName      string
}

// ObjectInfo locates and classifies one object's binary record within a
// SerializedFile's payload, per spec §3.
type ObjectInfo struct {
	PathID    int64
	ByteStart uint64
	ByteSize  uint32
	TypeID    int32
	ClassID   int32
	ByteOrder binary.ByteOrder
}

// FileIdentifier names an external SerializedFile referenced by path_id
// entries with a nonzero fileID, per spec §3.
type FileIdentifier struct {
	GUID     [16]byte
	Type     int32
	PathName string
}

// LocalSerializedObjectIdentifier links a MonoScript object to the type
// table entry generated for it, per spec §3's script_types.
type LocalSerializedObjectIdentifier struct {
	LocalSerializedFileIndex int32
	LocalIdentifierInFile    int64
}
