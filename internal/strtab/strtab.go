// Package strtab ships the process-wide, immutable built-in string table
// TypeTree blob records reference when a string offset has bit 31 set
// (spec §3, §4.4, §9: "the only shared read-only table... must ship as a
// constant; mutation is disallowed"). The contents and ordering mirror
// Unity's own CommonString table so offsets line up with real fixtures.
package strtab

// table lists the built-in strings in the exact order Unity's engine emits
// them, so that a given byte offset (with bit 31 cleared) indexes the same
// string here as it does in the reference engine's table.
var table = []string{
	"AABB",
	"AnimationClip",
	"AnimationCurve",
	"AnimationState",
	"Array",
	"Base",
	"BitField",
	"bitset",
	"bool",
	"char",
	"ColorRGBA",
	"Component",
	"data",
	"deque",
	"double",
	"dynamic_array",
	"FastPropertyName",
	"first",
	"float",
	"Font",
	"GameObject",
	"Generic Mono",
	"GradientNEW",
	"GUID",
	"GUIStyle",
	"int",
	"list",
	"long long",
	"map",
	"Matrix4x4f",
	"MdFour",
	"MonoBehaviour",
	"MonoScript",
	"m_ByteSize",
	"m_Curve",
	"m_EditorClassIdentifier",
	"m_EditorHideFlags",
	"m_Enabled",
	"m_ExtensionPtr",
	"m_GameObject",
	"m_Index",
	"m_IsArray",
	"m_IsStatic",
	"m_MetaFlag",
	"m_Name",
	"m_ObjectHideFlags",
	"m_PrefabInternal",
	"m_PrefabParentObject",
	"m_Script",
	"m_StaticEditorFlags",
	"m_Type",
	"m_Version",
	"Object",
	"pair",
	"PPtr<Component>",
	"PPtr<GameObject>",
	"PPtr<Material>",
	"PPtr<MonoBehaviour>",
	"PPtr<MonoScript>",
	"PPtr<Object>",
	"PPtr<Prefab>",
	"PPtr<Sprite>",
	"PPtr<TextAsset>",
	"PPtr<Texture>",
	"PPtr<Texture2D>",
	"PPtr<Transform>",
	"Prefab",
	"Quaternionf",
	"Rectf",
	"RectInt",
	"RectOffset",
	"second",
	"set",
	"short",
	"size",
	"SInt16",
	"SInt32",
	"SInt64",
	"SInt8",
	"staticvector",
	"string",
	"TextAsset",
	"TextMesh",
	"Texture",
	"Texture2D",
	"Transform",
	"TypelessData",
	"UInt16",
	"UInt32",
	"UInt64",
	"UInt8",
	"unsigned int",
	"unsigned long long",
	"unsigned short",
	"vector",
	"Vector2f",
	"Vector3f",
	"Vector4f",
	"m_ScriptingClassIdentifier",
	"Gradient",
	"Type*",
	"int2_storage",
	"int3_storage",
	"BoundsInt",
	"m_CorrespondingSourceObject",
	"m_PrefabInstance",
	"m_PrefabAsset",
	"FileSize",
	"Hash128",
}

// offsetIndex maps each string to the byte offset it would occupy if the
// table were laid out as a single NUL-delimited buffer, matching how blob
// TypeTree records encode the bit-31 "use the built-in table" flag against
// a byte offset rather than an index.
var offsetIndex map[uint32]string

// nameIndex is the reverse lookup, string -> synthetic offset, used by the
// encoder side to recreate the bit-31 flagged offset for a known name.
var nameIndex map[string]uint32

const builtinFlag = uint32(1) << 31

func init() {
	offsetIndex = make(map[uint32]string, len(table))
	nameIndex = make(map[string]uint32, len(table))

	var off uint32
	for _, s := range table {
		offsetIndex[off] = s
		nameIndex[s] = off | builtinFlag
		off += uint32(len(s)) + 1 // +1 for the implicit NUL terminator
	}
}

// IsBuiltinOffset reports whether the high bit (bit 31) of a TypeTree
// string offset is set, selecting the built-in table rather than a file's
// local string buffer, per spec §3.
func IsBuiltinOffset(offset uint32) bool {
	return offset&builtinFlag != 0
}

// Lookup resolves a bit-31-flagged offset against the built-in table.
// The caller must have already confirmed IsBuiltinOffset(offset).
func Lookup(offset uint32) (string, bool) {
	s, ok := offsetIndex[offset&^builtinFlag]
	return s, ok
}

// EncodeOffset returns the bit-31-flagged offset for a known built-in
// string, for use by the TypeTree encoder. ok is false if name is not in
// the built-in table (the encoder must then fall back to the file's local
// string buffer).
func EncodeOffset(name string) (offset uint32, ok bool) {
	off, found := nameIndex[name]
	return off, found
}
