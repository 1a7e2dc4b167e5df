// Package typetree decodes and holds Unity's TypeTree schema: the
// self-describing node tree embedded per class per SerializedFile that the
// serializer package drives to parse heterogeneous binary object records
// (spec §4.4). Both on-disk shapes (legacy depth-first, and the flat "blob"
// record stream + shared string buffer used at format 10 and from 12 onward) are
// supported.
package typetree

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/saferwall/unityasset/internal/strtab"
)

// metaAligned is the meta_flags bit that marks a node as aligned: the
// serializer realigns the cursor to 4 before reading its value, per spec §3.
const metaAligned = 0x4000

// Node is a single TypeTree entry, per spec §3.
type Node struct {
	TypeName     string
	FieldName    string
	ByteSize     int32 // -1 = variable size
	TypeFlags    int32
	Version      int32
	MetaFlags    int32
	Level        int32
	TypeStrOff   uint32
	NameStrOff   uint32
	RefTypeHash  uint64
	Children     []*Node
}

// Aligned reports whether the node is aligned (the cursor is realigned to 4
// before its value is read), per spec §3 ("aligned iff meta_flags & 0x4000 != 0").
func (n *Node) Aligned() bool { return n.MetaFlags&metaAligned != 0 }

// IsArray reports whether this node represents an array: its own type is
// Array/vector, or it has exactly one child of type Array, per spec §3.
func (n *Node) IsArray() bool {
	if n.TypeName == "Array" || n.TypeName == "vector" {
		return true
	}
	if len(n.Children) == 1 && n.Children[0].TypeName == "Array" {
		return true
	}
	return false
}

// ArrayNode returns the child node that actually carries the
// [size, element] pair for an array-shaped node: its single Array child
// when it has one, otherwise itself if TypeName is "Array" or "vector".
func (n *Node) ArrayNode() *Node {
	if len(n.Children) == 1 && n.Children[0].TypeName == "Array" {
		return n.Children[0]
	}
	if n.TypeName == "Array" || n.TypeName == "vector" {
		return n
	}
	return nil
}

// SizeChild and ElementChild return the two children of an Array node:
// [size:int, element:T], per spec §3's invariant.
func (n *Node) SizeChild() *Node {
	if len(n.Children) != 2 {
		return nil
	}
	return n.Children[0]
}

func (n *Node) ElementChild() *Node {
	if len(n.Children) != 2 {
		return nil
	}
	return n.Children[1]
}

// Tree is the full per-class schema, per spec §3.
type Tree struct {
	Version      uint32
	Platform     uint32
	HasTypeDeps  bool
	Roots        []*Node
	StringBuffer []byte
}

// Root returns the tree's single root node. A well-formed tree has exactly
// one, per spec §4.4's post-build invariant.
func (t *Tree) Root() *Node {
	if len(t.Roots) == 0 {
		return nil
	}
	return t.Roots[0]
}

// MalformedTreeError reports a TypeTree that violates a structural
// invariant from spec §4.4/§8 (e.g. level sequencing, root count).
type MalformedTreeError struct {
	What string
}

func (e *MalformedTreeError) Error() string { return "typetree: " + e.What }

// Hash returns an xxhash digest of the tree's node stream (type name, field
// name, byte size, flags and level, depth-first), used as a cheap
// structural-equality fast path: two trees with different hashes are
// never equal, so Equal only falls back to a full deep comparison on a
// collision.
func (t *Tree) Hash() uint64 {
	h := xxhash.New()
	var buf [4]byte
	writeI32 := func(v int32) {
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		h.Write(buf[:])
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		h.Write([]byte(n.TypeName))
		h.Write([]byte(n.FieldName))
		writeI32(n.ByteSize)
		writeI32(n.TypeFlags)
		writeI32(n.Level)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range t.Roots {
		walk(r)
	}
	return h.Sum64()
}

// Equal reports whether t and other describe the same schema. It checks
// the xxhash digest first and only deep-compares node-by-node on a
// collision, which keeps repeated comparisons in tests cheap when
// fixtures share most of their TypeTree.
func (t *Tree) Equal(other *Tree) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.Hash() != other.Hash() {
		return false
	}
	if len(t.Roots) != len(other.Roots) {
		return false
	}
	var nodeEqual func(a, b *Node) bool
	nodeEqual = func(a, b *Node) bool {
		if a.TypeName != b.TypeName || a.FieldName != b.FieldName ||
			a.ByteSize != b.ByteSize || a.TypeFlags != b.TypeFlags ||
			a.Level != b.Level || len(a.Children) != len(b.Children) {
			return false
		}
		for i := range a.Children {
			if !nodeEqual(a.Children[i], b.Children[i]) {
				return false
			}
		}
		return true
	}
	for i := range t.Roots {
		if !nodeEqual(t.Roots[i], other.Roots[i]) {
			return false
		}
	}
	return true
}

// resolveString resolves an offset against the local string buffer or,
// when bit 31 is set, the built-in table, per spec §3.
func resolveString(offset uint32, buf []byte) (string, error) {
	if strtab.IsBuiltinOffset(offset) {
		s, ok := strtab.Lookup(offset)
		if !ok {
			return "", fmt.Errorf("typetree: unknown built-in string offset 0x%x", offset)
		}
		return s, nil
	}
	if int(offset) > len(buf) {
		return "", fmt.Errorf("typetree: string offset %d beyond buffer of length %d", offset, len(buf))
	}
	end := offset
	for int(end) < len(buf) && buf[end] != 0 {
		end++
	}
	if int(end) >= len(buf) {
		return "", fmt.Errorf("typetree: unterminated string at offset %d", offset)
	}
	return string(buf[offset:end]), nil
}

// Validate checks the post-build invariants from spec §4.4/§8: a forest
// rooted at level-0 nodes, children at parent.level+1, exactly one root for
// a well-formed SerializedType.
func (t *Tree) Validate() error {
	if len(t.Roots) != 1 {
		return &MalformedTreeError{What: fmt.Sprintf("expected exactly one root, got %d", len(t.Roots))}
	}
	var walk func(n *Node) error
	walk = func(n *Node) error {
		for _, c := range n.Children {
			if c.Level != n.Level+1 {
				return &MalformedTreeError{What: fmt.Sprintf(
					"child %q level %d != parent %q level %d + 1", c.FieldName, c.Level, n.FieldName, n.Level)}
			}
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range t.Roots {
		if r.Level != 0 {
			return &MalformedTreeError{What: "root level != 0"}
		}
		if err := walk(r); err != nil {
			return err
		}
	}
	return nil
}
