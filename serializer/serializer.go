// Package serializer drives a reader.Reader from a typetree.Tree to
// produce (or, symmetrically, write) a typed value.Value tree for a single
// object's binary record (spec §4.5).
package serializer

import (
	"github.com/saferwall/unityasset/reader"
	"github.com/saferwall/unityasset/typetree"
	"github.com/saferwall/unityasset/value"
)

// maxArraySize is the safety bound on array element counts, per spec §4.5.
const maxArraySize = 1_000_000

// Options configures a Parser.
type Options struct {
	// Align8Roots realigns to 8 bytes (instead of 4) before reading an
	// aligned root node, for Unity 2022+ files (spec §4.5,
	// version.FeatureAlignment8).
	Align8Roots bool

	// MaxArraySize overrides the default 1,000,000 element safety bound.
	MaxArraySize int64
}

// Parser drives a reader.Reader against a typetree.Tree.
type Parser struct {
	opts Options
}

// New returns a Parser with the given options (zero value uses defaults).
func New(opts Options) *Parser {
	if opts.MaxArraySize == 0 {
		opts.MaxArraySize = maxArraySize
	}
	return &Parser{opts: opts}
}

// Parse decodes one object record: root's children become the returned
// object's fields (spec §4.5).
func (p *Parser) Parse(r *reader.Reader, root *typetree.Node) (*value.Object, error) {
	obj := value.NewObject()
	for _, child := range root.Children {
		v, err := p.parseValue(r, child)
		if err != nil {
			return obj, err
		}
		obj.Set(child.FieldName, v)
	}
	return obj, nil
}

var primitiveWidth = map[string]int{
	"bool": 1, "SInt8": 1, "UInt8": 1, "char": 1,
	"SInt16": 2, "UInt16": 2, "short": 2, "unsigned short": 2,
	"SInt32": 4, "UInt32": 4, "int": 4, "unsigned int": 4, "Type*": 4,
	"SInt64": 8, "UInt64": 8, "long long": 8, "unsigned long long": 8, "FileSize": 8,
	"float": 4, "double": 8,
}

func (p *Parser) alignUnit(node *typetree.Node) uint64 {
	if p.opts.Align8Roots && node.Level == 0 {
		return 8
	}
	return 4
}

// parseValue dispatches on node.TypeName per the shape rules in spec §4.5.
func (p *Parser) parseValue(r *reader.Reader, node *typetree.Node) (value.Value, error) {
	if node.Aligned() {
		r.AlignTo(p.alignUnit(node))
	}

	if width, ok := primitiveWidth[node.TypeName]; ok {
		v, err := p.readPrimitive(r, node.TypeName)
		if err != nil {
			return value.Null(), err
		}
		// Sub-4-byte reads always realign to 4 when the node itself is
		// marked aligned, and bool/1-byte values always realign
		// regardless, per spec §4.5.
		if width < 4 && (node.Aligned() || width == 1) {
			r.AlignTo(4)
		}
		return v, nil
	}

	if node.TypeName == "string" {
		s, err := r.ReadLengthPrefixedString()
		if err != nil {
			return value.Null(), err
		}
		return value.String(s), nil
	}

	if node.IsArray() {
		return p.parseArray(r, node)
	}

	if node.TypeName == "pair" {
		return p.parsePair(r, node)
	}

	if len(node.Children) > 0 {
		return p.parseObject(r, node)
	}

	if node.ByteSize >= 0 {
		b, err := r.ReadBytes(uint64(node.ByteSize))
		if err != nil {
			return value.Null(), err
		}
		items := make([]value.Value, len(b))
		for i, by := range b {
			items[i] = value.Int(int64(by))
		}
		return value.Array(items), nil
	}

	// Unknown primitive name with no fixed size: yield Null, consume no
	// bytes, and let the caller continue, per spec §7.
	return value.Null(), nil
}

func (p *Parser) readPrimitive(r *reader.Reader, typeName string) (value.Value, error) {
	switch typeName {
	case "bool":
		v, err := r.ReadBool()
		return value.Bool(v), err
	case "SInt8":
		v, err := r.ReadI8()
		return value.Int(int64(v)), err
	case "UInt8", "char":
		v, err := r.ReadU8()
		return value.Int(int64(v)), err
	case "SInt16", "short":
		v, err := r.ReadI16()
		return value.Int(int64(v)), err
	case "UInt16", "unsigned short":
		v, err := r.ReadU16()
		return value.Int(int64(v)), err
	case "SInt32", "int", "Type*":
		v, err := r.ReadI32()
		return value.Int(int64(v)), err
	case "UInt32", "unsigned int":
		v, err := r.ReadU32()
		return value.Int(int64(v)), err
	case "SInt64", "long long", "FileSize":
		v, err := r.ReadI64()
		return value.Int(v), err
	case "UInt64", "unsigned long long":
		v, err := r.ReadU64()
		return value.Int(int64(v)), err
	case "float":
		v, err := r.ReadF32()
		return value.Float(float64(v)), err
	case "double":
		v, err := r.ReadF64()
		return value.Float(v), err
	default:
		return value.Null(), &TypeTreeMismatchError{Field: typeName, Expected: "primitive", Got: typeName}
	}
}

func (p *Parser) parseArray(r *reader.Reader, node *typetree.Node) (value.Value, error) {
	arrayNode := node.ArrayNode()
	elem := arrayNode.ElementChild()
	if elem == nil {
		return value.Null(), &TypeTreeMismatchError{Field: node.FieldName, Expected: "Array{size,element}", Got: "malformed array node"}
	}

	size, err := r.ReadI32()
	if err != nil {
		return value.Null(), err
	}
	limit := p.opts.MaxArraySize
	if limit == 0 {
		limit = maxArraySize
	}
	if int64(size) > limit || size < 0 {
		return value.Null(), &ArrayTooLargeError{Requested: int64(size), Limit: limit}
	}

	items := make([]value.Value, 0, size)
	for i := int32(0); i < size; i++ {
		v, err := p.parseValue(r, elem)
		if err != nil {
			return value.Array(items), err
		}
		items = append(items, v)
	}
	return value.Array(items), nil
}

func (p *Parser) parsePair(r *reader.Reader, node *typetree.Node) (value.Value, error) {
	if len(node.Children) != 2 {
		return value.Null(), &TypeTreeMismatchError{Field: node.FieldName, Expected: "pair with 2 children", Got: "malformed pair"}
	}
	first, err := p.parseValue(r, node.Children[0])
	if err != nil {
		return value.Array([]value.Value{first}), err
	}
	second, err := p.parseValue(r, node.Children[1])
	if err != nil {
		return value.Array([]value.Value{first, second}), err
	}
	return value.Array([]value.Value{first, second}), nil
}

func (p *Parser) parseObject(r *reader.Reader, node *typetree.Node) (value.Value, error) {
	obj := value.NewObject()
	for _, c := range node.Children {
		v, err := p.parseValue(r, c)
		if err != nil {
			obj.Set(c.FieldName, v)
			return value.Obj(obj), err
		}
		obj.Set(c.FieldName, v)
	}
	return value.Obj(obj), nil
}
