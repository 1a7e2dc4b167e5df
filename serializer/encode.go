package serializer

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/saferwall/unityasset/typetree"
	"github.com/saferwall/unityasset/value"
)

// Encode writes a value.Object back into its binary form per the tree's
// root node, symmetric with Parse: primitives and strings write their
// natural little-endian representation and pad to 4, arrays write an i32
// size then elements, objects write children in declared order (spec
// §4.5).
func (p *Parser) Encode(root *typetree.Node, obj *value.Object) ([]byte, error) {
	buf := &bytes.Buffer{}
	for _, child := range root.Children {
		v, ok := obj.Get(child.FieldName)
		if !ok {
			v = value.Null()
		}
		if err := p.encodeValue(buf, child, v); err != nil {
			return buf.Bytes(), err
		}
	}
	return buf.Bytes(), nil
}

func alignWrite(buf *bytes.Buffer, unit int) {
	rem := buf.Len() % unit
	if rem != 0 {
		buf.Write(make([]byte, unit-rem))
	}
}

func (p *Parser) encodeValue(buf *bytes.Buffer, node *typetree.Node, v value.Value) error {
	if node.Aligned() {
		alignWrite(buf, int(p.alignUnit(node)))
	}

	if width, ok := primitiveWidth[node.TypeName]; ok {
		if err := writePrimitive(buf, node.TypeName, v); err != nil {
			return err
		}
		if width < 4 && (node.Aligned() || width == 1) {
			alignWrite(buf, 4)
		}
		return nil
	}

	if node.TypeName == "string" {
		s := v.Str()
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
		buf.Write(lenBuf[:])
		buf.WriteString(s)
		alignWrite(buf, 4)
		return nil
	}

	if node.IsArray() {
		return p.encodeArray(buf, node, v)
	}

	if node.TypeName == "pair" {
		items := v.Items()
		if len(items) != 2 {
			return &TypeTreeMismatchError{Field: node.FieldName, Expected: "pair", Got: "non-2-element array"}
		}
		if err := p.encodeValue(buf, node.Children[0], items[0]); err != nil {
			return err
		}
		return p.encodeValue(buf, node.Children[1], items[1])
	}

	if len(node.Children) > 0 {
		obj := v.Object()
		for _, c := range node.Children {
			var cv value.Value
			if obj != nil {
				cv, _ = obj.Get(c.FieldName)
			}
			if err := p.encodeValue(buf, c, cv); err != nil {
				return err
			}
		}
		return nil
	}

	if node.ByteSize >= 0 {
		items := v.Items()
		b := make([]byte, len(items))
		for i, it := range items {
			b[i] = byte(it.Int())
		}
		buf.Write(b)
		return nil
	}

	return nil
}

func (p *Parser) encodeArray(buf *bytes.Buffer, node *typetree.Node, v value.Value) error {
	arrayNode := node.ArrayNode()
	elem := arrayNode.ElementChild()
	items := v.Items()

	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(len(items)))
	buf.Write(sizeBuf[:])

	for _, it := range items {
		if err := p.encodeValue(buf, elem, it); err != nil {
			return err
		}
	}
	return nil
}

func writePrimitive(buf *bytes.Buffer, typeName string, v value.Value) error {
	switch typeName {
	case "bool":
		if v.Bool() {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case "SInt8", "UInt8", "char":
		buf.WriteByte(byte(v.Int()))
	case "SInt16", "UInt16", "short", "unsigned short":
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(v.Int()))
		buf.Write(b[:])
	case "SInt32", "UInt32", "int", "unsigned int", "Type*":
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(v.Int()))
		buf.Write(b[:])
	case "SInt64", "UInt64", "long long", "unsigned long long", "FileSize":
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(v.Int()))
		buf.Write(b[:])
	case "float":
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(v.Float())))
		buf.Write(b[:])
	case "double":
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v.Float()))
		buf.Write(b[:])
	default:
		return &TypeTreeMismatchError{Field: typeName, Expected: "primitive", Got: typeName}
	}
	return nil
}
