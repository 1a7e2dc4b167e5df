// Package value defines the UnityValue tagged variant and the UnityClass
// record that both the binary decode pipeline and the YAML reader/writer
// produce, so callers see one data model regardless of source format.
package value

import "fmt"

// Kind discriminates the UnityValue tagged sum.
type Kind uint8

// UnityValue kinds.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// Value is the tagged sum described in spec §3: Null, Bool, Int64, Float64,
// String, Array<Value> or Object<Map<String,Value>>. Exactly one of the
// typed fields is meaningful, selected by Kind.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  *Object
}

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean scalar.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps a 64-bit integer scalar.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a 64-bit float scalar.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string scalar.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps a slice of values.
func Array(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// Obj wraps an insertion-ordered object.
func Obj(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports the value's discriminant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; valid only when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload; valid only when Kind() == KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload; valid only when Kind() == KindFloat.
func (v Value) Float() float64 { return v.f }

// Str returns the string payload; valid only when Kind() == KindString.
func (v Value) Str() string { return v.s }

// Items returns the array payload; valid only when Kind() == KindArray.
func (v Value) Items() []Value { return v.arr }

// Object returns the object payload; valid only when Kind() == KindObject.
func (v Value) Object() *Object { return v.obj }

// Equal reports structural equality, per spec §3 ("Equality is structural").
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return a.obj.Equal(b.obj)
	default:
		return false
	}
}

// Object is an insertion-ordered string-keyed map, as required by spec §3
// ("Maps preserve insertion order").
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set inserts or overwrites a field. The key is appended to the insertion
// order only the first time it is set.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns field names in insertion order.
func (o *Object) Keys() []string { return o.keys }

// Len returns the number of fields.
func (o *Object) Len() int { return len(o.keys) }

// Equal reports structural equality under insertion order, per spec §8's
// YAML round-trip property ("structural equality under insertion order").
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if len(o.keys) != len(other.keys) {
		return false
	}
	for i, k := range o.keys {
		if other.keys[i] != k {
			return false
		}
		ov, _ := o.Get(k)
		bv, ok := other.Get(k)
		if !ok || !Equal(ov, bv) {
			return false
		}
	}
	return true
}

// PPtr is the cross-object reference leaf record described in spec §3 and
// §9: every reference to another object is a value record, never a live
// pointer. Supplemented from the Rust original's object.rs PPtr wrapper.
type PPtr struct {
	FileID int32
	PathID int64
}

// IsNull reports whether the reference points at nothing, matching the
// original's PPtr::is_null (fileID == 0 && pathID == 0).
func (p PPtr) IsNull() bool { return p.FileID == 0 && p.PathID == 0 }

// Value renders the reference as the Object{fileID,pathID} leaf record
// spec §3 mandates for binary cross-references.
func (p PPtr) Value() Value {
	o := NewObject()
	o.Set("m_FileID", Int(int64(p.FileID)))
	o.Set("m_PathID", Int(p.PathID))
	return Obj(o)
}

// UnityClass is a single decoded Unity object, produced uniformly by the
// binary object decoder and the YAML reader (spec §3, §4.6, §4.9).
type UnityClass struct {
	ClassID         int32
	ClassName       string
	Anchor          string
	ExtraAnchorData string
	Properties      *Object
}

// String renders a short diagnostic form, in the teacher's terse style.
func (c *UnityClass) String() string {
	return fmt.Sprintf("%s(%d) &%s", c.ClassName, c.ClassID, c.Anchor)
}
