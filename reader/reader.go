// Package reader provides an endian-aware cursor over an immutable byte
// buffer, the leaf primitive every other package in this module builds on
// (spec §4.1). It generalizes the offset-based ReadUint32/ReadUint64/
// structUnpack helpers from the teacher's helper.go into a single cursor
// type that also tracks position, matching the style of
// arloliu/mebo/endian's EndianEngine (binary.ByteOrder plus
// AppendByteOrder) for byte-order handling.
package reader

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Reader is a forward-reading, seekable cursor over data. It never mutates
// the buffer; byte slices it returns alias it rather than copy it.
type Reader struct {
	data  []byte
	pos   uint64
	order binary.ByteOrder
}

// New returns a Reader over data in the given byte order.
func New(data []byte, order binary.ByteOrder) *Reader {
	if order == nil {
		order = binary.BigEndian
	}
	return &Reader{data: data, order: order}
}

// SetOrder switches the byte order used by subsequent fixed-width reads,
// matching spec §4.1 ("Endianness may be swapped mid-stream").
func (r *Reader) SetOrder(order binary.ByteOrder) { r.order = order }

// Order returns the reader's current byte order.
func (r *Reader) Order() binary.ByteOrder { return r.order }

// Position returns the current cursor offset.
func (r *Reader) Position() uint64 { return r.pos }

// Len returns the total buffer length.
func (r *Reader) Len() uint64 { return uint64(len(r.data)) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() uint64 {
	if r.pos >= uint64(len(r.data)) {
		return 0
	}
	return uint64(len(r.data)) - r.pos
}

// Seek moves the cursor to an absolute offset. It is not itself bounds
// checked against reads; a subsequent read past the end fails normally.
func (r *Reader) Seek(pos uint64) { r.pos = pos }

// Bytes returns the underlying buffer (read-only use expected).
func (r *Reader) Bytes() []byte { return r.data }

func (r *Reader) need(n uint64) error {
	if r.pos+n > uint64(len(r.data)) || r.pos+n < r.pos {
		return &NotEnoughDataError{Need: n, Have: r.Remaining(), At: r.pos}
	}
	return nil
}

// ReadBytes returns the next n bytes and advances the cursor.
func (r *Reader) ReadBytes(n uint64) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadU8 reads an unsigned 8-bit integer.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads a signed 8-bit integer.
func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

// ReadBool reads one byte; nonzero is true, per spec §4.1.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	return v != 0, err
}

// ReadU16 reads an unsigned 16-bit integer in the reader's byte order.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

// ReadI16 reads a signed 16-bit integer.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU32 reads an unsigned 32-bit integer.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

// ReadI32 reads a signed 32-bit integer.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadU64 reads an unsigned 64-bit integer.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(b), nil
}

// ReadI64 reads a signed 64-bit integer.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF32 reads an IEEE-754 single-precision float.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF64 reads an IEEE-754 double-precision float.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadCString reads a NUL-terminated UTF-8 string and advances the cursor
// past the terminator, per spec §4.1.
func (r *Reader) ReadCString() (string, error) {
	start := r.pos
	end := start
	for end < uint64(len(r.data)) && r.data[end] != 0 {
		end++
	}
	if end >= uint64(len(r.data)) {
		return "", &NotEnoughDataError{Need: 1, Have: 0, At: end}
	}
	s := r.data[start:end]
	if !utf8.Valid(s) {
		return "", &InvalidUTF8Error{At: start}
	}
	r.pos = end + 1
	return string(s), nil
}

// ReadLengthPrefixedString reads a u32 length, that many bytes as UTF-8,
// then aligns to 4, per spec §4.1.
func (r *Reader) ReadLengthPrefixedString() (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(uint64(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &InvalidUTF8Error{At: r.pos - uint64(n)}
	}
	s := string(b)
	r.AlignTo(4)
	return s, nil
}

// ReadAlignedString is an alias of ReadLengthPrefixedString: Unity encodes
// both the same way (length, bytes, align to 4), per spec §4.1.
func (r *Reader) ReadAlignedString() (string, error) {
	return r.ReadLengthPrefixedString()
}

// AlignTo advances the cursor to the next multiple of n (relative to the
// start of the buffer), per spec §4.1.
func (r *Reader) AlignTo(n uint64) {
	if n == 0 {
		return
	}
	rem := r.pos % n
	if rem != 0 {
		r.pos += n - rem
	}
}
