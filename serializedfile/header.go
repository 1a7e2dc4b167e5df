package serializedfile

import (
	"encoding/binary"

	"github.com/saferwall/unityasset/reader"
)

// Header is the fixed-shape prefix of a SerializedFile, per spec §3/§4.7.
// Field widths change at format 22 (u32 -> i64 for size/offset) and the
// endian byte's position changes at format 9.
type Header struct {
	MetadataSize uint32
	FileSize     int64
	Version      int32 // file-format version, not the Unity editor version
	DataOffset   int64
	Endian       byte
	ByteOrder    binary.ByteOrder
}

// readHeader implements spec §4.7 steps 1-3: the header is always read
// big-endian first; for format >= 9 the endian byte follows immediately,
// otherwise it lives at file_size-metadata_size and must be read via a
// temporary seek; for format >= 22 the four size/offset fields are
// re-read as wider integers in the header-declared byte order.
func readHeader(r *reader.Reader) (Header, error) {
	var h Header

	metadataSize, err := r.ReadU32()
	if err != nil {
		return h, err
	}
	fileSize, err := r.ReadU32()
	if err != nil {
		return h, err
	}
	version, err := r.ReadU32()
	if err != nil {
		return h, err
	}
	dataOffset, err := r.ReadU32()
	if err != nil {
		return h, err
	}

	h.MetadataSize = metadataSize
	h.FileSize = int64(fileSize)
	h.Version = int32(version)
	h.DataOffset = int64(dataOffset)

	if h.Version >= 9 {
		endian, err := r.ReadU8()
		if err != nil {
			return h, err
		}
		if _, err := r.ReadBytes(3); err != nil { // reserved[3]
			return h, err
		}
		h.Endian = endian
	} else {
		savedPos := r.Position()
		seekTo := h.FileSize - int64(h.MetadataSize)
		if seekTo < 0 {
			return h, &InvalidFormatError{What: "file_size - metadata_size is negative", At: savedPos}
		}
		r.Seek(uint64(seekTo))
		endian, err := r.ReadU8()
		if err != nil {
			return h, err
		}
		h.Endian = endian
		r.Seek(savedPos)
	}

	h.ByteOrder = byteOrderFromEndian(h.Endian)
	r.SetOrder(h.ByteOrder)

	if h.Version >= 22 {
		metadataSize2, err := r.ReadU32()
		if err != nil {
			return h, err
		}
		fileSize2, err := r.ReadI64()
		if err != nil {
			return h, err
		}
		dataOffset2, err := r.ReadI64()
		if err != nil {
			return h, err
		}
		if _, err := r.ReadI64(); err != nil { // skip an i64
			return h, err
		}
		h.MetadataSize = metadataSize2
		h.FileSize = fileSize2
		h.DataOffset = dataOffset2
	}

	if h.DataOffset == 0 {
		return h, &InvalidFormatError{What: "data_offset == 0", At: r.Position()}
	}
	if h.FileSize <= h.DataOffset {
		return h, &InvalidFormatError{What: "file_size <= data_offset", At: r.Position()}
	}
	if h.Version > 99 {
		return h, &InvalidFormatError{What: "version > 99", At: r.Position()}
	}

	return h, nil
}

func byteOrderFromEndian(endian byte) binary.ByteOrder {
	if endian == 0 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
