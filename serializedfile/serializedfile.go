// Package serializedfile parses Unity's SerializedFile container: header,
// type/object/external metadata tables, and (lazily) the per-object
// TypeTree-driven decode (spec §3, §4.6, §4.7).
package serializedfile

import (
	"github.com/saferwall/unityasset/internal/log"
	"github.com/saferwall/unityasset/metadata"
	"github.com/saferwall/unityasset/object"
	"github.com/saferwall/unityasset/reader"
	"github.com/saferwall/unityasset/serializer"
	"github.com/saferwall/unityasset/value"
)

// Options configures parsing, mirroring the teacher's pe.Options
// nil-means-defaults convention.
type Options struct {
	// LazyObjects defers per-object TypeTree decode to GetObjects()/
	// DecodeObjectAt() calls instead of eagerly decoding every object at Parse time.
	LazyObjects bool

	Logger *log.Helper
}

// SerializedFile is a fully parsed header + metadata + payload, per spec §3.
type SerializedFile struct {
	Header Header

	UnityVersion     string
	TargetPlatform   int32
	EnableTypeTree   bool
	Types            []metadata.SerializedType
	BigIDEnabled     bool
	Objects          []metadata.ObjectInfo
	ScriptTypes      []metadata.LocalSerializedObjectIdentifier
	Externals        []metadata.FileIdentifier
	RefTypes         []metadata.SerializedType
	UserInformation  string

	Payload []byte

	// DecodeErrors collects non-fatal per-object decode failures, mirroring
	// pe.File.Anomalies: sibling objects remain decodable even when one
	// object's TypeTree decode fails (spec §7).
	DecodeErrors []error

	opts   Options
	parser *serializer.Parser
}

// Parse decodes a SerializedFile from data: header, metadata and the
// decompressed payload must already be assembled by the caller (the bundle
// package does this for embedded files; a bare .assets file is its own
// payload starting at data_offset).
func Parse(data []byte, opts *Options) (*SerializedFile, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	r := reader.New(data, nil) // big-endian until the header declares otherwise
	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	sf := &SerializedFile{Header: header, opts: *opts}

	if header.Version >= 7 {
		v, err := r.ReadCString()
		if err != nil {
			return nil, err
		}
		sf.UnityVersion = v
	}
	if header.Version >= 8 {
		tp, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		sf.TargetPlatform = tp
	}
	if header.Version >= 13 {
		ett, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		sf.EnableTypeTree = ett
	} else {
		sf.EnableTypeTree = true
	}

	typeCount, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	sf.Types = make([]metadata.SerializedType, 0, typeCount)
	for i := int32(0); i < typeCount; i++ {
		st, err := readSerializedType(r, header.Version, sf.EnableTypeTree, false)
		if err != nil {
			return nil, err
		}
		sf.Types = append(sf.Types, st)
	}

	if header.Version >= 7 && header.Version < 14 {
		big, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		sf.BigIDEnabled = big
	}
	if header.Version >= 14 {
		sf.BigIDEnabled = true
	}

	objCount, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	sf.Objects = make([]metadata.ObjectInfo, 0, objCount)
	for i := int32(0); i < objCount; i++ {
		oi, err := readObjectInfo(r, header, sf)
		if err != nil {
			return nil, err
		}
		sf.Objects = append(sf.Objects, oi)
	}

	if header.Version >= 11 {
		scriptCount, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		sf.ScriptTypes = make([]metadata.LocalSerializedObjectIdentifier, 0, scriptCount)
		for i := int32(0); i < scriptCount; i++ {
			r.AlignTo(4)
			localFileIndex, err := r.ReadI32()
			if err != nil {
				return nil, err
			}
			var localID int64
			if header.Version < 14 {
				v, err := r.ReadI32()
				if err != nil {
					return nil, err
				}
				localID = int64(v)
			} else {
				r.AlignTo(4)
				v, err := r.ReadI64()
				if err != nil {
					return nil, err
				}
				localID = v
			}
			sf.ScriptTypes = append(sf.ScriptTypes, metadata.LocalSerializedObjectIdentifier{
				LocalSerializedFileIndex: localFileIndex,
				LocalIdentifierInFile:    localID,
			})
		}
	}

	extCount, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	sf.Externals = make([]metadata.FileIdentifier, 0, extCount)
	for i := int32(0); i < extCount; i++ {
		var fi metadata.FileIdentifier
		if header.Version >= 6 {
			if _, err := r.ReadCString(); err != nil { // temp empty path per early versions
				return nil, err
			}
		}
		if header.Version >= 5 {
			guid, err := r.ReadBytes(16)
			if err != nil {
				return nil, err
			}
			copy(fi.GUID[:], guid)
			typ, err := r.ReadI32()
			if err != nil {
				return nil, err
			}
			fi.Type = typ
		}
		path, err := r.ReadCString()
		if err != nil {
			return nil, err
		}
		fi.PathName = path
		sf.Externals = append(sf.Externals, fi)
	}

	if header.Version >= 20 {
		refCount, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		sf.RefTypes = make([]metadata.SerializedType, 0, refCount)
		for i := int32(0); i < refCount; i++ {
			st, err := readSerializedType(r, header.Version, sf.EnableTypeTree, true)
			if err != nil {
				return nil, err
			}
			sf.RefTypes = append(sf.RefTypes, st)
		}
	}

	if header.Version >= 5 {
		ui, err := r.ReadCString()
		if err != nil {
			return nil, err
		}
		sf.UserInformation = ui
	}

	sf.Payload = data
	sf.parser = serializer.New(serializer.Options{})

	if !opts.LazyObjects {
		sf.decodeAll()
	}

	return sf, nil
}

// readObjectInfo reads one ObjectInfo record, per spec §4.7 step 5.
func readObjectInfo(r *reader.Reader, header Header, sf *SerializedFile) (metadata.ObjectInfo, error) {
	var oi metadata.ObjectInfo
	oi.ByteOrder = header.ByteOrder

	r.AlignTo(4)

	var pathID int64
	switch {
	case sf.BigIDEnabled:
		v, err := r.ReadI64()
		if err != nil {
			return oi, err
		}
		pathID = v
	case header.Version < 14:
		v, err := r.ReadI32()
		if err != nil {
			return oi, err
		}
		pathID = int64(v)
	default:
		r.AlignTo(4)
		v, err := r.ReadI64()
		if err != nil {
			return oi, err
		}
		pathID = v
	}
	oi.PathID = pathID

	if header.Version >= 22 {
		bs, err := r.ReadU64()
		if err != nil {
			return oi, err
		}
		oi.ByteStart = bs
	} else {
		bs, err := r.ReadU32()
		if err != nil {
			return oi, err
		}
		oi.ByteStart = uint64(bs)
	}

	byteSize, err := r.ReadU32()
	if err != nil {
		return oi, err
	}
	oi.ByteSize = byteSize

	typeID, err := r.ReadI32()
	if err != nil {
		return oi, err
	}
	oi.TypeID = typeID

	if header.Version < 16 {
		classID, err := r.ReadU16()
		if err != nil {
			return oi, err
		}
		oi.ClassID = int32(classID)
	} else if int(typeID) >= 0 && int(typeID) < len(sf.Types) {
		oi.ClassID = sf.Types[typeID].ClassID
	} else {
		oi.ClassID = 0
	}

	return oi, nil
}

// decodeAll eagerly decodes every object, recording non-fatal per-object
// failures in DecodeErrors, per spec §7's "sibling objects remain
// decodable" rule. Used unless Options.LazyObjects is set.
func (sf *SerializedFile) decodeAll() {
	for _, oi := range sf.Objects {
		if _, err := object.Decode(sf.Payload, oi, sf.Types, uint64(sf.Header.DataOffset), sf.parser); err != nil {
			sf.opts.Logger.Warnf("object %d decode failed: %v", oi.PathID, err)
			sf.DecodeErrors = append(sf.DecodeErrors, err)
		}
	}
}

// GetObjects decodes every ObjectInfo lazily, in file order, per spec §4.7
// and §5's ordering guarantee.
func (sf *SerializedFile) GetObjects() ([]*value.UnityClass, error) {
	classes := make([]*value.UnityClass, 0, len(sf.Objects))
	for _, oi := range sf.Objects {
		class, err := object.Decode(sf.Payload, oi, sf.Types, uint64(sf.Header.DataOffset), sf.parser)
		if err != nil {
			sf.DecodeErrors = append(sf.DecodeErrors, err)
		}
		classes = append(classes, class)
	}
	return classes, nil
}

// DecodeObjectAt decodes the i'th ObjectInfo on its own, independent of the
// others. asyncwrap uses this to fan the per-object decode of one file out
// across a bounded worker pool (spec §5); sf.Payload/Types/parser are
// read-only after Parse, so concurrent calls are safe.
func (sf *SerializedFile) DecodeObjectAt(i int) (*value.UnityClass, error) {
	return object.Decode(sf.Payload, sf.Objects[i], sf.Types, uint64(sf.Header.DataOffset), sf.parser)
}

// NumObjects returns len(sf.Objects), for callers driving DecodeObjectAt
// without reaching into the Objects slice directly.
func (sf *SerializedFile) NumObjects() int { return len(sf.Objects) }

// ExternalPath resolves a 1-based fileID against Externals (0 means "this
// file"). Supplemented from the Rust original's asset.rs resolve_external.
func (sf *SerializedFile) ExternalPath(fileID int32) (string, bool) {
	if fileID == 0 {
		return "", false
	}
	idx := int(fileID) - 1
	if idx < 0 || idx >= len(sf.Externals) {
		return "", false
	}
	return sf.Externals[idx].PathName, true
}
