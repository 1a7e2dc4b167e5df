package bundle

import (
	"encoding/binary"

	"github.com/saferwall/unityasset/compress"
	"github.com/saferwall/unityasset/internal/log"
	"github.com/saferwall/unityasset/reader"
	"github.com/saferwall/unityasset/serializedfile"
)

// legacySizeGuess is the generous over-allocation factor applied when
// guessing a legacy LZMA body's decompressed size, since unlike UnityFS
// the legacy header transmits no uncompressed-size field (spec §4.8).
const legacySizeGuess = 4

// parseLegacy decodes the UnityWeb/UnityRaw fixed-offset layout: the
// remainder of the file after the signature is either a single LZMA1
// stream (UnityWeb) or the raw directory+data payload (UnityRaw), per
// spec §4.8.
func parseLegacy(signature string, r *reader.Reader, opts Options) (*Bundle, error) {
	body, err := r.ReadBytes(r.Remaining())
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch signature {
	case "UnityWeb":
		dec, err := compress.Decompress(body, compress.LZMA, len(body)*legacySizeGuess)
		if err != nil {
			return nil, &InvalidFormatError{What: "legacy LZMA body failed to decompress: " + err.Error(), At: 0}
		}
		payload = dec
	case "UnityRaw", "UnityArchive":
		payload = body
	default:
		return nil, &InvalidFormatError{What: "unrecognized legacy signature " + signature, At: 0}
	}

	dr := reader.New(payload, binary.BigEndian)
	fileCount, err := dr.ReadI32()
	if err != nil {
		return nil, err
	}
	nodes := make([]DirectoryNode, 0, fileCount)
	for i := int32(0); i < fileCount; i++ {
		name, err := dr.ReadCString()
		if err != nil {
			return nil, err
		}
		offset, err := dr.ReadU32()
		if err != nil {
			return nil, err
		}
		size, err := dr.ReadU32()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, DirectoryNode{Offset: int64(offset), Size: int64(size), Name: name})
	}

	b := &Bundle{
		Header:    Header{Signature: signature},
		Nodes:     nodes,
		Payload:   payload,
		Files:     make(map[string]*serializedfile.SerializedFile),
		Resources: make(map[string][]byte),
		opts:      opts,
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	for _, n := range nodes {
		if n.Offset < 0 || n.Size < 0 || uint64(n.Offset)+uint64(n.Size) > uint64(len(payload)) {
			return nil, &OutOfBoundsError{Name: n.Name, Offset: uint64(n.Offset), Size: uint64(n.Size), Len: uint64(len(payload))}
		}
		slice := payload[n.Offset : n.Offset+n.Size]

		if isResourceNode(n.Name) {
			b.Resources[n.Name] = slice
			continue
		}

		sf, err := serializedfile.Parse(slice, opts.SerializedFileOptions)
		if err != nil {
			logger.Warnf("bundle: legacy entry %q failed to parse as a SerializedFile: %v", n.Name, err)
			return nil, err
		}
		b.Files[n.Name] = sf
	}

	return b, nil
}
