package bundle

import (
	"encoding/binary"

	"github.com/saferwall/unityasset/compress"
	"github.com/saferwall/unityasset/internal/log"
	"github.com/saferwall/unityasset/reader"
	"github.com/saferwall/unityasset/serializedfile"
)

const hashSize = 16

// parseUnityFS decodes the UnityFS signature's header, blocks-info table
// and directory nodes, then reassembles and hosts every entry, per spec
// §4.8.
func parseUnityFS(r *reader.Reader, opts Options) (*Bundle, error) {
	r.SetOrder(binary.BigEndian)

	h := Header{Signature: "UnityFS"}

	version, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	h.Version = version

	unityVersion, err := r.ReadCString()
	if err != nil {
		return nil, err
	}
	h.UnityVersion = unityVersion

	unityRevision, err := r.ReadCString()
	if err != nil {
		return nil, err
	}
	h.UnityRevision = unityRevision

	size, err := r.ReadI64()
	if err != nil {
		return nil, err
	}
	h.Size = size

	compressedBlocksInfoSize, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	h.CompressedBlocksInfoSize = compressedBlocksInfoSize

	uncompressedBlocksInfoSize, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	h.UncompressedBlocksInfoSize = uncompressedBlocksInfoSize

	flags, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	h.Flags = flags

	if h.Version >= 7 {
		r.AlignTo(16)
	}

	// The source's BLOCK_INFO_AT_END flag is empirically ignored: the
	// blocks-info buffer is always read from the current (header) position,
	// per spec §4.8's recorded open-question decision.
	compressedBlocksInfo, err := r.ReadBytes(uint64(h.CompressedBlocksInfoSize))
	if err != nil {
		return nil, err
	}

	blocksInfoCodec := compress.Codec(h.Flags & 0x3F)
	blocksInfo, err := compress.Decompress(compressedBlocksInfo, blocksInfoCodec, int(h.UncompressedBlocksInfoSize))
	if err != nil {
		return nil, err
	}

	blocks, nodes, err := parseBlocksInfo(blocksInfo)
	if err != nil {
		return nil, err
	}

	totalUncompressed := uint64(0)
	for _, blk := range blocks {
		totalUncompressed += uint64(blk.UncompressedSize)
	}
	payload := make([]byte, 0, totalUncompressed)
	for _, blk := range blocks {
		compressedBlock, err := r.ReadBytes(uint64(blk.CompressedSize))
		if err != nil {
			return nil, err
		}
		codec := compress.Codec(blk.Flags & 0x3F)
		dec, err := compress.Decompress(compressedBlock, codec, int(blk.UncompressedSize))
		if err != nil {
			return nil, &InvalidFormatError{What: err.Error(), At: r.Position()}
		}
		payload = append(payload, dec...)
	}

	return assembleBundle(h, blocks, nodes, payload, opts)
}

// parseBlocksInfo decodes the blocks-info buffer: 16 hash bytes, a
// CompressionBlock table, then a DirectoryNode table, per spec §4.8/§6.
func parseBlocksInfo(data []byte) ([]CompressionBlock, []DirectoryNode, error) {
	r := reader.New(data, binary.BigEndian)

	if _, err := r.ReadBytes(hashSize); err != nil {
		return nil, nil, err
	}

	blockCount, err := r.ReadI32()
	if err != nil {
		return nil, nil, err
	}
	blocks := make([]CompressionBlock, 0, blockCount)
	for i := int32(0); i < blockCount; i++ {
		unc, err := r.ReadU32()
		if err != nil {
			return nil, nil, err
		}
		cmp, err := r.ReadU32()
		if err != nil {
			return nil, nil, err
		}
		flags, err := r.ReadU16()
		if err != nil {
			return nil, nil, err
		}
		blocks = append(blocks, CompressionBlock{UncompressedSize: unc, CompressedSize: cmp, Flags: flags})
	}

	nodeCount, err := r.ReadI32()
	if err != nil {
		return nil, nil, err
	}
	nodes := make([]DirectoryNode, 0, nodeCount)
	for i := int32(0); i < nodeCount; i++ {
		offset, err := r.ReadI64()
		if err != nil {
			return nil, nil, err
		}
		size, err := r.ReadI64()
		if err != nil {
			return nil, nil, err
		}
		nodeFlags, err := r.ReadU32()
		if err != nil {
			return nil, nil, err
		}
		name, err := r.ReadCString()
		if err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, DirectoryNode{Offset: offset, Size: size, Flags: nodeFlags, Name: name})
	}

	return blocks, nodes, nil
}

// assembleBundle validates every node against the reassembled payload and
// recursively parses SerializedFile entries, per spec §4.8/§8's
// `node.offset + node.size <= payload.len()` invariant.
func assembleBundle(h Header, blocks []CompressionBlock, nodes []DirectoryNode, payload []byte, opts Options) (*Bundle, error) {
	b := &Bundle{
		Header:    h,
		Blocks:    blocks,
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
			logger.Warnf("bundle: node %q failed to parse as a SerializedFile: %v", n.Name, err)
			return nil, err
		}
		b.Files[n.Name] = sf
	}

	return b, nil
}
