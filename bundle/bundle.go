// Package bundle parses Unity's AssetBundle container: the UnityFS format
// (signature, compression block table, directory nodes) and the legacy
// UnityWeb/UnityRaw fixed-offset layout, per spec §4.8.
package bundle

import (
	"os"
	"strings"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/saferwall/unityasset/internal/log"
	"github.com/saferwall/unityasset/serializedfile"
)

// CompressionBlock describes one entry in a UnityFS blocks-info table, per
// spec §4.8/§6.
type CompressionBlock struct {
	UncompressedSize uint32
	CompressedSize   uint32
	Flags            uint16
}

// DirectoryNode locates one file within a bundle's decompressed payload,
// per spec §4.8.
type DirectoryNode struct {
	Offset int64
	Size   int64
	Flags  uint32
	Name   string
}

// Header is the fixed UnityFS preamble, per spec §4.8.
type Header struct {
	Signature                  string
	Version                    uint32
	UnityVersion               string
	UnityRevision              string
	Size                       int64
	CompressedBlocksInfoSize   uint32
	UncompressedBlocksInfoSize uint32
	Flags                      uint32
}

// isResourceNode reports whether a directory node is a raw resource stream
// (external texture/audio data) rather than a SerializedFile, per spec
// §4.8 ("nodes whose names end in .resS/.resource are raw resource
// streams").
func isResourceNode(name string) bool {
	return strings.HasSuffix(name, ".resS") || strings.HasSuffix(name, ".resource")
}

// Options configures parsing, mirroring the teacher's pe.Options
// nil-means-defaults convention.
type Options struct {
	Logger *log.Helper

	// SerializedFileOptions is forwarded to every embedded SerializedFile.
	SerializedFileOptions *serializedfile.Options
}

// Bundle is a fully parsed AssetBundle: header, block/directory tables,
// the reassembled decompressed payload, and the parsed entries it hosts.
type Bundle struct {
	Header  Header
	Blocks  []CompressionBlock
	Nodes   []DirectoryNode
	Payload []byte

	// Files holds recursively parsed SerializedFiles, keyed by directory
	// node name.
	Files map[string]*serializedfile.SerializedFile

	// Resources holds raw .resS/.resource byte streams, keyed by name.
	Resources map[string][]byte

	mm mmap.MMap
	f  *os.File

	opts Options
}

// ContainerEntry is one row of the bundle's directory-node table (it does
// not decode the AssetBundle object's m_Container paths), giving callers a
// uniform view over parsed
// SerializedFiles and raw resource streams (original_source/'s
// bundle.rs Container abstraction, re-expressed here).
type ContainerEntry struct {
	Name  string
	Node  DirectoryNode
	Asset *serializedfile.SerializedFile // nil for resource streams
}

// Container returns every directory node as a uniform table, in file
// order, supplementing the distilled spec with a convenience accessor
// over Files/Resources/Nodes.
func (b *Bundle) Container() []ContainerEntry {
	entries := make([]ContainerEntry, 0, len(b.Nodes))
	for _, n := range b.Nodes {
		entries = append(entries, ContainerEntry{
			Name:  n.Name,
			Node:  n,
			Asset: b.Files[n.Name],
		})
	}
	return entries
}

// Close releases the memory-mapped file backing the bundle, if any. It is
// a no-op for bundles parsed from an in-memory byte slice via Parse.
func (b *Bundle) Close() error {
	if b.mm != nil {
		if err := b.mm.Unmap(); err != nil {
			return err
		}
	}
	if b.f != nil {
		return b.f.Close()
	}
	return nil
}

// Open memory-maps path and parses it as an AssetBundle, mirroring the
// teacher's pe.New file-backed constructor.
func Open(path string, opts *Options) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	b, err := Parse(m, opts)
	if err != nil {
		m.Unmap()
		f.Close()
		return nil, err
	}
	b.mm = m
	b.f = f
	return b, nil
}
