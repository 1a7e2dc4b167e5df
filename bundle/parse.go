package bundle

import (
	"encoding/binary"

	"github.com/saferwall/unityasset/reader"
)

// Parse decodes an AssetBundle from data, dispatching on its signature to
// the UnityFS or legacy UnityWeb/UnityRaw/UnityArchive parser, per
// spec §4.8.
func Parse(data []byte, opts *Options) (*Bundle, error) {
	if opts == nil {
		opts = &Options{}
	}

	r := reader.New(data, binary.BigEndian)
	signature, err := r.ReadCString()
	if err != nil {
		return nil, err
	}

	switch signature {
	case "UnityFS":
		return parseUnityFS(r, *opts)
	case "UnityWeb", "UnityRaw", "UnityArchive":
		return parseLegacy(signature, r, *opts)
	default:
		return nil, &InvalidFormatError{What: "unrecognized signature " + signature, At: 0}
	}
}
