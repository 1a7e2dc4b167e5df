package typetree

import "github.com/saferwall/unityasset/reader"

// isBlobFormat reports whether file-format-version V uses the flat blob
// encoding (V == 10 or V >= 12) rather than the legacy depth-first
// encoding (V <= 9 and V == 11), per spec §4.4.
func isBlobFormat(fileFormatVersion int32) bool {
	return fileFormatVersion == 10 || fileFormatVersion >= 12
}

// Read decodes a TypeTree using the shape appropriate to fileFormatVersion.
func Read(r *reader.Reader, fileFormatVersion int32) (*Tree, error) {
	if isBlobFormat(fileFormatVersion) {
		return ReadBlob(r, fileFormatVersion)
	}
	return ReadLegacy(r)
}
