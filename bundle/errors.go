package bundle

import "fmt"

// InvalidFormatError reports an unrecognized signature or an impossible
// block/directory table, per spec §7.
type InvalidFormatError struct {
	What string
	At   uint64
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("bundle: invalid format at offset %d: %s", e.At, e.What)
}

// OutOfBoundsError is returned when a directory node's declared region
// would run past the decompressed payload, per spec §4.8's validation
// rule ("every directory node's [offset, offset+size) must fit inside
// the decompressed payload").
type OutOfBoundsError struct {
	Name               string
	Offset, Size, Len uint64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("bundle: node %q [%d:%d) out of bounds for payload of length %d", e.Name, e.Offset, e.Offset+e.Size, e.Len)
}
