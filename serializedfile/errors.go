package serializedfile

import "fmt"

// InvalidFormatError reports a structural impossibility in the header or
// metadata, per spec §7.
type InvalidFormatError struct {
	What string
	At   uint64
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("serializedfile: invalid format at offset %d: %s", e.At, e.What)
}
