package serializer

import "fmt"

// ArrayTooLargeError is returned when an array's declared size exceeds the
// safety bound, per spec §4.5 and §7.
type ArrayTooLargeError struct {
	Requested int64
	Limit     int64
}

func (e *ArrayTooLargeError) Error() string {
	return fmt.Sprintf("serializer: array size %d exceeds limit %d", e.Requested, e.Limit)
}

// TypeTreeMismatchError is returned when the serializer cannot make sense
// of a node's declared shape, per spec §7.
type TypeTreeMismatchError struct {
	Field    string
	Expected string
	Got      string
}

func (e *TypeTreeMismatchError) Error() string {
	return fmt.Sprintf("serializer: field %q expected %s, got %s", e.Field, e.Expected, e.Got)
}
