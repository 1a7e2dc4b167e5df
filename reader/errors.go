package reader

import "fmt"

// NotEnoughDataError is returned when a read would run past the end of the
// buffer, per spec §7 (NotEnoughData{need, have, at}).
type NotEnoughDataError struct {
	Need uint64
	Have uint64
	At   uint64
}

func (e *NotEnoughDataError) Error() string {
	return fmt.Sprintf("reader: not enough data at offset %d: need %d, have %d", e.At, e.Need, e.Have)
}

// InvalidUTF8Error is returned when a string read does not decode as valid
// UTF-8, per spec §7.
type InvalidUTF8Error struct {
	At uint64
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("reader: invalid utf-8 at offset %d", e.At)
}
