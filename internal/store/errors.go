package store

import "fmt"

// DeserializeError indicates a stream slice could not be turned into a
// typed record: the slice ran past the end of the stream, or the bytes
// read failed an internal consistency check.
type DeserializeError struct {
	Offset int64
	Length int
	Reason string
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("deserialize at offset=%d length=%d: %s", e.Offset, e.Length, e.Reason)
}

// ErrShortRead indicates fewer bytes were available than the caller's
// requested length.
type ErrShortRead struct {
	Offset int64
	Wanted int
	Got    int
}

func (e *ErrShortRead) Error() string {
	return fmt.Sprintf("short read at offset=%d: wanted %d bytes, got %d", e.Offset, e.Wanted, e.Got)
}
