// Package store implements the leaf-level binary reading for a
// block-paged Contraction-Hierarchy graph stream: pulling a typed
// record out of an (offset, length) slice on demand, and the two index
// structures (block index, region index) that translate a logical id
// into such a slice. Nothing in this package scans the stream; every
// read is bounded by coordinates the caller already computed.
package store

import (
	"fmt"
	"io"

	"github.com/golang/snappy"
)

// RecordKind selects which of the three typed records a stream slice
// decodes to.
type RecordKind int

const (
	KindBlock RecordKind = iota
	KindShape
	KindRegion
)

// Deserializer pulls one typed record from [offset, offset+length) of
// a backing stream. It never seeks past what the caller asked for and
// keeps no notion of a "current position" between calls, so the same
// slice can be read repeatedly with value-equal results.
type Deserializer struct {
	stream io.ReaderAt
}

// NewDeserializer wraps a seekable backing stream. The stream is not
// owned by the Deserializer (the caller's Reader closes it).
func NewDeserializer(stream io.ReaderAt) *Deserializer {
	return &Deserializer{stream: stream}
}

// ReadBlock materializes the Block at [offset, offset+length).
// mayBeCompressed indicates the slice was written through a snappy
// block compressor; the deserializer transparently inflates it before
// decoding fields.
func (d *Deserializer) ReadBlock(offset int64, length int, mayBeCompressed bool) (*Block, error) {
	raw, err := d.readSlice(offset, length, mayBeCompressed)
	if err != nil {
		return nil, err
	}
	return decodeBlock(raw, offset)
}

// ReadBlockCoordinates materializes the BlockCoordinates at
// [offset, offset+length).
func (d *Deserializer) ReadBlockCoordinates(offset int64, length int, mayBeCompressed bool) (*BlockCoordinates, error) {
	raw, err := d.readSlice(offset, length, mayBeCompressed)
	if err != nil {
		return nil, err
	}
	return decodeBlockCoordinates(raw, offset)
}

// ReadRegion materializes the Region at [offset, offset+length).
func (d *Deserializer) ReadRegion(offset int64, length int, mayBeCompressed bool) (*Region, error) {
	raw, err := d.readSlice(offset, length, mayBeCompressed)
	if err != nil {
		return nil, err
	}
	return decodeRegion(raw, offset)
}

func (d *Deserializer) readSlice(offset int64, length int, mayBeCompressed bool) ([]byte, error) {
	if length < 0 {
		return nil, &DeserializeError{Offset: offset, Length: length, Reason: "negative length"}
	}
	if length == 0 {
		return nil, nil
	}

	buf := make([]byte, length)
	n, err := d.stream.ReadAt(buf, offset)
	if err != nil && !(err == io.EOF && n == length) {
		return nil, &DeserializeError{
			Offset: offset, Length: length,
			Reason: fmt.Sprintf("stream read failed: %v", err),
		}
	}
	if n != length {
		return nil, &ErrShortRead{Offset: offset, Wanted: length, Got: n}
	}

	if !mayBeCompressed {
		return buf, nil
	}

	inflated, err := snappy.Decode(nil, buf)
	if err != nil {
		return nil, &DeserializeError{Offset: offset, Length: length, Reason: fmt.Sprintf("snappy decode: %v", err)}
	}
	return inflated, nil
}
