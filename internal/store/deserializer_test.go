package store

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/golang/snappy"
)

type fakeStream struct {
	data []byte
}

func (f *fakeStream) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(f.data)) {
		return 0, errors.New("offset beyond stream")
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, errors.New("unexpected EOF")
	}
	return n, nil
}

func buildRegionBytes(ids []uint32) []byte {
	data := make([]byte, 4+4*len(ids))
	binary.LittleEndian.PutUint32(data[0:4], uint32(len(ids)))
	for i, id := range ids {
		binary.LittleEndian.PutUint32(data[4+4*i:8+4*i], id)
	}
	return data
}

func TestDeserializerReadRegion(t *testing.T) {
	raw := buildRegionBytes([]uint32{7, 8, 9})
	d := NewDeserializer(&fakeStream{data: raw})

	region, err := d.ReadRegion(0, len(raw), false)
	if err != nil {
		t.Fatalf("ReadRegion: %v", err)
	}
	if len(region.VertexIDs) != 3 || region.VertexIDs[1] != 8 {
		t.Fatalf("unexpected region: %+v", region)
	}
}

func TestDeserializerReadRegionCompressed(t *testing.T) {
	raw := buildRegionBytes([]uint32{1, 2, 3, 4})
	compressed := snappy.Encode(nil, raw)
	d := NewDeserializer(&fakeStream{data: compressed})

	region, err := d.ReadRegion(0, len(compressed), true)
	if err != nil {
		t.Fatalf("ReadRegion (compressed): %v", err)
	}
	if len(region.VertexIDs) != 4 || region.VertexIDs[3] != 4 {
		t.Fatalf("unexpected region after inflate: %+v", region)
	}
}

func TestDeserializerShortReadError(t *testing.T) {
	d := NewDeserializer(&fakeStream{data: []byte{1, 2, 3}})
	_, err := d.ReadRegion(0, 100, false)
	if err == nil {
		t.Fatal("expected a short-read error")
	}
}

func TestDeserializerNegativeLength(t *testing.T) {
	d := NewDeserializer(&fakeStream{data: []byte{1, 2, 3}})
	_, err := d.ReadRegion(0, -1, false)
	if err == nil {
		t.Fatal("expected error for negative length")
	}
}
