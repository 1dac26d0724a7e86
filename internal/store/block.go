package store

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Block is a contiguous slab of up to blockSize consecutive vertex ids
// together with their outgoing CH arcs.
//
// Binary layout (little-endian), matching spec §C/§F:
//
//	u16 vertexCount
//	vertexCount * {
//	    f32 lat
//	    f32 lon
//	    u32 arcIndex
//	    u32 arcCount
//	}
//	u32 arcCount (total arcs in this block)
//	arcCount * {
//	    u32 targetId
//	    f32 forwardWeight
//	    f32 backwardWeight
//	    u32 forwardContractedId
//	    u32 backwardContractedId
//	    u8  contractedDirectionBits
//	    u32 tagsValue
//	}
type Block struct {
	Vertices []VertexRecord
	Arcs     []ArcRecord
}

// VertexRecord is one vertex's decoded coordinates and the window into
// Block.Arcs holding its outgoing arcs.
type VertexRecord struct {
	Lat, Lon float32
	ArcIndex uint32
	ArcCount uint32
}

// ArcRecord is one CH arc, as stored on whichever endpoint owns it.
type ArcRecord struct {
	TargetID                uint32
	ForwardWeight           float32
	BackwardWeight          float32
	ForwardContractedID     uint32
	BackwardContractedID    uint32
	ContractedDirectionBits uint8
	TagsValue               uint32
}

const (
	vertexRecordSize = 4 + 4 + 4 + 4  // lat, lon, arcIndex, arcCount
	arcRecordSize    = 4 + 4 + 4 + 4 + 4 + 1 + 4
)

// decodeBlock parses a Block from its on-disk byte slice.
func decodeBlock(data []byte, offset int64) (*Block, error) {
	c := &cursor{data: data, offset: offset}

	vertexCount, err := c.u16()
	if err != nil {
		return nil, fmt.Errorf("block vertex count: %w", err)
	}
	if err := c.need(int(vertexCount) * vertexRecordSize); err != nil {
		return nil, fmt.Errorf("block vertex table (%d vertices): %w", vertexCount, err)
	}

	vertices := make([]VertexRecord, vertexCount)
	for i := range vertices {
		lat, err := c.f32()
		if err != nil {
			return nil, fmt.Errorf("block vertex %d lat: %w", i, err)
		}
		lon, err := c.f32()
		if err != nil {
			return nil, fmt.Errorf("block vertex %d lon: %w", i, err)
		}
		arcIndex, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("block vertex %d arcIndex: %w", i, err)
		}
		arcCount, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("block vertex %d arcCount: %w", i, err)
		}
		vertices[i] = VertexRecord{Lat: lat, Lon: lon, ArcIndex: arcIndex, ArcCount: arcCount}
	}

	arcCount, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("block arc count: %w", err)
	}
	if err := c.need(int(arcCount) * arcRecordSize); err != nil {
		return nil, fmt.Errorf("block arc table (%d arcs): %w", arcCount, err)
	}

	arcs := make([]ArcRecord, arcCount)
	for i := range arcs {
		targetID, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("arc %d targetId: %w", i, err)
		}
		fw, err := c.f32()
		if err != nil {
			return nil, fmt.Errorf("arc %d forwardWeight: %w", i, err)
		}
		bw, err := c.f32()
		if err != nil {
			return nil, fmt.Errorf("arc %d backwardWeight: %w", i, err)
		}
		fc, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("arc %d forwardContractedId: %w", i, err)
		}
		bc, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("arc %d backwardContractedId: %w", i, err)
		}
		dirBits, err := c.u8()
		if err != nil {
			return nil, fmt.Errorf("arc %d contractedDirectionBits: %w", i, err)
		}
		tags, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("arc %d tagsValue: %w", i, err)
		}
		arcs[i] = ArcRecord{
			TargetID:                targetID,
			ForwardWeight:           fw,
			BackwardWeight:          bw,
			ForwardContractedID:     fc,
			BackwardContractedID:    bc,
			ContractedDirectionBits: dirBits,
			TagsValue:               tags,
		}
	}

	for i, v := range vertices {
		if uint64(v.ArcIndex)+uint64(v.ArcCount) > uint64(len(arcs)) {
			return nil, &DeserializeError{Offset: offset, Length: len(data),
				Reason: fmt.Sprintf("vertex %d arc window [%d,%d) exceeds %d arcs", i, v.ArcIndex, v.ArcIndex+v.ArcCount, len(arcs))}
		}
	}

	return &Block{Vertices: vertices, Arcs: arcs}, nil
}

// Point is a single intermediate geographic coordinate on an edge's
// geometry.
type Point struct {
	Lat, Lon float32
}

// BlockCoordinates is the parallel shape block: one optional polyline
// of intermediate coordinates per arc in the matching Block.
//
// Binary layout (little-endian):
//
//	u32 arcCount
//	arcCount * {
//	    u16 pointCount
//	    pointCount * { f32 lat, f32 lon }
//	}
type BlockCoordinates struct {
	Arcs [][]Point
}

func decodeBlockCoordinates(data []byte, offset int64) (*BlockCoordinates, error) {
	c := &cursor{data: data, offset: offset}

	arcCount, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("shape arc count: %w", err)
	}

	arcs := make([][]Point, arcCount)
	for i := range arcs {
		pointCount, err := c.u16()
		if err != nil {
			return nil, fmt.Errorf("shape arc %d point count: %w", i, err)
		}
		points := make([]Point, pointCount)
		for j := range points {
			lat, err := c.f32()
			if err != nil {
				return nil, fmt.Errorf("shape arc %d point %d lat: %w", i, j, err)
			}
			lon, err := c.f32()
			if err != nil {
				return nil, fmt.Errorf("shape arc %d point %d lon: %w", i, j, err)
			}
			points[j] = Point{Lat: lat, Lon: lon}
		}
		arcs[i] = points
	}

	return &BlockCoordinates{Arcs: arcs}, nil
}

// Region is the set of vertex ids whose coordinates fall inside one map
// tile at the reader's configured zoom.
//
// Binary layout (little-endian):
//
//	u32 vertexCount
//	vertexCount * u32 vertexId
type Region struct {
	VertexIDs []uint32
}

func decodeRegion(data []byte, offset int64) (*Region, error) {
	c := &cursor{data: data, offset: offset}

	vertexCount, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("region vertex count: %w", err)
	}

	ids := make([]uint32, vertexCount)
	for i := range ids {
		id, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("region vertex %d: %w", i, err)
		}
		ids[i] = id
	}

	return &Region{VertexIDs: ids}, nil
}

// cursor is a small sequential byte-slice reader, in the style of the
// teacher's hand-rolled binary field parsing (no reflection-based
// binary.Read).
type cursor struct {
	data   []byte
	pos    int
	offset int64 // stream offset of data[0], for error messages
}

func (c *cursor) need(n int) error {
	if c.pos+n > len(c.data) {
		return &DeserializeError{
			Offset: c.offset + int64(c.pos),
			Length: len(c.data),
			Reason: "record truncated",
		}
	}
	return nil
}

func (c *cursor) u8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) u16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos : c.pos+2])
	c.pos += 2
	return v, nil
}

func (c *cursor) u32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

func (c *cursor) f32() (float32, error) {
	v, err := c.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}
