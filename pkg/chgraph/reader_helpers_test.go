package chgraph

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// memStream is an in-memory Stream for tests: a byte slice readable
// at arbitrary offsets, recording whether it has been closed.
type memStream struct {
	data   []byte
	closed bool
}

func (m *memStream) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(m.data)) {
		return 0, errors.New("chgraph test: offset out of range")
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, errors.New("chgraph test: short read")
	}
	return n, nil
}

func (m *memStream) Close() error {
	m.closed = true
	return nil
}

// testArc is the fixture description of one CH arc, owned by whatever
// testVertex lists it.
type testArc struct {
	Target uint32
	FW, BW float32
	FC, BC uint32
	Dir    uint8
	Tags   uint32
	Shape  [][2]float32
}

// testVertex is the fixture description of one vertex and its
// outgoing arcs within a single block.
type testVertex struct {
	Lat, Lon float32
	Arcs     []testArc
}

func putU16(buf *bytes.Buffer, v uint16) { binary.Write(buf, binary.LittleEndian, v) }
func putU32(buf *bytes.Buffer, v uint32) { binary.Write(buf, binary.LittleEndian, v) }
func putU8(buf *bytes.Buffer, v uint8)   { binary.Write(buf, binary.LittleEndian, v) }
func putF32(buf *bytes.Buffer, v float32) {
	binary.Write(buf, binary.LittleEndian, v)
}

// encodeBlock renders one Block/BlockCoordinates byte-pair in the
// layout documented on store.Block.
func encodeBlock(vertices []testVertex) (blockBytes, shapeBytes []byte) {
	var block, shape bytes.Buffer

	type laidOutArc struct {
		arc testArc
	}
	var arcs []laidOutArc

	putU16(&block, uint16(len(vertices)))
	for _, v := range vertices {
		putF32(&block, v.Lat)
		putF32(&block, v.Lon)
		putU32(&block, uint32(len(arcs)))
		putU32(&block, uint32(len(v.Arcs)))
		for _, a := range v.Arcs {
			arcs = append(arcs, laidOutArc{arc: a})
		}
	}

	putU32(&block, uint32(len(arcs)))
	putU32(&shape, uint32(len(arcs)))
	for _, la := range arcs {
		a := la.arc
		putU32(&block, a.Target)
		putF32(&block, a.FW)
		putF32(&block, a.BW)
		putU32(&block, a.FC)
		putU32(&block, a.BC)
		putU8(&block, a.Dir)
		putU32(&block, a.Tags)

		putU16(&shape, uint16(len(a.Shape)))
		for _, pt := range a.Shape {
			putF32(&shape, pt[0])
			putF32(&shape, pt[1])
		}
	}

	return block.Bytes(), shape.Bytes()
}

func encodeRegion(vertexIDs []uint32) []byte {
	var buf bytes.Buffer
	putU32(&buf, uint32(len(vertexIDs)))
	for _, id := range vertexIDs {
		putU32(&buf, id)
	}
	return buf.Bytes()
}

// chStreamFixture accumulates a full synthetic stream across zones.
type chStreamFixture struct {
	blocksBuf, shapesBuf, regionsBuf bytes.Buffer
	blockLoc, shapeLoc               []uint64
	regionLoc                        []uint64
	regionIDs                        []uint64
}

func newCHStreamFixture() *chStreamFixture { return &chStreamFixture{} }

func (f *chStreamFixture) addBlock(vertices []testVertex) {
	blockBytes, shapeBytes := encodeBlock(vertices)
	f.blocksBuf.Write(blockBytes)
	f.shapesBuf.Write(shapeBytes)

	prevBlock := uint64(0)
	if len(f.blockLoc) > 0 {
		prevBlock = f.blockLoc[len(f.blockLoc)-1]
	}
	prevShape := uint64(0)
	if len(f.shapeLoc) > 0 {
		prevShape = f.shapeLoc[len(f.shapeLoc)-1]
	}
	f.blockLoc = append(f.blockLoc, prevBlock+uint64(len(blockBytes)))
	f.shapeLoc = append(f.shapeLoc, prevShape+uint64(len(shapeBytes)))
}

func (f *chStreamFixture) addRegion(tileID uint64, vertexIDs []uint32) {
	regionBytes := encodeRegion(vertexIDs)
	f.regionsBuf.Write(regionBytes)

	prev := uint64(0)
	if len(f.regionLoc) > 0 {
		prev = f.regionLoc[len(f.regionLoc)-1]
	}
	f.regionLoc = append(f.regionLoc, prev+uint64(len(regionBytes)))
	f.regionIDs = append(f.regionIDs, tileID)
}

// build concatenates regions, blocks, shapes (in that order) into one
// stream and returns it with a matching StreamLayout.
func (f *chStreamFixture) build() ([]byte, StreamLayout) {
	var out bytes.Buffer

	startOfRegions := int64(out.Len())
	out.Write(f.regionsBuf.Bytes())

	startOfBlocks := int64(out.Len())
	out.Write(f.blocksBuf.Bytes())

	startOfShapes := int64(out.Len())
	out.Write(f.shapesBuf.Bytes())

	layout := StreamLayout{
		StartOfRegions:      startOfRegions,
		StartOfBlocks:       startOfBlocks,
		StartOfShapes:       startOfShapes,
		BlockLocationIndex:  f.blockLoc,
		ShapeLocationIndex:  f.shapeLoc,
		RegionLocationIndex: f.regionLoc,
		RegionIDs:           f.regionIDs,
	}
	return out.Bytes(), layout
}

func newTestReader(stream []byte, layout StreamLayout, blockSize uint32, zoom int32) (*Reader, error) {
	return NewReader(&memStream{data: stream}, layout, ReaderOptions{
		BlockSize: blockSize,
		Zoom:      zoom,
	})
}
