package chgraph

// VertexID identifies a vertex. Stable across the lifetime of the
// stream; zero is a valid id.
type VertexID uint32

// BlockID is a vertex id rounded down to a multiple of the reader's
// blockSize: BlockID(v) = v - (v mod blockSize).
func BlockID(v VertexID, blockSize uint32) uint32 {
	return uint32(v) - uint32(v)%blockSize
}

// BlockOrdinal is BlockID(v) / blockSize, the index into the block
// location index.
func BlockOrdinal(v VertexID, blockSize uint32) uint32 {
	return BlockID(v, blockSize) / blockSize
}

// Vertex is a decoded vertex's geographic coordinates.
type Vertex struct {
	Lat, Lon float32
}

// EdgeData is the directed/bidirectional cost and shortcut metadata
// carried by one CH arc. ForwardWeight and BackwardWeight are the
// arc's directional costs as stored on whichever endpoint owns it; the
// reader never reverses them. Neighbour is the other endpoint of the
// queried edge.
type EdgeData struct {
	Neighbour               VertexID
	ForwardWeight           float32
	BackwardWeight          float32
	ForwardContractedID     VertexID
	BackwardContractedID    VertexID
	ContractedDirectionBits uint8
	TagsValue               uint32
}

// Inverted returns a copy of e with the forward/backward weight pair
// and forward/backward contracted-id pair swapped. ContractedDirectionBits
// and TagsValue are carried through unchanged: the spec leaves their
// treatment under inversion to the writer's convention, and no
// evidence in this format's data model ties them to direction.
func (e EdgeData) Inverted(newNeighbour VertexID) EdgeData {
	return EdgeData{
		Neighbour:               newNeighbour,
		ForwardWeight:           e.BackwardWeight,
		BackwardWeight:          e.ForwardWeight,
		ForwardContractedID:     e.BackwardContractedID,
		BackwardContractedID:    e.ForwardContractedID,
		ContractedDirectionBits: e.ContractedDirectionBits,
		TagsValue:               e.TagsValue,
	}
}

// Point is a single geographic coordinate on an edge's intermediate
// geometry.
type Point struct {
	Lat, Lon float32
}

// Bounds is a geographic bounding box in WGS-84 decimal degrees.
type Bounds struct {
	MinLon, MaxLon float64
	MinLat, MaxLat float64
}

// TagIndex is the opaque, externally-owned tag collection index the
// reader forwards without interpretation (spec §6: "exposes it
// unchanged; it is opaque to the reader beyond identity").
type TagIndex interface{}
