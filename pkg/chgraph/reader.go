package chgraph

import (
	"io"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/blockchart/chgraph/internal/store"
)

// Stream is the seekable backing storage a Reader consumes. The
// Reader owns it exclusively for its lifetime and closes it on Close.
type Stream interface {
	io.ReaderAt
	io.Closer
}

// StreamLayout is the bit-exact on-disk layout a Reader is
// constructed over (spec §6): zone offsets and the three prefix-sum
// indices supplied by whatever wrote the stream.
type StreamLayout struct {
	StartOfRegions int64
	StartOfBlocks  int64
	StartOfShapes  int64

	// BlockLocationIndex and ShapeLocationIndex are prefix-sum arrays
	// of cumulative block lengths, one entry per block ordinal.
	BlockLocationIndex []uint64
	ShapeLocationIndex []uint64

	// RegionLocationIndex is a prefix-sum array of cumulative region
	// lengths, parallel to RegionIDs.
	RegionLocationIndex []uint64
	RegionIDs           []uint64
}

// ReaderStats reports cache hit/miss counters for the three LRU
// caches fronting vertex-blocks, shape-blocks, and regions.
type ReaderStats struct {
	VertexBlocks cacheStats
	ShapeBlocks  cacheStats
	Regions      cacheStats
}

// BoxEdge is one edge emitted by Reader.EdgesInBounds.
type BoxEdge struct {
	V1, V2 VertexID
	Data   EdgeData
}

// Reader is the Graph Facade (spec §4.4): the public surface for
// vertex lookup, edge lookup, adjacency, shape lookup, and
// bounding-box vertex/edge enumeration over a block-paged CH stream.
// A Reader is single-threaded cooperative (spec §5): every operation
// is blocking and synchronous, and a reader instance owns its stream
// and caches exclusively.
type Reader struct {
	stream          Stream
	deserializer    *store.Deserializer
	blockIdx        *store.BlockIndex
	shapeIdx        *store.BlockIndex
	regionIdx       *store.RegionIndex
	blockSize       uint32
	zoom            int32
	profiles        map[string]struct{}
	tags            TagIndex
	mayBeCompressed bool
	logger          Logger

	vertexCache *blockCache[uint32, *store.Block]
	shapeCache  *blockCache[uint32, *store.BlockCoordinates]
	regionCache *blockCache[uint64, *store.Region]
}

// NewReader constructs a Reader over stream using layout and opts.
// The Reader takes ownership of stream: Close closes it.
func NewReader(stream Stream, layout StreamLayout, opts ReaderOptions) (*Reader, error) {
	opts = opts.withDefaults()

	profiles := make(map[string]struct{}, len(opts.Profiles))
	for _, p := range opts.Profiles {
		profiles[p] = struct{}{}
	}

	r := &Reader{
		stream:          stream,
		deserializer:    store.NewDeserializer(stream),
		blockIdx:        store.NewBlockIndex(layout.BlockLocationIndex, layout.StartOfBlocks),
		shapeIdx:        store.NewBlockIndex(layout.ShapeLocationIndex, layout.StartOfShapes),
		regionIdx:       store.NewRegionIndex(layout.RegionLocationIndex, layout.RegionIDs, layout.StartOfRegions, opts.Zoom),
		blockSize:       opts.BlockSize,
		zoom:            opts.Zoom,
		profiles:        profiles,
		tags:            opts.Tags,
		mayBeCompressed: opts.MayBeCompressed,
		logger:          opts.Logger,
		vertexCache:     newBlockCache[uint32, *store.Block](opts.VertexCacheSize),
		shapeCache:      newBlockCache[uint32, *store.BlockCoordinates](opts.ShapeCacheSize),
		regionCache:     newBlockCache[uint64, *store.Region](opts.RegionCacheSize),
	}
	return r, nil
}

func (r *Reader) fetchBlock(ordinal uint32) (*store.Block, error) {
	return r.vertexCache.getOrLoad(ordinal, func() (*store.Block, error) {
		offset, length := r.blockIdx.Resolve(ordinal)
		r.logger.Debugw("chgraph: vertex block miss", "ordinal", ordinal, "offset", offset, "length", length)
		return r.deserializer.ReadBlock(offset, length, r.mayBeCompressed)
	})
}

func (r *Reader) fetchShapeBlock(ordinal uint32) (*store.BlockCoordinates, error) {
	return r.shapeCache.getOrLoad(ordinal, func() (*store.BlockCoordinates, error) {
		offset, length := r.shapeIdx.Resolve(ordinal)
		r.logger.Debugw("chgraph: shape block miss", "ordinal", ordinal, "offset", offset, "length", length)
		return r.deserializer.ReadBlockCoordinates(offset, length, r.mayBeCompressed)
	})
}

func (r *Reader) fetchRegion(tileID uint64) (*store.Region, bool, error) {
	offset, length, ok := r.regionIdx.Locate(tileID)
	if !ok {
		return nil, false, nil
	}
	region, err := r.regionCache.getOrLoad(tileID, func() (*store.Region, error) {
		r.logger.Debugw("chgraph: region miss", "tile", tileID, "offset", offset, "length", length)
		return r.deserializer.ReadRegion(offset, length, r.mayBeCompressed)
	})
	return region, true, err
}

// GetVertex resolves a vertex's coordinates (spec §4.4 getVertex).
func (r *Reader) GetVertex(v VertexID) (Vertex, bool, error) {
	ordinal := BlockOrdinal(v, r.blockSize)
	if !r.blockIdx.InRange(ordinal) {
		return Vertex{}, false, nil
	}
	block, err := r.fetchBlock(ordinal)
	if err != nil {
		return Vertex{}, false, wrapDeserialize("getVertex", err)
	}
	idx := uint32(v) - BlockID(v, r.blockSize)
	if idx >= uint32(len(block.Vertices)) {
		return Vertex{}, false, nil
	}
	vr := block.Vertices[idx]
	return Vertex{Lat: vr.Lat, Lon: vr.Lon}, true, nil
}

// arcLocation is where a matching arc was found, kept around so
// GetEdgeShape can reuse the position to index the parallel shape
// block.
type arcLocation struct {
	ordinal uint32
	pos     uint32
	arc     store.ArcRecord
}

func (r *Reader) findArc(owner, target VertexID) (arcLocation, bool, error) {
	ordinal := BlockOrdinal(owner, r.blockSize)
	if !r.blockIdx.InRange(ordinal) {
		return arcLocation{}, false, nil
	}
	block, err := r.fetchBlock(ordinal)
	if err != nil {
		return arcLocation{}, false, err
	}
	idx := uint32(owner) - BlockID(owner, r.blockSize)
	if idx >= uint32(len(block.Vertices)) {
		return arcLocation{}, false, nil
	}
	vr := block.Vertices[idx]
	for i := vr.ArcIndex; i < vr.ArcIndex+vr.ArcCount; i++ {
		if block.Arcs[i].TargetID == uint32(target) {
			return arcLocation{ordinal: ordinal, pos: i, arc: block.Arcs[i]}, true, nil
		}
	}
	return arcLocation{}, false, nil
}

func edgeDataFromArc(neighbour VertexID, arc store.ArcRecord) EdgeData {
	return EdgeData{
		Neighbour:               neighbour,
		ForwardWeight:           arc.ForwardWeight,
		BackwardWeight:          arc.BackwardWeight,
		ForwardContractedID:     VertexID(arc.ForwardContractedID),
		BackwardContractedID:    VertexID(arc.BackwardContractedID),
		ContractedDirectionBits: arc.ContractedDirectionBits,
		TagsValue:               arc.TagsValue,
	}
}

// GetEdge implements the symmetric-edge protocol (spec §4.4 getEdge):
// search v1's block first, then v2's block, because the CH
// serialization stores a directed arc only once, on whichever
// endpoint owns it. The caller receives no indication of which
// endpoint hosted the arc; directional fields are returned as stored.
func (r *Reader) GetEdge(v1, v2 VertexID) (EdgeData, bool, error) {
	loc, found, err := r.findArc(v1, v2)
	if err != nil {
		return EdgeData{}, false, wrapDeserialize("getEdge", err)
	}
	if found {
		return edgeDataFromArc(v2, loc.arc), true, nil
	}

	loc, found, err = r.findArc(v2, v1)
	if err != nil {
		return EdgeData{}, false, wrapDeserialize("getEdge", err)
	}
	if found {
		return edgeDataFromArc(v2, loc.arc), true, nil
	}
	return EdgeData{}, false, nil
}

// GetEdgeShape implements spec §4.4 getEdgeShape: the same two-step
// search as GetEdge, reusing the located arc's position as the index
// into the matching shape block.
func (r *Reader) GetEdgeShape(v1, v2 VertexID) (Shape, bool, error) {
	loc, found, err := r.findArc(v1, v2)
	if err != nil {
		return Shape{}, false, wrapDeserialize("getEdgeShape", err)
	}
	if !found {
		loc, found, err = r.findArc(v2, v1)
		if err != nil {
			return Shape{}, false, wrapDeserialize("getEdgeShape", err)
		}
	}
	if !found {
		return Shape{}, false, nil
	}

	shapeBlock, err := r.fetchShapeBlock(loc.ordinal)
	if err != nil {
		return Shape{}, false, wrapDeserialize("getEdgeShape", err)
	}
	if int(loc.pos) >= len(shapeBlock.Arcs) {
		return Shape{}, false, wrapDeserialize("getEdgeShape",
			&store.DeserializeError{Reason: "shape block shorter than matching vertex block"})
	}

	raw := shapeBlock.Arcs[loc.pos]
	points := make([]Point, len(raw))
	for i, p := range raw {
		points[i] = Point{Lat: p.Lat, Lon: p.Lon}
	}
	return Shape{Points: points}, true, nil
}

// Edges returns a restartable adjacency iterator over v's outgoing
// arcs (spec §4.4 getEdges(v)). A vertex with no known block or an
// out-of-range position yields an iterator with zero elements rather
// than an error.
func (r *Reader) Edges(v VertexID) (*EdgeIterator, error) {
	ordinal := BlockOrdinal(v, r.blockSize)
	if !r.blockIdx.InRange(ordinal) {
		return newEdgeIterator(nil), nil
	}
	block, err := r.fetchBlock(ordinal)
	if err != nil {
		return nil, wrapDeserialize("getEdges", err)
	}
	idx := uint32(v) - BlockID(v, r.blockSize)
	if idx >= uint32(len(block.Vertices)) {
		return newEdgeIterator(nil), nil
	}
	vr := block.Vertices[idx]

	var shapeBlock *store.BlockCoordinates
	if r.shapeIdx.InRange(ordinal) {
		shapeBlock, err = r.fetchShapeBlock(ordinal)
		if err != nil {
			return nil, wrapDeserialize("getEdges", err)
		}
	}

	entries := make([]adjacencyEntry, 0, vr.ArcCount)
	for i := vr.ArcIndex; i < vr.ArcIndex+vr.ArcCount; i++ {
		arc := block.Arcs[i]
		var pts []Point
		if shapeBlock != nil && int(i) < len(shapeBlock.Arcs) {
			raw := shapeBlock.Arcs[i]
			pts = make([]Point, len(raw))
			for j, p := range raw {
				pts[j] = Point{Lat: p.Lat, Lon: p.Lon}
			}
		}
		entries = append(entries, adjacencyEntry{
			data:          edgeDataFromArc(VertexID(arc.TargetID), arc),
			intermediates: pts,
		})
	}
	return newEdgeIterator(entries), nil
}

// EdgesInBounds implements spec §4.4 getEdges(box): the region index's
// R-tree resolves which indexed tiles intersect box, every matching
// tile's region is loaded, and the union of their vertex ids forms set
// V. An edge (v, u) is emitted when v < u (deduplicating intra-set
// edges, emitted once from the lower id) or u is not in V (including
// each boundary-crossing edge once, from the in-set endpoint).
//
// Only the arcs stored on vertices in V are read: an edge whose arc is
// stored solely on an endpoint outside V is not emitted.
func (r *Reader) EdgesInBounds(box Bounds) ([]BoxEdge, error) {
	tiles := r.regionIdx.Query(toStoreBounds(box))

	members := roaring.New()
	var ordered []VertexID
	for _, tile := range tiles {
		region, ok, err := r.fetchRegion(tile)
		if err != nil {
			return nil, wrapDeserialize("getEdges(box)", err)
		}
		if !ok {
			continue
		}
		for _, id := range region.VertexIDs {
			if members.CheckedAdd(id) {
				ordered = append(ordered, VertexID(id))
			}
		}
	}

	var out []BoxEdge
	for _, v := range ordered {
		it, err := r.Edges(v)
		if err != nil {
			return nil, err
		}
		for it.MoveNext() {
			u := it.Neighbour()
			if v < u || !members.Contains(uint32(u)) {
				out = append(out, BoxEdge{V1: v, V2: u, Data: it.EdgeData()})
			}
		}
	}
	return out, nil
}

// ContainsEdge is a convenience equal to GetEdge(v1, v2) having been found.
func (r *Reader) ContainsEdge(v1, v2 VertexID) (bool, error) {
	_, found, err := r.GetEdge(v1, v2)
	return found, err
}

// SupportsProfile tests membership against the immutable set of
// profile names captured at construction.
func (r *Reader) SupportsProfile(profile string) bool {
	_, ok := r.profiles[profile]
	return ok
}

// Profiles returns the supported profile names.
func (r *Reader) Profiles() []string {
	names := make([]string, 0, len(r.profiles))
	for p := range r.profiles {
		names = append(names, p)
	}
	return names
}

// AddProfile is unsupported: this source is read-only.
func (r *Reader) AddProfile(profile string) error { return ErrUnsupported }

// AddRestriction is unsupported: this source is read-only and carries
// no turn-restriction storage.
func (r *Reader) AddRestriction(v1, v2, v3 VertexID) error { return ErrUnsupported }

// EnumerateVertices is unsupported: the format is not indexed for
// enumeration of all vertices.
func (r *Reader) EnumerateVertices() ([]VertexID, error) { return nil, ErrUnsupported }

// VertexCount is unsupported for the same reason as EnumerateVertices.
func (r *Reader) VertexCount() (int, error) { return 0, ErrUnsupported }

// Tags returns the opaque external tag-collection index, unchanged.
func (r *Reader) Tags() TagIndex { return r.tags }

// BlockSize returns the configured block size.
func (r *Reader) BlockSize() uint32 { return r.blockSize }

// Zoom returns the configured tile zoom.
func (r *Reader) Zoom() int32 { return r.zoom }

// Stats returns cache hit/miss counters for the three caches.
func (r *Reader) Stats() ReaderStats {
	return ReaderStats{
		VertexBlocks: r.vertexCache.stats,
		ShapeBlocks:  r.shapeCache.stats,
		Regions:      r.regionCache.stats,
	}
}

// Close releases the backing stream and discards all caches. Further
// calls on r after Close are not supported.
func (r *Reader) Close() error {
	r.vertexCache.lru.Purge()
	r.shapeCache.lru.Purge()
	r.regionCache.lru.Purge()
	return r.stream.Close()
}
