package store

import "github.com/dhconnelly/rtreego"

// RegionIndex translates a tile id into the (offset, length) stream
// slice holding that tile's Region record, and supports spatial
// queries over the set of tiles actually present.
//
// Construction mirrors the pattern of building a linear array plus an
// R-tree spatial index side by side: the array (here a map, since tile
// ids are not dense ordinals) answers exact-id lookups, the R-tree
// answers "which known tiles intersect this box" without the caller
// having to enumerate and probe every tile in a bounding box's range,
// most of which typically hold no region record at all.
type RegionIndex struct {
	scheme  TileScheme
	entries map[uint64]regionLoc
	rtree   *rtreego.Rtree
}

type regionLoc struct {
	offset int64
	length int
}

// regionLeaf implements rtreego.Spatial for one indexed tile.
type regionLeaf struct {
	tileID uint64
	bounds Bounds
}

func (l regionLeaf) Bounds() rtreego.Rect {
	point := rtreego.Point{l.bounds.MinLon, l.bounds.MinLat}
	lengths := []float64{
		l.bounds.MaxLon - l.bounds.MinLon,
		l.bounds.MaxLat - l.bounds.MinLat,
	}
	if lengths[0] <= 0 {
		lengths[0] = 1e-9
	}
	if lengths[1] <= 0 {
		lengths[1] = 1e-9
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// NewRegionIndex builds a RegionIndex from the region header's
// parallel prefix-sum arrays: locIndex[i] is the cumulative byte
// length of regions 0..i, and tileIDs[i] names which tile that region
// belongs to, both relative to base (the stream offset the first
// region starts at). zoom is the reader's configured tiling zoom,
// needed to recover each tile's geographic footprint from its id.
func NewRegionIndex(locIndex []uint64, tileIDs []uint64, base int64, zoom int32) *RegionIndex {
	scheme := NewTileScheme(zoom)
	entries := make(map[uint64]regionLoc, len(tileIDs))
	rtree := rtreego.NewTree(2, 25, 50)

	var prev uint64
	for i, id := range tileIDs {
		end := locIndex[i]
		entries[id] = regionLoc{offset: base + int64(prev), length: int(end - prev)}
		prev = end

		_, x, y := DecodeTileID(id)
		rtree.Insert(regionLeaf{tileID: id, bounds: scheme.Bounds(x, y)})
	}

	return &RegionIndex{scheme: scheme, entries: entries, rtree: rtree}
}

// Scheme returns the tiling scheme this index was built with.
func (idx *RegionIndex) Scheme() TileScheme { return idx.scheme }

// Locate resolves a tile id to its Region record's stream slice. ok is
// false if no region record exists for that tile (the tile has no
// vertices at this zoom).
func (idx *RegionIndex) Locate(tileID uint64) (offset int64, length int, ok bool) {
	loc, found := idx.entries[tileID]
	if !found {
		return 0, 0, false
	}
	return loc.offset, loc.length, true
}

// Query returns the ids of every indexed tile whose footprint
// intersects bounds. Tiles within bounds that have no region record
// are simply absent from the result, equivalent to contributing zero
// vertices.
func (idx *RegionIndex) Query(bounds Bounds) []uint64 {
	point := rtreego.Point{bounds.MinLon, bounds.MinLat}
	lengths := []float64{
		bounds.MaxLon - bounds.MinLon,
		bounds.MaxLat - bounds.MinLat,
	}
	if lengths[0] <= 0 {
		lengths[0] = 1e-9
	}
	if lengths[1] <= 0 {
		lengths[1] = 1e-9
	}
	rect, _ := rtreego.NewRect(point, lengths)

	spatials := idx.rtree.SearchIntersect(rect)
	ids := make([]uint64, 0, len(spatials))
	for _, s := range spatials {
		ids = append(ids, s.(regionLeaf).tileID)
	}
	return ids
}
