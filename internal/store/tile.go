package store

// Bounds is a geographic bounding box in WGS-84 decimal degrees,
// internal to the store package (spec §A.4.5 treats the tiling scheme
// as an implementation detail paired with whatever wrote the region
// index). The public package has its own Bounds it converts to/from.
type Bounds struct {
	MinLon, MaxLon float64
	MinLat, MaxLat float64
}

// TileScheme packs geographic coordinates into a 64-bit tile id at a
// fixed zoom, in the spirit of the pack/unpack-one-id-per-tile schemes
// used by tiled formats (e.g. a Z/X/Y slippy-tile grid). The scheme
// used here is an equirectangular z/x/y packing, not a space-filling
// curve: simpler to invert, and sufficient since the region index's
// only use of a tile id is exact-match lookup plus bounds-of-tile for
// spatial queries (spec leaves the exact id encoding to the
// reader/writer pairing; see spec §I Open Questions).
type TileScheme struct {
	Zoom int32
	n    int64 // tiles per axis = 2^zoom
}

// NewTileScheme builds the tiling scheme for a given zoom level.
func NewTileScheme(zoom int32) TileScheme {
	n := int64(1) << uint(zoom)
	return TileScheme{Zoom: zoom, n: n}
}

// TileXY returns the tile column/row containing (lon, lat).
func (s TileScheme) TileXY(lon, lat float64) (x, y int64) {
	lonStep := 360.0 / float64(s.n)
	latStep := 180.0 / float64(s.n)

	x = int64((lon + 180.0) / lonStep)
	y = int64((90.0 - lat) / latStep)

	if x < 0 {
		x = 0
	}
	if x >= s.n {
		x = s.n - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= s.n {
		y = s.n - 1
	}
	return x, y
}

// ID packs (zoom, x, y) into the 64-bit tile identifier used as the
// region index's key. Valid for zoom <= 28 (x, y < 2^29).
func (s TileScheme) ID(x, y int64) uint64 {
	return uint64(s.Zoom)<<58 | uint64(x)<<29 | uint64(y)
}

// DecodeTileID recovers (zoom, x, y) from a packed tile id.
func DecodeTileID(id uint64) (zoom int32, x, y int64) {
	zoom = int32(id >> 58)
	x = int64((id >> 29) & 0x1FFFFFFF)
	y = int64(id & 0x1FFFFFFF)
	return zoom, x, y
}

// Bounds returns the geographic footprint of tile (x, y) at this
// scheme's zoom.
func (s TileScheme) Bounds(x, y int64) Bounds {
	lonStep := 360.0 / float64(s.n)
	latStep := 180.0 / float64(s.n)

	return Bounds{
		MinLon: -180.0 + float64(x)*lonStep,
		MaxLon: -180.0 + float64(x+1)*lonStep,
		MinLat: 90.0 - float64(y+1)*latStep,
		MaxLat: 90.0 - float64(y)*latStep,
	}
}
