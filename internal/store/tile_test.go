package store

import "testing"

func TestTileSchemeRoundTrip(t *testing.T) {
	scheme := NewTileScheme(4)
	x, y := scheme.TileXY(-122.3, 47.6)
	id := scheme.ID(x, y)

	zoom, gotX, gotY := DecodeTileID(id)
	if zoom != 4 || gotX != x || gotY != y {
		t.Fatalf("DecodeTileID(%d) = (%d, %d, %d), want (4, %d, %d)", id, zoom, gotX, gotY, x, y)
	}
}

func TestTileSchemeBoundsContainsSource(t *testing.T) {
	scheme := NewTileScheme(6)
	lon, lat := 10.0, -33.0
	x, y := scheme.TileXY(lon, lat)
	bounds := scheme.Bounds(x, y)

	if lon < bounds.MinLon || lon > bounds.MaxLon {
		t.Errorf("lon %v outside tile bounds %+v", lon, bounds)
	}
	if lat < bounds.MinLat || lat > bounds.MaxLat {
		t.Errorf("lat %v outside tile bounds %+v", lat, bounds)
	}
}

func TestTileSchemeClampsOutOfRangeCoordinates(t *testing.T) {
	scheme := NewTileScheme(2)
	x, y := scheme.TileXY(1000, 1000)
	if x < 0 || y < 0 {
		t.Fatalf("expected clamped non-negative tile coords, got (%d, %d)", x, y)
	}
}
