package chgraph

import "github.com/blockchart/chgraph/internal/store"

// toStoreBounds converts the public Bounds type to the store package's
// internal representation, the boundary between the two packages'
// otherwise-identical bounding-box types.
func toStoreBounds(b Bounds) store.Bounds {
	return store.Bounds{MinLon: b.MinLon, MaxLon: b.MaxLon, MinLat: b.MinLat, MaxLat: b.MaxLat}
}
