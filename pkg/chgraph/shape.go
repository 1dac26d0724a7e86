package chgraph

import polyline "github.com/twpayne/go-polyline"

// Shape is an edge's intermediate geometry, in on-disk order. An
// edge with no intermediates has a defined, empty Shape (spec §4.4:
// "empty-but-defined when the arc exists with no intermediates").
type Shape struct {
	Points []Point
}

// Len reports the number of intermediate points.
func (s Shape) Len() int { return len(s.Points) }

// Encode renders the shape as a Google-style encoded polyline string.
func (s Shape) Encode() string {
	coords := make([][2]float64, len(s.Points))
	for i, p := range s.Points {
		coords[i] = [2]float64{float64(p.Lat), float64(p.Lon)}
	}
	return string(polyline.EncodeCoords(nil, coords))
}
