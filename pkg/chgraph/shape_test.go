package chgraph

import (
	"testing"

	polyline "github.com/twpayne/go-polyline"
)

func TestShapeEncodeRoundTrips(t *testing.T) {
	shape := Shape{Points: []Point{
		{Lat: 38.5, Lon: -120.2},
		{Lat: 40.7, Lon: -120.95},
		{Lat: 43.252, Lon: -126.453},
	}}

	encoded := shape.Encode()
	coords, remaining, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		t.Fatalf("DecodeCoords: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("unexpected trailing bytes after decode: %q", remaining)
	}
	if len(coords) != shape.Len() {
		t.Fatalf("decoded %d coords, want %d", len(coords), shape.Len())
	}

	const epsilon = 1e-5
	for i, p := range shape.Points {
		if diff := float64(p.Lat) - coords[i][0]; diff > epsilon || diff < -epsilon {
			t.Errorf("point %d lat = %v, want ~%v", i, coords[i][0], p.Lat)
		}
		if diff := float64(p.Lon) - coords[i][1]; diff > epsilon || diff < -epsilon {
			t.Errorf("point %d lon = %v, want ~%v", i, coords[i][1], p.Lon)
		}
	}
}

func TestShapeEncodeEmpty(t *testing.T) {
	var shape Shape
	if got := shape.Encode(); got != "" {
		t.Errorf("Encode() of empty shape = %q, want empty string", got)
	}
}
