package types

import (
	"encoding/json"
	"testing"
)

func TestComputeBBox(t *testing.T) {
	coords := []Coordinate{
		{2.1, 41.5, 100},
		{1.9, 41.7, 200},
		{2.3, 41.4, 150},
	}
	got := ComputeBBox(coords)
	want := BBox{1.9, 41.4, 2.3, 41.7}
	if got != want {
		t.Fatalf("bbox = %v, want %v", got, want)
	}

	if ComputeBBox(nil) != (BBox{}) {
		t.Fatal("empty sequence should yield the zero box")
	}
}

func TestBBoxUnion(t *testing.T) {
	a := BBox{1, 40, 2, 41}
	b := BBox{1.5, 39, 3, 40.5}

	got := a.Union(b)
	want := BBox{1, 39, 3, 41}
	if got != want {
		t.Fatalf("union = %v, want %v", got, want)
	}

	// Zero boxes are empty, not a degenerate box at the origin.
	if a.Union(BBox{}) != a {
		t.Fatal("union with zero box changed the operand")
	}
	if (BBox{}).Union(b) != b {
		t.Fatal("zero box union lost the operand")
	}
}

func TestBBoxEncloses(t *testing.T) {
	b := BBox{1, 40, 2, 41}
	inside := []Coordinate{{1.5, 40.5, 0}, {1, 40, 0}, {2, 41, 0}}
	if !b.Encloses(inside) {
		t.Fatal("boundary and interior points reported outside")
	}
	if b.Encloses([]Coordinate{{2.5, 40.5, 0}}) {
		t.Fatal("point east of the box reported inside")
	}
}

func TestGeometryUnmarshalLineString(t *testing.T) {
	raw := `{"type":"LineString","coordinates":[[2.1,41.5,820.5],[2.2,41.6]]}`
	var g Geometry
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if g.Type != "LineString" || len(g.Coordinates) != 2 {
		t.Fatalf("decoded %q with %d coordinates", g.Type, len(g.Coordinates))
	}
	if g.Coordinates[0].Ele() != 820.5 {
		t.Errorf("3-D position elevation = %f", g.Coordinates[0].Ele())
	}
	// Two-element positions gain elevation 0.
	if g.Coordinates[1] != (Coordinate{2.2, 41.6, 0}) {
		t.Errorf("2-D position decoded as %v", g.Coordinates[1])
	}
}

func TestGeometryUnmarshalMultiLineString(t *testing.T) {
	raw := `{"type":"MultiLineString","coordinates":[[[2.1,41.5],[2.2,41.6]],[[9,9],[9.1,9.1]]]}`
	var g Geometry
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(g.Coordinates) != 2 {
		t.Fatalf("kept %d coordinates, want first line only", len(g.Coordinates))
	}
	if g.Coordinates[0].Lon() != 2.1 {
		t.Fatalf("first coordinate = %v", g.Coordinates[0])
	}
}

func TestNewLineDocumentRoundTrip(t *testing.T) {
	coords := []Coordinate{{2.1, 41.5, 820}, {2.2, 41.6, 840}}
	doc := NewLineDocument("cim", "Cim de nit", coords, ComputeBBox(coords))

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var back FeatureCollection
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	got := back.LineCoordinates()
	if len(got) != 2 || got[0] != coords[0] || got[1] != coords[1] {
		t.Fatalf("round-trip coordinates = %v", got)
	}
}

func TestLineCoordinatesNilSafety(t *testing.T) {
	var fc *FeatureCollection
	if fc.LineCoordinates() != nil {
		t.Fatal("nil document yielded coordinates")
	}
	empty := &FeatureCollection{Type: "FeatureCollection"}
	if empty.LineCoordinates() != nil {
		t.Fatal("featureless document yielded coordinates")
	}
}
