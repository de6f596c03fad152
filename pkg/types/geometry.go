package types

import "encoding/json"

// Coordinate is a GeoJSON position as [longitude, latitude, elevation].
type Coordinate [3]float64

// Lon returns the longitude component.
func (c Coordinate) Lon() float64 { return c[0] }

// Lat returns the latitude component.
func (c Coordinate) Lat() float64 { return c[1] }

// Ele returns the elevation component.
func (c Coordinate) Ele() float64 { return c[2] }

// BBox is a bounding box as [minLon, minLat, maxLon, maxLat].
type BBox [4]float64

// ComputeBBox returns the lon/lat extents of the coordinate sequence.
// The zero BBox is returned for an empty sequence.
func ComputeBBox(coords []Coordinate) BBox {
	if len(coords) == 0 {
		return BBox{}
	}
	b := BBox{coords[0].Lon(), coords[0].Lat(), coords[0].Lon(), coords[0].Lat()}
	for _, c := range coords[1:] {
		if c.Lon() < b[0] {
			b[0] = c.Lon()
		}
		if c.Lat() < b[1] {
			b[1] = c.Lat()
		}
		if c.Lon() > b[2] {
			b[2] = c.Lon()
		}
		if c.Lat() > b[3] {
			b[3] = c.Lat()
		}
	}
	return b
}

// Union extends the box to also enclose other. Either operand may be the
// zero box, which is treated as empty.
func (b BBox) Union(other BBox) BBox {
	if b == (BBox{}) {
		return other
	}
	if other == (BBox{}) {
		return b
	}
	if other[0] < b[0] {
		b[0] = other[0]
	}
	if other[1] < b[1] {
		b[1] = other[1]
	}
	if other[2] > b[2] {
		b[2] = other[2]
	}
	if other[3] > b[3] {
		b[3] = other[3]
	}
	return b
}

// Encloses reports whether every coordinate lies within the box.
func (b BBox) Encloses(coords []Coordinate) bool {
	for _, c := range coords {
		if c.Lon() < b[0] || c.Lon() > b[2] || c.Lat() < b[1] || c.Lat() > b[3] {
			return false
		}
	}
	return true
}

// Geometry is a GeoJSON geometry restricted to line shapes. Decoding accepts
// LineString directly and tolerates MultiLineString by keeping its first
// member, since geometry documents in the wild occasionally ship that way.
type Geometry struct {
	Type        string       `json:"type"`
	Coordinates []Coordinate `json:"coordinates"`
}

// geometryWire mirrors Geometry with raw coordinates for lenient decoding.
type geometryWire struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// UnmarshalJSON decodes LineString coordinates, taking the first line of a
// MultiLineString. Positions with only two elements decode with elevation 0.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var w geometryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	g.Type = w.Type
	g.Coordinates = nil
	if len(w.Coordinates) == 0 {
		return nil
	}
	if w.Type == "MultiLineString" {
		var lines [][]json.RawMessage
		if err := json.Unmarshal(w.Coordinates, &lines); err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		coords, err := decodePositions(lines[0])
		if err != nil {
			return err
		}
		g.Coordinates = coords
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(w.Coordinates, &raw); err != nil {
		return err
	}
	coords, err := decodePositions(raw)
	if err != nil {
		return err
	}
	g.Coordinates = coords
	return nil
}

// decodePositions decodes GeoJSON positions of two or three elements.
func decodePositions(raw []json.RawMessage) ([]Coordinate, error) {
	coords := make([]Coordinate, 0, len(raw))
	for _, r := range raw {
		var pos []float64
		if err := json.Unmarshal(r, &pos); err != nil {
			return nil, err
		}
		var c Coordinate
		copy(c[:], pos)
		coords = append(coords, c)
	}
	return coords, nil
}

// Feature is a GeoJSON feature carrying a line geometry.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// FeatureCollection is the geometry document format: one line feature with
// 3-D coordinates, plus the document-level bbox.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
	BBox     []float64 `json:"bbox,omitempty"`
}

// NewLineDocument assembles a single-feature LineString document for a route.
func NewLineDocument(id, name string, coords []Coordinate, bbox BBox) *FeatureCollection {
	return &FeatureCollection{
		Type: "FeatureCollection",
		Features: []Feature{{
			Type:       "Feature",
			Properties: map[string]any{"id": id, "name": name},
			Geometry:   Geometry{Type: "LineString", Coordinates: coords},
		}},
		BBox: bbox[:],
	}
}

// LineCoordinates returns the coordinates of the first line feature, or nil
// when the document holds none.
func (fc *FeatureCollection) LineCoordinates() []Coordinate {
	if fc == nil {
		return nil
	}
	for _, f := range fc.Features {
		if len(f.Geometry.Coordinates) > 0 {
			return f.Geometry.Coordinates
		}
	}
	return nil
}
