package track

import (
	"fmt"
	"strings"
	"time"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/montaraz/rutas/pkg/types"
)

// ParsedTrack is the ordered sample list of one raw track file plus the
// display name taken from the file's <trk><name> element when present.
type ParsedTrack struct {
	Name   string
	Points []types.TrackPoint
}

// Parse decodes GPX content into an ordered point list. Points from every
// track and segment are concatenated in file order. A missing elevation
// defaults to 0 and a missing timestamp stays nil.
// Returns ErrEmptyTrack when the file holds no trackpoints.
func Parse(data []byte) (*ParsedTrack, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse gpx: %w", err)
	}

	var parsed ParsedTrack
	for _, trk := range doc.Tracks {
		if parsed.Name == "" {
			parsed.Name = strings.TrimSpace(trk.Name)
		}
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				tp := types.TrackPoint{Lat: p.Latitude, Lon: p.Longitude}
				if p.Elevation.NotNull() {
					tp.Ele = p.Elevation.Value()
				}
				if !p.Timestamp.IsZero() {
					t := p.Timestamp
					tp.Time = &t
				}
				parsed.Points = append(parsed.Points, tp)
			}
		}
	}

	if len(parsed.Points) == 0 {
		return nil, types.ErrEmptyTrack
	}
	return &parsed, nil
}

// StartTime returns the first non-nil timestamp of the point list formatted
// as ISO-8601, or nil when no point carries one.
func StartTime(points []types.TrackPoint) *string {
	for _, p := range points {
		if p.Time != nil {
			s := p.Time.UTC().Format(time.RFC3339)
			return &s
		}
	}
	return nil
}
