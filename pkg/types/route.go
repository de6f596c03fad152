package types

import (
	"strings"
	"time"
)

// Provenance distinguishes routes shipped with the baseline dataset from
// routes imported during a session. Baseline routes travel in the remote
// document as field overrides; locally-added routes travel as whole records.
type Provenance int

const (
	// Baseline marks a route loaded from the static dataset.
	Baseline Provenance = iota
	// LocallyAdded marks a route imported during the current session.
	LocallyAdded
)

// TrackPoint is one sample of a recorded track. Elevation defaults to zero
// when the source file carries none; Time is nil when the sample has no
// timestamp.
type TrackPoint struct {
	Lat  float64
	Lon  float64
	Ele  float64
	Time *time.Time
}

// Route is a named track with derived metrics and simplified geometry.
//
// ID is immutable after creation. BBox always encloses the simplified
// geometry. Folder, when non-empty, must appear in the session folder set;
// the registry self-heals that invariant by recomputing folders from route
// membership.
type Route struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	WithWhom   string  `json:"with_whom"`
	Folder     string  `json:"folder"`
	DistanceKm float64 `json:"distance_km"`
	AscentM    float64 `json:"ascent_m"`
	StartTime  *string `json:"start_time"`
	BBox       BBox    `json:"bbox"`

	// File points at the route's geometry document. For baseline routes it
	// is the dataset-relative path; for locally-added routes it is a
	// transient local handle and is stripped before the route enters the
	// remote document.
	File string `json:"file,omitempty"`

	// ExportFile is the packaging-relative geometry path used by the
	// archive exporter, normally "data/<id>.geojson".
	ExportFile string `json:"export_file,omitempty"`

	Provenance Provenance `json:"-"`
}

// GeometryPath returns the path the route's geometry document is fetched
// from when it is not already cached.
func (r *Route) GeometryPath() string {
	if r.File != "" {
		return r.File
	}
	if r.ExportFile != "" {
		return r.ExportFile
	}
	return "data/" + r.ID + ".geojson"
}

// RoutePatch carries optional field updates for Route. A nil field leaves
// the corresponding route field untouched.
type RoutePatch struct {
	Name       *string
	WithWhom   *string
	Folder     *string
	DistanceKm *float64
	AscentM    *float64
	StartTime  *string
}

// Apply copies the set fields of the patch onto the route. The folder value
// is normalized by trimming. The route ID is never touched.
func (p RoutePatch) Apply(r *Route) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.WithWhom != nil {
		r.WithWhom = *p.WithWhom
	}
	if p.Folder != nil {
		r.Folder = NormalizeFolder(*p.Folder)
	}
	if p.DistanceKm != nil {
		r.DistanceKm = *p.DistanceKm
	}
	if p.AscentM != nil {
		r.AscentM = *p.AscentM
	}
	if p.StartTime != nil {
		r.StartTime = p.StartTime
	}
}

// NormalizeFolder trims surrounding whitespace from a folder label.
// The empty string means "no folder".
func NormalizeFolder(s string) string {
	return strings.TrimSpace(s)
}
