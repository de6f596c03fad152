package track

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/montaraz/rutas/pkg/types"
)

// maxIDLength caps sanitized identifiers.
const maxIDLength = 120

// SanitizeID derives a route identifier from a source filename: the
// extension is stripped, diacritics are folded away, every run of characters
// outside [A-Za-z0-9_-] collapses to a single underscore, surrounding
// underscores are trimmed and the result is truncated. An empty result falls
// back to a random "ruta_" identifier.
func SanitizeID(filename string) string {
	s := filename
	if i := strings.LastIndex(s, "."); i > 0 {
		s = s[:i]
	}

	// Fold diacritics: decompose, then drop combining marks.
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()

	var out strings.Builder
	lastUnderscore := false
	for _, r := range s {
		ok := r == '_' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if ok {
			out.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			out.WriteByte('_')
			lastUnderscore = true
		}
	}
	s = strings.Trim(out.String(), "_")
	if len(s) > maxIDLength {
		s = s[:maxIDLength]
	}
	if s == "" {
		return "ruta_" + uuid.NewString()[:8]
	}
	return s
}

// UniqueID resolves collisions against the given predicate by suffixing an
// incrementing integer, starting at 2: "ruta", "ruta_2", "ruta_3", ...
func UniqueID(base string, taken func(string) bool) string {
	id := base
	for n := 2; taken(id); n++ {
		id = base + "_" + strconv.Itoa(n)
	}
	return id
}

// BuildResult is a complete locally-added route plus its geometry document,
// ready for registration.
type BuildResult struct {
	Route    types.Route
	Geometry *types.FeatureCollection
}

// Build composes parser, metrics and simplifier output into a Route entity.
// Metrics run over the full point list; the persisted geometry is the
// simplified 3-D line; the bbox comes from the simplified extents. The taken
// predicate guards identifier collisions against the live registry.
// Returns ErrMalformedTrack when simplification cannot produce at least two
// coordinates.
func Build(filename string, parsed *ParsedTrack, tolM float64, taken func(string) bool) (BuildResult, error) {
	coords := Simplify(parsed.Points, tolM)
	if len(coords) < 2 {
		return BuildResult{}, types.ErrMalformedTrack
	}

	id := UniqueID(SanitizeID(filename), taken)
	name := parsed.Name
	if name == "" {
		name = strings.TrimSuffix(filename, ".gpx")
		name = strings.TrimSuffix(name, ".GPX")
	}

	metrics := ComputeMetrics(parsed.Points)
	bbox := types.ComputeBBox(coords)

	route := types.Route{
		ID:         id,
		Name:       name,
		WithWhom:   "",
		Folder:     "",
		DistanceKm: metrics.DistanceKm,
		AscentM:    metrics.AscentM,
		StartTime:  StartTime(parsed.Points),
		BBox:       bbox,
		ExportFile: "data/" + id + ".geojson",
		Provenance: types.LocallyAdded,
	}
	return BuildResult{Route: route, Geometry: types.NewLineDocument(id, name, coords, bbox)}, nil
}
