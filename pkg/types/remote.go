package types

// RemoteStateVersion is the schema version written into every saved document.
const RemoteStateVersion = 1

// RouteOverride is the per-route field snapshot carried in the remote
// document for baseline routes. On load, a nil field leaves the local value
// untouched; unknown fields in the stored JSON are ignored. On save the
// whole record is rebuilt, never diffed.
type RouteOverride struct {
	Name       *string  `json:"name,omitempty"`
	WithWhom   *string  `json:"with_whom,omitempty"`
	Folder     *string  `json:"folder,omitempty"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
	AscentM    *float64 `json:"ascent_m,omitempty"`
	StartTime  *string  `json:"start_time"`
}

// SnapshotOverride captures the full editable field set of a route as an
// override record.
func SnapshotOverride(r *Route) RouteOverride {
	name, with, folder := r.Name, r.WithWhom, r.Folder
	dist, asc := r.DistanceKm, r.AscentM
	if name == "" {
		name = r.ID
	}
	return RouteOverride{
		Name:       &name,
		WithWhom:   &with,
		Folder:     &folder,
		DistanceKm: &dist,
		AscentM:    &asc,
		StartTime:  r.StartTime,
	}
}

// RemoteStateDocument is the single shared persisted object. It is read once
// at startup, rebuilt from the registry on every reconciled change, and
// written as a whole-document replace under one shared key. Last writer wins.
type RemoteStateDocument struct {
	Version      int                           `json:"version"`
	SavedAt      string                        `json:"saved_at"`
	Folders      []string                      `json:"folders"`
	Overrides    map[string]RouteOverride      `json:"overrides"`
	AddedRoutes  []Route                       `json:"added_routes"`
	AddedGeoJSON map[string]*FeatureCollection `json:"added_geojson"`
}
