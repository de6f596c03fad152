// Package state translates between the in-memory registry and the shared
// remote document, in both directions, and schedules debounced writes of the
// reconciled state.
package state

import (
	"time"

	"github.com/montaraz/rutas/internal/registry"
	"github.com/montaraz/rutas/pkg/types"
)

// Reconciler is the only component allowed to move state between the
// registry and the remote document.
type Reconciler struct {
	reg *registry.Registry
}

// NewReconciler binds a reconciler to the session registry.
func NewReconciler(reg *registry.Registry) *Reconciler {
	return &Reconciler{reg: reg}
}

// ApplyRemote merges a remote document into the registry: the folder list is
// replaced, overrides patch matching routes field by field (missing keys
// leave fields untouched), and added routes not yet present are appended
// with their geometry attached when the document carries it. A nil document
// is a no-op, never an error; applying the same document twice leaves the
// registry unchanged.
func (rc *Reconciler) ApplyRemote(doc *types.RemoteStateDocument) {
	if doc == nil {
		return
	}

	if doc.Folders != nil {
		rc.reg.SetFolders(doc.Folders)
	}

	for _, r := range rc.reg.Routes() {
		ov, ok := doc.Overrides[r.ID]
		if !ok {
			continue
		}
		rc.reg.Update(r.ID, types.RoutePatch{
			Name:       ov.Name,
			WithWhom:   ov.WithWhom,
			Folder:     ov.Folder,
			DistanceKm: ov.DistanceKm,
			AscentM:    ov.AscentM,
			StartTime:  ov.StartTime,
		})
	}

	for _, added := range doc.AddedRoutes {
		if added.ID == "" || rc.reg.Has(added.ID) {
			continue
		}
		r := added
		r.Provenance = types.LocallyAdded
		r.File = ""
		if r.ExportFile == "" {
			r.ExportFile = "data/" + r.ID + ".geojson"
		}
		rc.reg.Add(r, doc.AddedGeoJSON[r.ID])
	}

	rc.reg.RecomputeFolders()
}

// BuildRemote serializes the registry into a remote document: a full field
// snapshot for every baseline route and the whole record, geometry included,
// for every locally-added one. Transient local file handles are not durable
// and are stripped.
func (rc *Reconciler) BuildRemote(now time.Time) *types.RemoteStateDocument {
	rc.reg.RecomputeFolders()

	doc := &types.RemoteStateDocument{
		Version:      types.RemoteStateVersion,
		SavedAt:      now.UTC().Format(time.RFC3339),
		Folders:      rc.reg.Folders(),
		Overrides:    make(map[string]types.RouteOverride),
		AddedRoutes:  []types.Route{},
		AddedGeoJSON: make(map[string]*types.FeatureCollection),
	}

	for _, r := range rc.reg.Routes() {
		switch r.Provenance {
		case types.LocallyAdded:
			entry := r
			entry.File = ""
			doc.AddedRoutes = append(doc.AddedRoutes, entry)
			if fc, ok := rc.reg.Geometry(r.ID); ok {
				doc.AddedGeoJSON[r.ID] = fc
			}
		default:
			route := r
			doc.Overrides[r.ID] = types.SnapshotOverride(&route)
		}
	}
	return doc
}
