// Package registry holds the authoritative in-memory Route and Folder
// collections for a running session, plus the per-route geometry cache and
// the derived direction-marker layers handed to the display side.
package registry

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/montaraz/rutas/internal/track"
	"github.com/montaraz/rutas/pkg/types"
)

// Registry is the single owner of session route/folder state. Components
// receive it by reference; there is no ambient singleton.
type Registry struct {
	mu       sync.RWMutex
	routes   []*types.Route
	folders  []string
	geometry map[string]*types.FeatureCollection
	markers  map[string][]track.DirectionMarker
	coll     *collate.Collator
}

// New returns an empty registry. Folder names sort with Spanish collation,
// matching the dataset's locale.
func New() *Registry {
	return &Registry{
		geometry: make(map[string]*types.FeatureCollection),
		markers:  make(map[string][]track.DirectionMarker),
		coll:     collate.New(language.Spanish),
	}
}

// Add registers a route and, when given, its geometry document. Existing
// routes with the same id are left untouched; Add reports whether the route
// was inserted.
func (g *Registry) Add(r types.Route, geom *types.FeatureCollection) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.findLocked(r.ID) != nil {
		return false
	}
	r.Folder = types.NormalizeFolder(r.Folder)
	g.routes = append(g.routes, &r)
	if geom != nil {
		g.geometry[r.ID] = geom
	}
	g.recomputeFoldersLocked()
	return true
}

// Get returns a copy of the route with the given id.
func (g *Registry) Get(id string) (types.Route, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if r := g.findLocked(id); r != nil {
		return *r, true
	}
	return types.Route{}, false
}

// Has reports whether a route with the given id exists.
func (g *Registry) Has(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.findLocked(id) != nil
}

// Len returns the number of registered routes.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.routes)
}

// Routes returns a snapshot of every route in registration order.
func (g *Registry) Routes() []types.Route {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]types.Route, len(g.routes))
	for i, r := range g.routes {
		out[i] = *r
	}
	return out
}

// Update applies a field patch to the route with the given id, then repairs
// the folder set. An unknown id is a no-op.
func (g *Registry) Update(id string, patch types.RoutePatch) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r := g.findLocked(id)
	if r == nil {
		return
	}
	patch.Apply(r)
	g.recomputeFoldersLocked()
}

// Remove drops a route and releases its cached geometry and marker layer.
// It reports whether a route was removed.
func (g *Registry) Remove(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, r := range g.routes {
		if r.ID == id {
			g.routes = append(g.routes[:i], g.routes[i+1:]...)
			g.teardownLocked(id)
			g.recomputeFoldersLocked()
			return true
		}
	}
	return false
}

// Teardown releases the cached geometry and derived marker layer for a
// route without removing the route itself. The display side calls this when
// it stops showing a route.
func (g *Registry) Teardown(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.teardownLocked(id)
}

func (g *Registry) teardownLocked(id string) {
	delete(g.geometry, id)
	delete(g.markers, id)
}

// SetGeometry caches a route's geometry document.
func (g *Registry) SetGeometry(id string, fc *types.FeatureCollection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.geometry[id] = fc
	delete(g.markers, id)
}

// Geometry returns the cached geometry document for a route, if any.
func (g *Registry) Geometry(id string) (*types.FeatureCollection, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	fc, ok := g.geometry[id]
	return fc, ok
}

// Markers returns the direction-marker layer for a route, computing and
// caching it from the cached geometry on first use. Routes without cached
// geometry yield no markers.
func (g *Registry) Markers(id string, count int) []track.DirectionMarker {
	g.mu.Lock()
	defer g.mu.Unlock()

	if m, ok := g.markers[id]; ok {
		return m
	}
	fc, ok := g.geometry[id]
	if !ok {
		return nil
	}
	m := track.PlaceDirectionMarkers(fc.LineCoordinates(), count)
	g.markers[id] = m
	return m
}

// Folders returns the current folder set, locale-sorted.
func (g *Registry) Folders() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, len(g.folders))
	copy(out, g.folders)
	return out
}

// SetFolders replaces the explicit folder list, normalizing and dropping
// empties, then repairs the invariant against route membership.
func (g *Registry) SetFolders(folders []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.folders = g.folders[:0]
	for _, f := range folders {
		if f = types.NormalizeFolder(f); f != "" {
			g.folders = append(g.folders, f)
		}
	}
	g.recomputeFoldersLocked()
}

// CreateFolder adds an explicit folder, which may stay empty of routes.
// Returns ErrDuplicateFolder when the label already exists.
func (g *Registry) CreateFolder(name string) error {
	name = types.NormalizeFolder(name)
	if name == "" {
		return types.ErrFolderNotFound
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, f := range g.folders {
		if f == name {
			return types.ErrDuplicateFolder
		}
	}
	g.folders = append(g.folders, name)
	g.recomputeFoldersLocked()
	return nil
}

// DeleteFolder removes a folder; member routes move to the unlabeled
// folder. Returns ErrFolderNotFound when the label is unknown.
func (g *Registry) DeleteFolder(name string) error {
	name = types.NormalizeFolder(name)

	g.mu.Lock()
	defer g.mu.Unlock()

	found := false
	kept := g.folders[:0]
	for _, f := range g.folders {
		if f == name {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return types.ErrFolderNotFound
	}
	g.folders = kept
	for _, r := range g.routes {
		if types.NormalizeFolder(r.Folder) == name {
			r.Folder = ""
		}
	}
	g.recomputeFoldersLocked()
	return nil
}

// RecomputeFolders rebuilds the folder set as the union of explicit folders
// and folder labels referenced by any route, deduplicated, case-sensitive
// and locale-sorted.
func (g *Registry) RecomputeFolders() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recomputeFoldersLocked()
}

func (g *Registry) recomputeFoldersLocked() {
	set := make(map[string]bool, len(g.folders))
	for _, f := range g.folders {
		if f = types.NormalizeFolder(f); f != "" {
			set[f] = true
		}
	}
	for _, r := range g.routes {
		if f := types.NormalizeFolder(r.Folder); f != "" {
			set[f] = true
		}
	}

	g.folders = g.folders[:0]
	for f := range set {
		g.folders = append(g.folders, f)
	}
	g.coll.SortStrings(g.folders)
}

// Bounds returns the union of every route's bounding box, for the initial
// map fit. The zero box means no routes.
func (g *Registry) Bounds() types.BBox {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var b types.BBox
	for _, r := range g.routes {
		b = b.Union(r.BBox)
	}
	return b
}

// findLocked returns the route with the given id; callers hold g.mu.
func (g *Registry) findLocked(id string) *types.Route {
	for _, r := range g.routes {
		if r.ID == id {
			return r
		}
	}
	return nil
}
