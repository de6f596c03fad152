// Package baseline loads the read-only dataset a session starts from: a
// route list document, a folder list document, and one geometry document per
// route, fetched lazily and cached for the session.
package baseline

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"

	"github.com/montaraz/rutas/pkg/types"
)

// Dataset document names at the dataset root.
const (
	RoutesFile  = "routes.json"
	FoldersFile = "folders.json"
)

// Dataset reads baseline documents from any fs.FS: a directory for the
// shipped dataset, or an opened export archive on re-import.
type Dataset struct {
	fsys fs.FS

	mu    sync.Mutex
	cache map[string]*types.FeatureCollection
}

// New wraps a filesystem as a dataset. Nothing is read until Load.
func New(fsys fs.FS) *Dataset {
	return &Dataset{fsys: fsys, cache: make(map[string]*types.FeatureCollection)}
}

// Load reads the route and folder list documents. A malformed route list is
// fatal; a missing folder list is treated as empty. Loaded routes carry
// baseline provenance and backfilled optional fields.
func (d *Dataset) Load() (routes []types.Route, folders []string, err error) {
	raw, err := fs.ReadFile(d.fsys, RoutesFile)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", types.ErrFetchFailure, RoutesFile, err)
	}
	if err := json.Unmarshal(raw, &routes); err != nil {
		return nil, nil, fmt.Errorf("%w: %s must be an array of routes: %v",
			types.ErrFetchFailure, RoutesFile, err)
	}
	for i := range routes {
		routes[i].Provenance = types.Baseline
		routes[i].Folder = types.NormalizeFolder(routes[i].Folder)
	}

	folders = d.loadFolders()
	return routes, folders, nil
}

// loadFolders reads the explicit folder list; any failure means no explicit
// folders, never an error.
func (d *Dataset) loadFolders() []string {
	raw, err := fs.ReadFile(d.fsys, FoldersFile)
	if err != nil {
		return nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil
	}
	out := names[:0]
	for _, n := range names {
		if n = types.NormalizeFolder(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Geometry fetches a route's geometry document, caching it for the rest of
// the session. Failures wrap ErrFetchFailure and are a per-route concern,
// not a session-fatal one.
func (d *Dataset) Geometry(r *types.Route) (*types.FeatureCollection, error) {
	d.mu.Lock()
	if fc, ok := d.cache[r.ID]; ok {
		d.mu.Unlock()
		return fc, nil
	}
	d.mu.Unlock()

	path := r.GeometryPath()
	raw, err := fs.ReadFile(d.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("%w: geometry %s: %v", types.ErrFetchFailure, path, err)
	}
	var fc types.FeatureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("%w: geometry %s: %v", types.ErrFetchFailure, path, err)
	}

	d.mu.Lock()
	d.cache[r.ID] = &fc
	d.mu.Unlock()
	return &fc, nil
}

// Cached returns the cached geometry for a route id, if a fetch already
// happened.
func (d *Dataset) Cached(id string) (*types.FeatureCollection, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fc, ok := d.cache[id]
	return fc, ok
}
