// Package archive packages the session state for bulk export: a folder list
// document, a route list document with geometry paths rewritten to the
// packaging-relative layout, and one geometry document per route. The same
// layout re-imports as a baseline dataset.
package archive

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/montaraz/rutas/internal/baseline"
	"github.com/montaraz/rutas/internal/registry"
	"github.com/montaraz/rutas/pkg/types"
)

// Export writes a ZIP archive of the current registry to w. Geometry comes
// from the registry cache when present, else it is re-fetched from the
// baseline dataset.
func Export(w io.Writer, reg *registry.Registry, ds *baseline.Dataset) error {
	reg.RecomputeFolders()

	zw := zip.NewWriter(w)

	if err := writeJSON(zw, baseline.FoldersFile, reg.Folders()); err != nil {
		return err
	}

	routes := reg.Routes()
	exported := make([]types.Route, len(routes))
	for i, r := range routes {
		out := r
		out.File = "data/" + r.ID + ".geojson"
		out.ExportFile = ""
		exported[i] = out
	}
	if err := writeJSON(zw, baseline.RoutesFile, exported); err != nil {
		return err
	}

	for i := range routes {
		r := &routes[i]
		fc, ok := reg.Geometry(r.ID)
		if !ok {
			var err error
			fc, err = ds.Geometry(r)
			if err != nil {
				return fmt.Errorf("export %s: %w", r.ID, err)
			}
		}
		if err := writeJSON(zw, "data/"+r.ID+".geojson", fc); err != nil {
			return err
		}
	}

	return zw.Close()
}

// writeJSON adds one pretty-printed JSON entry to the archive.
func writeJSON(zw *zip.Writer, name string, v any) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("archive entry %s: %w", name, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("archive entry %s: %w", name, err)
	}
	return nil
}

// Open reads an exported archive back as a baseline dataset. The returned
// closer releases the underlying file.
func Open(path string) (*baseline.Dataset, io.Closer, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open archive: %v", types.ErrFetchFailure, err)
	}
	return baseline.New(zr), zr, nil
}
