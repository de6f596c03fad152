// Package session wires the pipeline together for one running editor or
// viewer: baseline load, remote reconciliation, the edit gate, and the
// debounced save path. Reconciliation on load completes fully before the
// registry is considered ready.
package session

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"sync"
	"time"

	"github.com/montaraz/rutas/internal/archive"
	"github.com/montaraz/rutas/internal/baseline"
	"github.com/montaraz/rutas/internal/registry"
	"github.com/montaraz/rutas/internal/sqlite"
	"github.com/montaraz/rutas/internal/state"
	"github.com/montaraz/rutas/internal/track"
	"github.com/montaraz/rutas/pkg/types"
)

// Session owns one user's view of the shared collection. All mutations
// require an unlocked edit session; reads work even when the shared store is
// unavailable.
type Session struct {
	cfg   types.Config
	reg   *registry.Registry
	ds    *baseline.Dataset
	store *sqlite.Store
	rec   *state.Reconciler
	sched *state.Scheduler

	// mu guards the edit gate; the scheduler's timer goroutine reads it.
	mu       sync.RWMutex
	unlocked bool
	owner    string
	ready    bool
}

// New builds a session over an explicit dataset and store. A nil store
// means the shared store is unavailable: loading proceeds and persistence
// is silently disabled.
func New(cfg types.Config, ds *baseline.Dataset, store *sqlite.Store) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:   cfg,
		reg:   registry.New(),
		ds:    ds,
		store: store,
	}
	s.rec = state.NewReconciler(s.reg)
	s.sched = state.NewScheduler(cfg.SaveDelay, cfg.ImmediateWait, s.saveNow, s.editing)
	return s, nil
}

// Start performs the startup sequence: baseline load (fatal on failure),
// remote document load (warn on failure), inbound reconciliation, folder
// repair. Only after Start returns is the registry ready for display or
// editing.
func (s *Session) Start(ctx context.Context) error {
	routes, folders, err := s.ds.Load()
	if err != nil {
		return fmt.Errorf("load baseline: %w", err)
	}
	for _, r := range routes {
		s.reg.Add(r, nil)
	}
	s.reg.SetFolders(folders)

	if s.store != nil {
		doc, err := s.store.Load(ctx, s.cfg.StateID)
		if err != nil {
			log.Printf("remote state unavailable, continuing with baseline only: %v", err)
		} else {
			s.rec.ApplyRemote(doc)
		}
	}

	s.reg.RecomputeFolders()
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
	return nil
}

// Ready reports whether Start has completed. Mutations before readiness are
// a caller bug; the CLI never hits this, long-lived embedders might.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Registry exposes the live collection for listing and display.
func (s *Session) Registry() *registry.Registry { return s.reg }

// Scheduler exposes the save scheduler, mainly so callers can flush.
func (s *Session) Scheduler() *state.Scheduler { return s.sched }

// Editing reports whether an edit session is active.
func (s *Session) Editing() bool { return s.editing() }

func (s *Session) editing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unlocked
}

// Unlock opens an edit session by checking the shared passphrase against
// the store's editor credential. Without a reachable store editing is
// impossible and ErrRemoteUnavailable is returned. A successful unlock
// schedules an immediate save, mirroring the login-then-sync flow.
func (s *Session) Unlock(ctx context.Context, passphrase string) error {
	if s.store == nil {
		return types.ErrRemoteUnavailable
	}
	if err := s.store.Authenticate(ctx, s.cfg.Editor, passphrase); err != nil {
		return err
	}
	s.mu.Lock()
	s.unlocked = true
	s.owner = s.cfg.Editor
	s.mu.Unlock()
	s.sched.Schedule(true)
	return nil
}

// Lock drops back to read-only and cancels any pending save intent.
func (s *Session) Lock() {
	s.mu.Lock()
	s.unlocked = false
	s.mu.Unlock()
	s.sched.Stop()
}

// ImportTrack runs one file through the ingestion pipeline and registers
// the result. Failures abort this file only; the caller continues with the
// rest of its batch.
func (s *Session) ImportTrack(filename string, data []byte) (types.Route, error) {
	if !s.editing() {
		return types.Route{}, types.ErrReadOnly
	}

	parsed, err := track.Parse(data)
	if err != nil {
		return types.Route{}, fmt.Errorf("import %s: %w", filename, err)
	}
	built, err := track.Build(filename, parsed, s.cfg.ToleranceM, s.reg.Has)
	if err != nil {
		return types.Route{}, fmt.Errorf("import %s: %w", filename, err)
	}

	s.reg.Add(built.Route, built.Geometry)
	s.sched.Schedule(true)
	return built.Route, nil
}

// UpdateRoute patches a route's editable fields. Unknown ids are a no-op,
// matching the registry contract.
func (s *Session) UpdateRoute(id string, patch types.RoutePatch) error {
	if !s.editing() {
		return types.ErrReadOnly
	}
	s.reg.Update(id, patch)
	s.sched.Schedule(true)
	return nil
}

// RemoveRoute deletes a route and releases its cached layers.
func (s *Session) RemoveRoute(id string) error {
	if !s.editing() {
		return types.ErrReadOnly
	}
	if !s.reg.Remove(id) {
		return types.ErrRouteNotFound
	}
	s.sched.Schedule(true)
	return nil
}

// CreateFolder adds an explicit, possibly empty, folder.
func (s *Session) CreateFolder(name string) error {
	if !s.editing() {
		return types.ErrReadOnly
	}
	if err := s.reg.CreateFolder(name); err != nil {
		return err
	}
	s.sched.Schedule(true)
	return nil
}

// DeleteFolder removes a folder, moving its routes to the unlabeled one.
func (s *Session) DeleteFolder(name string) error {
	if !s.editing() {
		return types.ErrReadOnly
	}
	if err := s.reg.DeleteFolder(name); err != nil {
		return err
	}
	s.sched.Schedule(true)
	return nil
}

// Geometry returns a route's geometry, from the registry cache when present
// or else fetched from the baseline dataset and cached. Failures are a
// per-route warning condition wrapping ErrFetchFailure.
func (s *Session) Geometry(id string) (*types.FeatureCollection, error) {
	if fc, ok := s.reg.Geometry(id); ok {
		return fc, nil
	}
	r, ok := s.reg.Get(id)
	if !ok {
		return nil, types.ErrRouteNotFound
	}
	fc, err := s.ds.Geometry(&r)
	if err != nil {
		return nil, err
	}
	s.reg.SetGeometry(id, fc)
	return fc, nil
}

// Markers returns the direction-marker layer for a route, loading geometry
// on demand first.
func (s *Session) Markers(id string) ([]track.DirectionMarker, error) {
	if _, err := s.Geometry(id); err != nil {
		return nil, err
	}
	return s.reg.Markers(id, s.cfg.MarkerCount), nil
}

// Export writes the archive for the whole collection. Gated like every
// other mutation surface.
func (s *Session) Export(w io.Writer) error {
	if !s.editing() {
		return types.ErrReadOnly
	}
	return archive.Export(w, s.reg, s.ds)
}

// saveNow is the scheduler's save target: outbound reconciliation plus the
// whole-document remote write.
func (s *Session) saveNow() error {
	if s.store == nil {
		return types.ErrRemoteUnavailable
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.mu.RLock()
	owner := s.owner
	s.mu.RUnlock()

	doc := s.rec.BuildRemote(time.Now())
	return s.store.Save(ctx, s.cfg.StateID, owner, doc)
}

// Close flushes a best-effort save when an edit session exists, then
// releases the store. Without a prior authenticated session the flush is
// skipped entirely.
func (s *Session) Close() error {
	s.sched.Flush()
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// OpenDataset is the production wiring helper: dataset from the configured
// directory, store from the configured path, nil store (read-only) when the
// store cannot be opened.
func OpenDataset(cfg types.Config, dataFS fs.FS) (*Session, error) {
	store, err := sqlite.Open(cfg.StorePath)
	if err != nil {
		log.Printf("persistence disabled: %v", err)
		store = nil
	}
	return New(cfg, baseline.New(dataFS), store)
}
