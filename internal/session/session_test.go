package session

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montaraz/rutas/internal/baseline"
	"github.com/montaraz/rutas/internal/sqlite"
	"github.com/montaraz/rutas/internal/state"
	"github.com/montaraz/rutas/pkg/types"
)

const testGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><name>Subida al faro</name><trkseg>
    <trkpt lat="41.900" lon="3.160"><ele>10</ele><time>2024-04-06T09:00:00Z</time></trkpt>
    <trkpt lat="41.905" lon="3.165"><ele>55</ele></trkpt>
    <trkpt lat="41.910" lon="3.162"><ele>120</ele></trkpt>
  </trkseg></trk>
</gpx>`

func testDataFS() fstest.MapFS {
	return fstest.MapFS{
		"routes.json": {Data: []byte(`[
			{"id":"ordesa","name":"Ordesa","folder":"Pirineos","distance_km":18.0,"ascent_m":900,
			 "bbox":[-0.1,42.6,0.1,42.7],"file":"data/ordesa.geojson"}]`)},
		"folders.json": {Data: []byte(`["Pirineos"]`)},
		"data/ordesa.geojson": {Data: []byte(`{
			"type":"FeatureCollection",
			"features":[{"type":"Feature","properties":{"id":"ordesa"},
				"geometry":{"type":"LineString","coordinates":[[-0.1,42.6,1300],[0.0,42.65,1320],[0.1,42.7,1350]]}}],
			"bbox":[-0.1,42.6,0.1,42.7]}`)},
	}
}

func testConfig(t *testing.T) types.Config {
	cfg := types.DefaultConfig()
	cfg.DataDir = "ignored"
	cfg.StorePath = filepath.Join(t.TempDir(), "state.db")
	cfg.ImmediateWait = time.Millisecond
	return cfg
}

// newEditSession opens a store with a known credential and a started,
// unlocked session over it.
func newEditSession(t *testing.T) (*Session, *sqlite.Store) {
	t.Helper()
	ctx := context.Background()
	cfg := testConfig(t)

	store, err := sqlite.Open(cfg.StorePath)
	require.NoError(t, err)
	require.NoError(t, store.SetEditor(ctx, cfg.Editor, "monteperdido"))

	s, err := New(cfg, baseline.New(testDataFS()), store)
	require.NoError(t, err)
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Unlock(ctx, "monteperdido"))
	t.Cleanup(func() { s.Close() })
	return s, store
}

func TestStartLoadsBaseline(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, baseline.New(testDataFS()), nil)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	assert.Equal(t, 1, s.Registry().Len())
	assert.Equal(t, []string{"Pirineos"}, s.Registry().Folders())
	assert.True(t, s.Ready())
	assert.False(t, s.Editing())
}

func TestStartAppliesStoredState(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	store, err := sqlite.Open(cfg.StorePath)
	require.NoError(t, err)
	name := "Ordesa revisada"
	require.NoError(t, store.Save(ctx, cfg.StateID, "ramon", &types.RemoteStateDocument{
		Version:   types.RemoteStateVersion,
		Folders:   []string{"Pirineos", "Pendientes"},
		Overrides: map[string]types.RouteOverride{"ordesa": {Name: &name}},
	}))

	s, err := New(cfg, baseline.New(testDataFS()), store)
	require.NoError(t, err)
	require.NoError(t, s.Start(ctx))
	defer s.Close()

	r, ok := s.Registry().Get("ordesa")
	require.True(t, ok)
	assert.Equal(t, "Ordesa revisada", r.Name)
	assert.ElementsMatch(t, []string{"Pirineos", "Pendientes"}, s.Registry().Folders())
}

func TestMutationsRequireUnlock(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, baseline.New(testDataFS()), nil)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	_, err = s.ImportTrack("faro.gpx", []byte(testGPX))
	assert.ErrorIs(t, err, types.ErrReadOnly)
	assert.ErrorIs(t, s.UpdateRoute("ordesa", types.RoutePatch{}), types.ErrReadOnly)
	assert.ErrorIs(t, s.RemoveRoute("ordesa"), types.ErrReadOnly)
	assert.ErrorIs(t, s.CreateFolder("Nueva"), types.ErrReadOnly)
	assert.ErrorIs(t, s.DeleteFolder("Pirineos"), types.ErrReadOnly)
	assert.ErrorIs(t, s.Export(nil), types.ErrReadOnly)
}

func TestUnlockWithoutStore(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, baseline.New(testDataFS()), nil)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	assert.ErrorIs(t, s.Unlock(context.Background(), "da igual"), types.ErrRemoteUnavailable)
}

func TestUnlockBadPassphrase(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	store, err := sqlite.Open(cfg.StorePath)
	require.NoError(t, err)
	require.NoError(t, store.SetEditor(ctx, cfg.Editor, "monteperdido"))

	s, err := New(cfg, baseline.New(testDataFS()), store)
	require.NoError(t, err)
	require.NoError(t, s.Start(ctx))
	defer s.Close()

	assert.ErrorIs(t, s.Unlock(ctx, "incorrecta"), types.ErrBadCredentials)
	assert.False(t, s.Editing())
}

func TestImportTrackPipeline(t *testing.T) {
	s, _ := newEditSession(t)

	r, err := s.ImportTrack("Subida al faro.gpx", []byte(testGPX))
	require.NoError(t, err)

	assert.Equal(t, "Subida_al_faro", r.ID)
	assert.Equal(t, "Subida al faro", r.Name)
	assert.Equal(t, types.LocallyAdded, r.Provenance)
	assert.Equal(t, 110.0, r.AscentM)
	assert.Greater(t, r.DistanceKm, 0.0)
	require.NotNil(t, r.StartTime)
	assert.Equal(t, "2024-04-06T09:00:00Z", *r.StartTime)

	fc, ok := s.Registry().Geometry(r.ID)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(fc.LineCoordinates()), 2)

	// A second import of the same filename gets a suffixed id.
	again, err := s.ImportTrack("Subida al faro.gpx", []byte(testGPX))
	require.NoError(t, err)
	assert.Equal(t, "Subida_al_faro_2", again.ID)
}

func TestImportBadFileLeavesSessionUsable(t *testing.T) {
	s, _ := newEditSession(t)

	_, err := s.ImportTrack("rota.gpx", []byte("garbage"))
	require.Error(t, err)

	r, err := s.ImportTrack("buena.gpx", []byte(testGPX))
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
}

func TestGeometryLazyLoadAndMarkers(t *testing.T) {
	s, _ := newEditSession(t)

	if _, ok := s.Registry().Geometry("ordesa"); ok {
		t.Fatal("baseline geometry eagerly loaded")
	}
	fc, err := s.Geometry("ordesa")
	require.NoError(t, err)
	assert.Len(t, fc.LineCoordinates(), 3)
	if _, ok := s.Registry().Geometry("ordesa"); !ok {
		t.Fatal("fetched geometry not cached in the registry")
	}

	markers, err := s.Markers("ordesa")
	require.NoError(t, err)
	assert.NotEmpty(t, markers)

	_, err = s.Geometry("inexistente")
	assert.ErrorIs(t, err, types.ErrRouteNotFound)
}

func TestEditsPersistAcrossSessions(t *testing.T) {
	ctx := context.Background()
	s, _ := newEditSession(t)
	// Drive saves by hand instead of waiting out timers.
	s.Scheduler().SetAfterFunc(func(d time.Duration, f func()) state.Timer {
		return noopTimer{}
	})

	folder := "Huesca"
	require.NoError(t, s.UpdateRoute("ordesa", types.RoutePatch{Folder: &folder}))
	_, err := s.ImportTrack("faro.gpx", []byte(testGPX))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// A fresh read-only session over the same store sees the edits.
	cfg := testConfig(t)
	cfg.StorePath = s.cfg.StorePath
	store, err := sqlite.Open(cfg.StorePath)
	require.NoError(t, err)

	fresh, err := New(cfg, baseline.New(testDataFS()), store)
	require.NoError(t, err)
	require.NoError(t, fresh.Start(ctx))
	defer fresh.Close()

	r, ok := fresh.Registry().Get("ordesa")
	require.True(t, ok)
	assert.Equal(t, "Huesca", r.Folder)

	imported, ok := fresh.Registry().Get("faro")
	require.True(t, ok)
	assert.Equal(t, types.LocallyAdded, imported.Provenance)
	fc, ok := fresh.Registry().Geometry("faro")
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(fc.LineCoordinates()), 2)
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

func TestCloseWithoutUnlockSkipsSave(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	store, err := sqlite.Open(cfg.StorePath)
	require.NoError(t, err)

	s, err := New(cfg, baseline.New(testDataFS()), store)
	require.NoError(t, err)
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Close())

	// No document was ever written.
	verify, err := sqlite.Open(cfg.StorePath)
	require.NoError(t, err)
	defer verify.Close()
	doc, err := verify.Load(ctx, cfg.StateID)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestLockCancelsPendingSave(t *testing.T) {
	s, _ := newEditSession(t)
	require.NoError(t, s.CreateFolder("Pendientes"))
	s.Lock()
	assert.False(t, s.Editing())
	assert.ErrorIs(t, s.CreateFolder("Otra"), types.ErrReadOnly)
}
