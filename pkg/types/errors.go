package types

import "errors"

// Ingestion errors. Importing the offending file is aborted; other files in
// the same batch continue.
var (
	ErrEmptyTrack     = errors.New("track contains no trackpoints")
	ErrMalformedTrack = errors.New("track yields fewer than two coordinates")
)

// Load and persistence errors.
var (
	// ErrFetchFailure wraps a failed geometry or baseline document load.
	// Baseline failure is fatal to startup; geometry failure is a
	// per-route warning.
	ErrFetchFailure = errors.New("document fetch failed")

	// ErrRemoteUnavailable means the shared state store is unreachable or
	// the session is not authenticated. Persistence is silently disabled
	// and the session degrades to read-only.
	ErrRemoteUnavailable = errors.New("shared state store unavailable")

	// ErrReadOnly is returned by mutating operations while no edit
	// session is active.
	ErrReadOnly = errors.New("session is read-only")

	// ErrBadCredentials is returned when the edit passphrase does not
	// match the store's configured editor.
	ErrBadCredentials = errors.New("invalid editor credentials")
)

// Registry errors.
var (
	ErrRouteNotFound   = errors.New("route not found")
	ErrDuplicateFolder = errors.New("folder already exists")
	ErrFolderNotFound  = errors.New("folder not found")
)
