// Package sqlite implements the shared state store: a single keyed row that
// holds the whole remote document, replaced on every save, behind an
// editor-authenticated write API.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/montaraz/rutas/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Store is the SQLite-backed shared state store. All sessions write through
// the same file; concurrent saves resolve by last writer wins.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the store at path, creating parent directories and
// applying the schema. Failures wrap ErrRemoteUnavailable so callers can
// degrade to read-only instead of aborting.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create store dir: %v", types.ErrRemoteUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", types.ErrRemoteUnavailable, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: schema: %v", types.ErrRemoteUnavailable, err)
	}
	return &Store{db: db}, nil
}

// Load reads the remote document for the given state id. Absence of the row
// is not an error and yields a nil document; a malformed stored document is
// treated the same way, with a warning, never as a fatal condition.
func (s *Store) Load(ctx context.Context, stateID string) (*types.RemoteStateDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT state FROM route_state WHERE id = ?", stateID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load state: %v", types.ErrRemoteUnavailable, err)
	}

	var doc types.RemoteStateDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		log.Printf("ignoring malformed remote state %q: %v", stateID, err)
		return nil, nil
	}
	return &doc, nil
}

// Save replaces the whole document under the given state id. No merge and
// no concurrency check happens here; a racing writer simply overwrites.
func (s *Store) Save(ctx context.Context, stateID, owner string, doc *types.RemoteStateDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO route_state (id, owner, saved_at, state)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner = excluded.owner,
			saved_at = excluded.saved_at,
			state = excluded.state`,
		stateID, owner, time.Now().UTC().Format(time.RFC3339), string(raw))
	if err != nil {
		return fmt.Errorf("%w: save state: %v", types.ErrRemoteUnavailable, err)
	}
	return nil
}

// SetEditor creates or replaces an editor credential. The passphrase is
// stored as a bcrypt hash.
func (s *Store) SetEditor(ctx context.Context, name, passphrase string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash passphrase: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO editors (name, passphrase_hash) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET passphrase_hash = excluded.passphrase_hash`,
		name, string(hash))
	if err != nil {
		return fmt.Errorf("%w: set editor: %v", types.ErrRemoteUnavailable, err)
	}
	return nil
}

// Authenticate checks an editor passphrase. Unknown editors and wrong
// passphrases both return ErrBadCredentials.
func (s *Store) Authenticate(ctx context.Context, name, passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT passphrase_hash FROM editors WHERE name = ?", name).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrBadCredentials
	}
	if err != nil {
		return fmt.Errorf("%w: read editor: %v", types.ErrRemoteUnavailable, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)) != nil {
		return types.ErrBadCredentials
	}
	return nil
}

// Close releases the underlying database. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
