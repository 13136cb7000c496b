// Package storage provides SQLite-based persistence for saved canvases and
// the discovery journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/genesis/internal/persist"
)

// Store manages the SQLite database connection. It implements persist.Store.
type Store struct {
	db *sql.DB
}

var _ persist.Store = (*Store)(nil)

// DiscoveryEntry is one journaled first discovery.
type DiscoveryEntry struct {
	ID           int64
	Profile      string
	DefinitionID string
	CreatedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS state_blobs (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS discoveries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			definition_id TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(profile, definition_id)
		);
		CREATE INDEX IF NOT EXISTS idx_discoveries_profile ON discoveries(profile, id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the blob saved under key, or persist.ErrNotFound.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM state_blobs WHERE key = ?",
		key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, persist.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load %s: %w", key, err)
	}
	return value, nil
}

// Save replaces the blob under key.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO state_blobs (key, value, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

// Delete removes the blob under key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM state_blobs WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", key, err)
	}
	return nil
}

// Keys lists saved blob keys with the given prefix.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	// Keys compare bytewise, and no UTF-8 text continues a prefix with 0xff.
	rows, err := s.db.QueryContext(ctx,
		"SELECT key FROM state_blobs WHERE key >= ? AND key < ? ORDER BY key",
		prefix, prefix+"\xff",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		keys = append(keys, k)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return keys, nil
}

// Profiles lists the named profiles saved under base, that is every key of
// the form base/<profile>.
func (s *Store) Profiles(ctx context.Context, base string) ([]string, error) {
	prefix := base + "/"
	keys, err := s.Keys(ctx, prefix)
	if err != nil {
		return nil, err
	}
	profiles := make([]string, 0, len(keys))
	for _, k := range keys {
		if name := strings.TrimPrefix(k, prefix); name != "" {
			profiles = append(profiles, name)
		}
	}
	return profiles, nil
}

// RecordDiscovery journals a first discovery for profile.
// Repeated discoveries of the same element are ignored.
func (s *Store) RecordDiscovery(ctx context.Context, profile, definitionID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO discoveries (profile, definition_id) VALUES (?, ?)",
		profile, definitionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record discovery: %w", err)
	}
	return nil
}

// Discoveries returns the journal for profile, oldest first.
func (s *Store) Discoveries(ctx context.Context, profile string) ([]DiscoveryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, profile, definition_id, created_at
		 FROM discoveries
		 WHERE profile = ?
		 ORDER BY id`,
		profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query discoveries: %w", err)
	}
	defer rows.Close()

	var entries []DiscoveryEntry
	for rows.Next() {
		var e DiscoveryEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Profile, &e.DefinitionID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearDiscoveries deletes the journal for profile.
func (s *Store) ClearDiscoveries(ctx context.Context, profile string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM discoveries WHERE profile = ?", profile)
	if err != nil {
		return fmt.Errorf("storage: cannot clear discoveries: %w", err)
	}
	return nil
}

// ProfileJournal binds the discovery journal to one profile.
type ProfileJournal struct {
	store   *Store
	profile string
}

// Journal returns the discovery journal of profile.
func (s *Store) Journal(profile string) ProfileJournal {
	return ProfileJournal{store: s, profile: profile}
}

// RecordDiscovery journals definitionID for the bound profile.
func (j ProfileJournal) RecordDiscovery(ctx context.Context, definitionID string) error {
	return j.store.RecordDiscovery(ctx, j.profile, definitionID)
}
