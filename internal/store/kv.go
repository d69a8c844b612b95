// Package store persists the tool's small key-value state - per-identity
// credit balances and the generation credential - in a local SQLite
// database. It is a plain get/set surface: no transactions exposed, no
// TTL, string values only.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"reportcraft/internal/logging"
)

// Key namespaces.
const (
	apiKeyKey     = "api_key"
	creditsPrefix = "credits/"
	draftKey      = "draft"
)

// KV is a SQLite-backed key-value store. Single process, single writer;
// a mutex serializes access the same way the database connection does.
type KV struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Open initializes the SQLite database at the given path, creating the
// parent directory and schema as needed.
func Open(path string) (*KV, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Open")
	defer timer.Stop()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}

	kv := &KV{db: db, dbPath: path}
	if err := kv.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("KV store ready at %s", path)
	return kv, nil
}

func (s *KV) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Get returns the value for key and whether it was present.
func (s *KV) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		logging.StoreError("Get %s: %v", key, err)
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes (or overwrites) the value for key.
func (s *KV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		logging.StoreError("Set %s: %v", key, err)
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	logging.StoreDebug("set %s (%d bytes)", key, len(value))
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *KV) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *KV) Close() error {
	return s.db.Close()
}

// =============================================================================
// CREDENTIAL
// =============================================================================

// APIKey returns the stored generation credential. An absent credential is
// reported through ok=false, never as an error: it is a recoverable
// precondition the caller prompts for.
func (s *KV) APIKey() (string, bool, error) {
	return s.Get(apiKeyKey)
}

// SetAPIKey stores the generation credential.
func (s *KV) SetAPIKey(key string) error {
	return s.Set(apiKeyKey, key)
}

// ClearAPIKey removes the stored credential.
func (s *KV) ClearAPIKey() error {
	return s.Delete(apiKeyKey)
}

// =============================================================================
// CREDIT BALANCES
// =============================================================================

// CreditKey returns the namespaced storage key for a username's balance.
func CreditKey(username string) string {
	return creditsPrefix + username
}

// =============================================================================
// DRAFT
// =============================================================================

// Draft returns the saved in-progress document, if any.
func (s *KV) Draft() (string, bool, error) {
	return s.Get(draftKey)
}

// SetDraft saves the in-progress document.
func (s *KV) SetDraft(encoded string) error {
	return s.Set(draftKey, encoded)
}

// ClearDraft removes the saved document.
func (s *KV) ClearDraft() error {
	return s.Delete(draftKey)
}
