// Package siteconfig manages the admin-editable site configuration document.
//
// The document is a single JSON file under the data directory, split into
// sections (general, database, email, credits, downloads, appearance,
// ranking). The Store keeps an in-memory snapshot guarded by a RWMutex;
// handlers read consistent copies via Snapshot and admin saves replace one
// section at a time. Saves are persisted with a write-temp-then-rename so a
// concurrent reader never observes a partially written file, and the
// in-memory snapshot is hot-reloaded in the same call — no process-wide
// environment mutation is involved.
package siteconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	// ErrUnknownSection is returned by SaveSection for a section name outside
	// the known set.
	ErrUnknownSection = errors.New("unknown config section")

	// ErrInvalidSection is returned by SaveSection when the payload does not
	// decode or fails the section's validation.
	ErrInvalidSection = errors.New("invalid config section")
)

// FileName is the name of the config document inside the data directory.
const FileName = "config.json"

// Store owns the site configuration document.
type Store struct {
	path string

	mu  sync.RWMutex
	cfg Config
}

// NewStore creates a Store persisting to <dataDir>/config.json and loads the
// current document. A missing file is not an error: the store starts from
// the built-in defaults and the file is created on first save.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	s := &Store{path: filepath.Join(dataDir, FileName)}
	if err := s.Reload(); err != nil {
		return nil, err
	}

	return s, nil
}

// Reload re-reads the document from disk, replacing the in-memory snapshot.
// A missing file resets the snapshot to defaults.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.mu.Lock()
		s.cfg = Defaults()
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading site config: %w", err)
	}

	cfg := Defaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("decoding site config: %w", err)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current configuration. The copy is safe to
// use for the remainder of a request even if an admin saves concurrently.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SaveSection decodes raw into the named section, validates it, persists the
// updated document atomically and hot-reloads the in-memory snapshot.
//
// Returns ErrUnknownSection for an unrecognized name, a validation error
// from the section's Validate method, or an I/O error from persistence.
func (s *Store) SaveSection(section string, raw json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.cfg
	if err := updated.applySection(section, raw); err != nil {
		return err
	}

	if err := writeFileAtomic(s.path, updated); err != nil {
		return err
	}

	s.cfg = updated
	return nil
}

// applySection decodes raw into the named section of c and validates it.
func (c *Config) applySection(section string, raw json.RawMessage) error {
	decode := func(dst interface{ Validate() error }) error {
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("%w: decoding %q section: %v", ErrInvalidSection, section, err)
		}
		if err := dst.Validate(); err != nil {
			return fmt.Errorf("%w: %q section: %v", ErrInvalidSection, section, err)
		}
		return nil
	}

	switch section {
	case "general":
		return decode(&c.General)
	case "database":
		return decode(&c.Database)
	case "email":
		return decode(&c.Email)
	case "credits":
		return decode(&c.Credits)
	case "downloads":
		return decode(&c.Downloads)
	case "appearance":
		return decode(&c.Appearance)
	case "ranking":
		return decode(&c.Ranking)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
}

// writeFileAtomic marshals cfg and replaces path via a temp file + rename so
// concurrent readers never see a torn document.
func writeFileAtomic(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding site config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp config file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp config file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing site config: %w", err)
	}

	return nil
}
