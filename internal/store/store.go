// Package store persists batch request records as a single JSON document.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes the full record collection at path. Every
// mutation is a whole-file rewrite; there are no partial or append
// writes. Single process, single user.
type Store struct {
	path string
}

// New creates a store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns ~/.oaibatch/requests.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".oaibatch", "requests.json"), nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns all records in insertion order. A missing or corrupt
// file yields an empty slice: losing the durability layer degrades to
// "no history", it never crashes the caller.
func (s *Store) Load() []Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

// Save replaces the persisted collection. The document is written to a
// temp file in the same directory and renamed into place, so a reader
// never observes a partially written collection.
func (s *Store) Save(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".requests-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("set permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
