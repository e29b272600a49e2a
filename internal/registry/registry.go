// Package registry manages the flat JSON index files (agents.json,
// chat-sessions.json) that mirror selected fields of many markdown records
// for list-view queries. The markdown files remain the source of truth for
// full records; the registry is authoritative only for listing. Registry
// updates happen in the same request as the markdown mutation; there is
// no background reconciliation, so a handler that skips the update
// introduces drift.
package registry

import (
	"errors"
	"fmt"
	"os"

	"github.com/jfenske89/stride/internal/storage"
)

// Keyed is implemented by registry entry types.
type Keyed interface {
	Key() string
}

// File is one flat JSON registry file holding a list of entries.
type File[T Keyed] struct {
	store storage.Provider
	path  string
}

// NewFile creates a registry handle for the JSON file at path.
func NewFile[T Keyed](store storage.Provider, path string) *File[T] {
	return &File[T]{store: store, path: path}
}

// Load returns all entries. A missing file is a valid empty registry.
func (f *File[T]) Load() ([]T, error) {
	var out []T
	if err := storage.ReadJSON(f.store, f.path, &out); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("registry: load %s: %w", f.path, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Save atomically replaces the registry contents.
func (f *File[T]) Save(entries []T) error {
	if entries == nil {
		entries = []T{}
	}
	if err := storage.WriteJSON(f.store, f.path, entries); err != nil {
		return fmt.Errorf("registry: save %s: %w", f.path, err)
	}
	return nil
}

// Get returns the entry with the given key, or false when absent.
func (f *File[T]) Get(key string) (T, bool, error) {
	var zero T
	entries, err := f.Load()
	if err != nil {
		return zero, false, err
	}
	for _, e := range entries {
		if e.Key() == key {
			return e, true, nil
		}
	}
	return zero, false, nil
}

// Upsert inserts the entry or replaces the existing entry with the same key.
func (f *File[T]) Upsert(entry T) error {
	entries, err := f.Load()
	if err != nil {
		return err
	}
	replaced := false
	for i, e := range entries {
		if e.Key() == entry.Key() {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	return f.Save(entries)
}

// Remove deletes the entry with the given key; removing an absent key is
// not an error.
func (f *File[T]) Remove(key string) error {
	entries, err := f.Load()
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Key() != key {
			kept = append(kept, e)
		}
	}
	return f.Save(kept)
}
