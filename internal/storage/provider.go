// Package storage defines the data-tree file-system abstraction.
package storage

import "time"

// FileInfo is lightweight metadata for a stored file.
type FileInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for data-tree file operations. All paths are
// relative to the data root.
type Provider interface {
	// List returns metadata for every .md file under dir.
	List(dir string) ([]FileInfo, error)
	// ListDirs returns the names of immediate subdirectories of dir.
	ListDirs(dir string) ([]string, error)
	// ListFiles returns the names of regular files in dir matching suffix.
	ListFiles(dir, suffix string) ([]string, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent dirs.
	Write(path string, content []byte) error
	// Exists reports whether a file exists at path.
	Exists(path string) bool
	// Delete removes the file at path.
	Delete(path string) error
	// RemoveAll removes a directory and everything under it.
	RemoveAll(dir string) error
}
