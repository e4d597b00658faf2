// internal/catalog/store.go
//
// File persistence for the book list. The whole list is read at startup
// and rewritten after every mutation; there is no incremental append.

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var codec = jsoniter.ConfigFastest

// Store reads and writes the catalog file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file backing this store.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full book list. A missing file yields an empty list and
// no error. An unparseable file also yields an empty list, but the parse
// error is returned so the caller can record it.
func (s *Store) Load() ([]Book, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Book{}, nil
		}
		return []Book{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	var books []Book
	if err := codec.Unmarshal(data, &books); err != nil {
		return []Book{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Save writes the full book list, creating the parent directory if needed.
func (s *Store) Save(books []Book) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure catalog dir: %w", err)
	}
	data, err := codec.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
