// Package filestore persists uploaded logo files and hands back opaque
// relative paths. The rest of the application never inspects file contents,
// it only stores the returned reference.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes files under a single base directory.
type Store struct {
	baseDir string
}

// New creates the base directory if needed.
func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes data under a fresh unique name keeping nameHint's extension,
// and returns the path relative to the base directory.
func (s *Store) Save(data []byte, nameHint string) (string, error) {
	ext := strings.ToLower(filepath.Ext(nameHint))
	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.baseDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("filestore: write: %w", err)
	}
	return name, nil
}

// Open returns the contents of a previously saved file. Paths escaping the
// base directory are rejected.
func (s *Store) Open(path string) ([]byte, error) {
	clean := filepath.Clean(path)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("filestore: invalid path %q", path)
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, clean))
	if err != nil {
		return nil, fmt.Errorf("filestore: read: %w", err)
	}
	return data, nil
}
