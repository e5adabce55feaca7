// Package localfs is the development object store: files land on disk under
// a root directory and are served by the HTTP server under a URL prefix.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"riseadvertising/internal/storage"
)

// URLPrefix is where the router mounts the storage directory.
const URLPrefix = "/uploads"

// Store writes objects below Root.
type Store struct {
	Root string
}

var _ storage.ObjectStore = (*Store)(nil)

// New returns a store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{Root: dir}, nil
}

func (s *Store) resolve(objectPath string) (string, error) {
	clean := filepath.Clean("/" + objectPath)
	if clean == "/" || strings.Contains(objectPath, "..") {
		return "", fmt.Errorf("invalid object path %q", objectPath)
	}
	return filepath.Join(s.Root, filepath.FromSlash(clean)), nil
}

func (s *Store) Upload(ctx context.Context, objectPath string, r io.Reader) error {
	dst, err := s.resolve(objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create object: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("write object: %w", err)
	}
	return f.Close()
}

func (s *Store) PublicURL(objectPath string) (string, error) {
	if _, err := s.resolve(objectPath); err != nil {
		return "", err
	}
	return URLPrefix + "/" + strings.TrimPrefix(objectPath, "/"), nil
}
