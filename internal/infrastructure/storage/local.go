// Package storage provides file storage backends for attachment payloads.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	catalogapp "github.com/cotizador/backend/internal/application/catalog"
)

// Ensure LocalFileStore implements FileStore
var _ catalogapp.FileStore = (*LocalFileStore)(nil)

// LocalFileStore stores payloads on the local filesystem under a base
// directory. Keys are relative paths; traversal outside the base
// directory is rejected.
type LocalFileStore struct {
	basePath string
}

// NewLocalFileStore creates a LocalFileStore rooted at basePath,
// creating the directory if needed
func NewLocalFileStore(basePath string) (*LocalFileStore, error) {
	if basePath == "" {
		return nil, errors.New("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalFileStore{basePath: basePath}, nil
}

// Save writes the payload under the given key
func (s *LocalFileStore) Save(ctx context.Context, key string, data []byte, contentType string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create storage subdirectory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Read returns the payload stored under the key
func (s *LocalFileStore) Read(ctx context.Context, key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Delete removes the payload. Deleting a missing key is not an error.
func (s *LocalFileStore) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists reports whether a payload is stored under the key
func (s *LocalFileStore) Exists(ctx context.Context, key string) (bool, error) {
	path, err := s.resolve(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *LocalFileStore) resolve(key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	path := filepath.Join(s.basePath, filepath.FromSlash(key))
	base, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(abs, base+string(os.PathSeparator)) && abs != base {
		return "", errors.New("storage key escapes base directory")
	}
	return path, nil
}
