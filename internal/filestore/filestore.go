// Package filestore stores customer profile images on the local filesystem.
package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a stored file does not exist.
var ErrNotFound = errors.New("file not found")

// Store writes and reads profile images under a single base directory.
// Returned paths are relative to the base directory and are the only thing
// persisted on the customer record.
type Store struct {
	baseDir string
}

// NewStore creates a file store rooted at baseDir, creating it if needed.
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		return nil, errors.New("filestore requires a base directory")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// PutProfileImage writes the image bytes for a customer and returns the
// relative path to persist. A fresh name is generated per upload so a stale
// cached path can never serve a newer customer's image.
func (s *Store) PutProfileImage(customerID int64, data []byte, originalName string) (string, error) {
	dir := fmt.Sprintf("customer-%d", customerID)
	name := fmt.Sprintf("profile-image-%s%s", uuid.NewString(), fileExtension(originalName))
	rel := filepath.Join(dir, name)

	if err := os.MkdirAll(filepath.Join(s.baseDir, dir), 0o755); err != nil {
		return "", fmt.Errorf("create customer directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.baseDir, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("write profile image: %w", err)
	}
	return rel, nil
}

// GetProfileImage reads a stored image by its relative path.
func (s *Store) GetProfileImage(path string) ([]byte, error) {
	abs, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read profile image: %w", err)
	}
	return data, nil
}

// Remove deletes a stored image by its relative path.
func (s *Store) Remove(path string) error {
	abs, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("remove profile image: %w", err)
	}
	return nil
}

// resolve confines a relative path to the base directory. Stored paths come
// from this package, but the record they travel through is external input.
func (s *Store) resolve(path string) (string, error) {
	cleaned := filepath.Clean(path)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid profile image path: %s", path)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}

func fileExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ".jpg"
	}
	return ext
}
