// Package blobstore persists opaque byte payloads on disk, addressed by
// generated references. It knows nothing about ownership or metadata.
package blobstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotFound reports a reference with no blob behind it, as opposed to an
// IO failure while reading one.
var ErrNotFound = errors.New("blob not found")

type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

// Write persists data under a fresh reference and returns it. Every call
// gets its own reference, so concurrent writers never collide.
func (s *Store) Write(data []byte) (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create blob root: %w", err)
	}
	ref := uuid.New().String()
	if err := os.WriteFile(s.path(ref), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob %s: %w", ref, err)
	}
	return ref, nil
}

func (s *Store) Read(ref string) ([]byte, error) {
	data, err := os.ReadFile(s.path(ref))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", ref, err)
	}
	return data, nil
}

// WriteRef persists data at a known reference, overwriting any previous
// content. Used for derivatives, whose names come from DerivedRef.
func (s *Store) WriteRef(ref string, data []byte) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("create blob root: %w", err)
	}
	if err := os.WriteFile(s.path(ref), data, 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", ref, err)
	}
	return nil
}

// DerivedRef names a width-tagged derivative colocated with the original.
func (s *Store) DerivedRef(ref string, width int) string {
	return fmt.Sprintf("%s_%d", ref, width)
}

func (s *Store) path(ref string) string {
	// Base strips any path separators a caller could smuggle into a ref.
	return filepath.Join(s.root, filepath.Base(ref))
}
