package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"inkwell/internal/models"

	"github.com/google/uuid"
)

// DiskStore stores images on the local filesystem under a single root
// directory. References are freshly generated UUID names, so concurrent
// uploads of identically named files cannot collide.
type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory if needed and returns the store.
func NewDiskStore(root string) (*DiskStore, error) {
	if root == "" {
		return nil, models.NewValidationError("media directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", root, err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	ref := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(s.root, ref))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write image data: %w", err)
	}
	return ref, nil
}

// Remove deletes the file behind the reference. A missing file is not an
// error: the caller only cares that the reference is gone.
func (s *DiskStore) Remove(_ context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	// References are single path elements; reject anything else.
	if ref != filepath.Base(ref) {
		return models.NewValidationError("invalid image reference")
	}
	if err := os.Remove(filepath.Join(s.root, ref)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image %s: %w", ref, err)
	}
	return nil
}
