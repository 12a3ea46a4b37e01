// Package fs provides a filesystem implementation of the
// inventory.BlobStore interface. Blobs live as flat files in a single
// base directory under their generated names.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ostapk/simple-inventory/pkg/inventory"
	"github.com/ostapk/simple-inventory/pkg/inventory/blobname"
)

// Config options for the filesystem backend
type Config struct {
	BaseDir string // Base directory for storing blobs
}

// Backend is a filesystem implementation of the inventory.BlobStore
// interface
type Backend struct {
	baseDir string
	names   *blobname.Generator
}

// New creates a new filesystem storage backend. The base directory is
// created recursively if it does not exist.
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{
		baseDir: config.BaseDir,
		names:   blobname.New(),
	}, nil
}

// Put stores the bytes read from r under a freshly generated name.
func (b *Backend) Put(ctx context.Context, fieldTag, ext string, r io.Reader) (string, error) {
	name := b.names.Generate(fieldTag, ext)

	file, err := os.Create(filepath.Join(b.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return name, nil
}

// Get opens the blob stored under name.
func (b *Backend) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	path, err := b.blobPath(name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, inventory.ErrBlobNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes the blob stored under name. Deleting a name that does
// not exist is not an error.
func (b *Backend) Delete(ctx context.Context, name string) error {
	path, err := b.blobPath(name)
	if err != nil {
		// Nothing stored under a malformed name; treat as already gone.
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// blobPath resolves a blob name inside the base directory. Generated
// names never contain separators; anything that does cannot name a blob.
func (b *Backend) blobPath(name string) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", inventory.ErrBlobNotFound
	}
	return filepath.Join(b.baseDir, name), nil
}
