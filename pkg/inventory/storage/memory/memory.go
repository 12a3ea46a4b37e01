// Package memory provides an in-memory implementation of the
// inventory.BlobStore interface, used in tests and as the default when
// no cache directory is configured.
package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/ostapk/simple-inventory/pkg/inventory"
	"github.com/ostapk/simple-inventory/pkg/inventory/blobname"
)

// Backend is an in-memory implementation of the inventory.BlobStore
// interface
type Backend struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	names *blobname.Generator
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		blobs: make(map[string][]byte),
		names: blobname.New(),
	}
}

// Put stores the bytes read from r under a freshly generated name.
func (b *Backend) Put(ctx context.Context, fieldTag, ext string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	name := b.names.Generate(fieldTag, ext)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[name] = data

	return name, nil
}

// Get opens the blob stored under name.
func (b *Backend) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.blobs[name]
	if !exists {
		return nil, inventory.ErrBlobNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the blob stored under name. Deleting a name that does
// not exist is not an error.
func (b *Backend) Delete(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.blobs, name)
	return nil
}

// Len reports the number of stored blobs.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.blobs)
}
