// Package memory provides an in-memory item repository. The store is
// volatile by design; nothing survives a process restart.
package memory

import (
	"context"
	"sync"

	"github.com/ostapk/simple-inventory/pkg/inventory"
	"github.com/ostapk/simple-inventory/pkg/inventory/itemid"
)

// Repository is an in-memory implementation of inventory.Repository.
// Items are kept in insertion order for listing; all reads return
// clones so callers never hold aliases into the store.
type Repository struct {
	mu    sync.RWMutex
	items map[string]*inventory.Item
	order []string
	ids   *itemid.Source
}

// New creates a new in-memory item repository.
func New() *Repository {
	return &Repository{
		items: make(map[string]*inventory.Item),
		ids:   itemid.NewSource(),
	}
}

// Create validates the name, assigns a fresh ID and inserts the record.
func (r *Repository) Create(ctx context.Context, name, description string, photoRef *string) (*inventory.Item, error) {
	if name == "" {
		return nil, inventory.ErrNameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item := (&inventory.Item{
		ID:          r.ids.Next(),
		Name:        name,
		Description: description,
		Photo:       photoRef,
	}).Clone()

	r.items[item.ID] = item
	r.order = append(r.order, item.ID)

	return item.Clone(), nil
}

// Get retrieves an item by ID.
func (r *Repository) Get(ctx context.Context, id string) (*inventory.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, inventory.ErrItemNotFound
	}

	return item.Clone(), nil
}

// List returns a snapshot of all items in insertion order.
func (r *Repository) List(ctx context.Context) ([]*inventory.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*inventory.Item, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.items[id].Clone())
	}

	return result, nil
}

// UpdateMetadata applies the supplied non-empty fields. An empty name or
// description means "not supplied" and leaves the stored value in place.
func (r *Repository) UpdateMetadata(ctx context.Context, id, name, description string) (*inventory.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return nil, inventory.ErrItemNotFound
	}

	if name != "" {
		item.Name = name
	}
	if description != "" {
		item.Description = description
	}

	return item.Clone(), nil
}

// SetPhotoRef atomically replaces the photo reference and returns the
// previous one.
func (r *Repository) SetPhotoRef(ctx context.Context, id string, ref *string) (*string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return nil, inventory.ErrItemNotFound
	}

	previous := item.Photo
	if ref != nil {
		name := *ref
		item.Photo = &name
	} else {
		item.Photo = nil
	}

	return previous, nil
}

// Delete removes an item and returns the removed record.
func (r *Repository) Delete(ctx context.Context, id string) (*inventory.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return nil, inventory.ErrItemNotFound
	}

	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return item, nil
}
