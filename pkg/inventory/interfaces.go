package inventory

import (
	"context"
	"io"
)

// BlobStore defines the interface for photo storage backends.
type BlobStore interface {
	// Put stores the bytes read from r under a freshly generated name
	// and returns that name. Two calls never return the same name.
	Put(ctx context.Context, fieldTag, ext string, r io.Reader) (string, error)

	// Get opens the blob stored under name. Returns ErrBlobNotFound if
	// no such blob exists.
	Get(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes the blob stored under name. Deleting a name that
	// does not exist is not an error.
	Delete(ctx context.Context, name string) error
}

// Repository defines the interface for item persistence. Implementations
// return clones; a record obtained from the repository is never an alias
// into its internal state.
type Repository interface {
	// Create validates the name, assigns a fresh ID and inserts the
	// record. Returns ErrNameRequired when name is empty.
	Create(ctx context.Context, name, description string, photoRef *string) (*Item, error)

	// Get returns the item with the given ID, or ErrItemNotFound.
	Get(ctx context.Context, id string) (*Item, error)

	// List returns a snapshot of all items in insertion order.
	List(ctx context.Context) ([]*Item, error)

	// UpdateMetadata applies the supplied non-empty fields to the item.
	// An empty name or description leaves the stored value untouched.
	UpdateMetadata(ctx context.Context, id, name, description string) (*Item, error)

	// SetPhotoRef atomically replaces the item's photo reference and
	// returns the previous one.
	SetPhotoRef(ctx context.Context, id string, ref *string) (*string, error)

	// Delete removes the item and returns the removed record so the
	// caller can clean up its blob.
	Delete(ctx context.Context, id string) (*Item, error)
}

// Service is the façade over the item repository and the blob store.
type Service interface {
	// Register creates a new item, storing the optional photo upload
	// first so the record is created with its final reference.
	Register(ctx context.Context, req RegisterItemRequest) (*Item, error)

	// List returns all items in insertion order.
	List(ctx context.Context) ([]*Item, error)

	// Get returns a single item by ID.
	Get(ctx context.Context, id string) (*Item, error)

	// UpdateMetadata patches name and/or description. Empty fields are
	// treated as not supplied.
	UpdateMetadata(ctx context.Context, req UpdateItemRequest) (*Item, error)

	// GetPhoto opens the item's photo. Returns ErrNoPhoto when the item
	// has no photo reference and ErrPhotoMissing when the reference
	// exists but the blob is gone.
	GetPhoto(ctx context.Context, id string) (io.ReadCloser, error)

	// ReplacePhoto stores the uploaded file, swaps the item's photo
	// reference and then deletes the previously referenced blob.
	ReplacePhoto(ctx context.Context, id string, upload *Upload) error

	// Delete removes the item and, best effort, its blob.
	Delete(ctx context.Context, id string) error

	// Search looks up an item by ID. A pure read: with IncludePhoto set
	// and a photo attached, the returned copy's description carries a
	// pointer to the photo endpoint; the stored record is not touched.
	Search(ctx context.Context, req SearchRequest) (*Item, error)
}
