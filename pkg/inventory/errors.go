package inventory

import (
	"errors"
	"fmt"
)

// Error values
var (
	// ErrItemNotFound indicates the requested item does not exist
	ErrItemNotFound = errors.New("item not found")

	// ErrNameRequired indicates an item was submitted without a name
	ErrNameRequired = errors.New("item name is required")

	// ErrNoPhoto indicates the item has no photo attached
	ErrNoPhoto = errors.New("item has no photo")

	// ErrPhotoMissing indicates the item references a blob that is
	// absent from the blob store
	ErrPhotoMissing = errors.New("photo file missing")

	// ErrBlobNotFound indicates no blob exists under the given name
	ErrBlobNotFound = errors.New("blob not found")

	// ErrNoFile indicates an operation that requires an upload was
	// called without one
	ErrNoFile = errors.New("no file uploaded")
)

// ItemError represents an error from an item operation
type ItemError struct {
	ItemID string
	Op     string
	Err    error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item operation %s failed for item %s: %v", e.Op, e.ItemID, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// StorageError represents an error from a blob store operation
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for blob %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
