package inventory

import (
	"context"
	"log/slog"
)

// attacher coordinates item photo references with the blob store. It has
// no state of its own; it exists to keep the ordering rules in one place:
// a reference is always swapped before the blob it used to point at is
// removed, so an interrupted operation can only strand a blob, never
// leave a record pointing at a missing file.
type attacher struct {
	blobs  BlobStore
	logger *slog.Logger
}

// attachOnCreate stores the upload, if any, and returns the resulting
// blob name. Called before the item record is created.
func (a *attacher) attachOnCreate(ctx context.Context, upload *Upload) (*string, error) {
	if upload == nil {
		return nil, nil
	}

	name, err := a.blobs.Put(ctx, upload.FieldTag, upload.Ext, upload.Reader)
	if err != nil {
		return nil, &StorageError{Op: "put", Err: err}
	}

	return &name, nil
}

// replace stores the new upload, swaps the item's photo reference and
// then deletes the previously referenced blob. The swap happens before
// the delete; a concurrent replace on the same item can at worst make
// both callers delete the same old blob, which the idempotent Delete
// absorbs.
func (a *attacher) replace(ctx context.Context, repo Repository, id string, upload *Upload) error {
	// Fail before writing anything if the item is gone. Existence wins
	// over a missing upload: an unknown id is not-found even when no
	// file came with the request.
	if _, err := repo.Get(ctx, id); err != nil {
		return err
	}

	if upload == nil {
		return ErrNoFile
	}

	name, err := a.blobs.Put(ctx, upload.FieldTag, upload.Ext, upload.Reader)
	if err != nil {
		return &StorageError{Op: "put", Err: err}
	}

	previous, err := repo.SetPhotoRef(ctx, id, &name)
	if err != nil {
		// The item vanished between the existence check and the swap.
		// The fresh blob is unreachable from any record; remove it.
		a.deleteBlob(ctx, name)
		return err
	}

	if previous != nil {
		a.deleteBlob(ctx, *previous)
	}

	return nil
}

// detach removes the blob of an already-deleted item, if it had one.
func (a *attacher) detach(ctx context.Context, item *Item) {
	if item == nil || item.Photo == nil {
		return
	}
	a.deleteBlob(ctx, *item.Photo)
}

// deleteBlob is the best-effort cleanup path: failures are logged and
// never propagated, since the primary operation has already succeeded.
func (a *attacher) deleteBlob(ctx context.Context, name string) {
	if err := a.blobs.Delete(ctx, name); err != nil {
		a.logger.Error("failed to delete blob", "blob", name, "error", err)
	}
}
