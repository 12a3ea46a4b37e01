package inventory

import "io"

// Item represents a tracked inventory record.
//
// Photo holds the blob name of the attached photo, or nil when no photo
// is attached. It references a blob owned by the BlobStore; the item
// never owns the bytes itself.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Photo       *string `json:"photo"`
}

// Clone returns an independent copy of the item. Repositories hand out
// clones so callers can never mutate stored state through a returned
// record.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	if i.Photo != nil {
		ref := *i.Photo
		c.Photo = &ref
	}
	return &c
}

// Upload carries a file received from a client. FieldTag is the form
// field the file arrived under and becomes part of the generated blob
// name; Ext is the original filename extension (including the dot, possibly
// empty).
type Upload struct {
	FieldTag string
	Ext      string
	Reader   io.Reader
}
