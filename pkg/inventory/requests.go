package inventory

// Request DTOs

// RegisterItemRequest contains parameters for registering a new item.
type RegisterItemRequest struct {
	Name        string
	Description string
	Upload      *Upload // optional initial photo
}

// UpdateItemRequest contains parameters for patching item metadata.
// Empty fields are treated as not supplied and leave the stored value
// unchanged.
type UpdateItemRequest struct {
	ID          string
	Name        string
	Description string
}

// SearchRequest contains parameters for looking up an item.
type SearchRequest struct {
	ID           string
	IncludePhoto bool
}
