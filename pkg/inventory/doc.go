// Package inventory implements a small inventory-tracking service: items
// (name, description, optional photo) kept in a repository, with photo
// payloads stored as blobs in a pluggable blob store.
//
// The Service façade owns the coupling rule between the two: an item's
// photo reference and the blob store's contents never diverge. Replacing
// or removing a photo swaps the reference first and deletes the previous
// blob afterwards, so a failure between the two steps can only strand a
// blob, never leave an item pointing at a file that was already removed.
package inventory
