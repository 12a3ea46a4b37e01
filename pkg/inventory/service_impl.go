package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// service implements the Service interface
type service struct {
	repository Repository
	blobs      BlobStore
	logger     *slog.Logger
	attacher   *attacher
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the item repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the blob storage backend for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobs = store
	}
}

// WithLogger sets the logger used for best-effort cleanup reporting
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, errors.New("repository is required")
	}
	if s.blobs == nil {
		return nil, errors.New("blob store is required")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.attacher = &attacher{blobs: s.blobs, logger: s.logger}

	return s, nil
}

func (s *service) Register(ctx context.Context, req RegisterItemRequest) (*Item, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}

	// Store the upload before creating the record: the item becomes
	// visible only with its final photo reference.
	photoRef, err := s.attacher.attachOnCreate(ctx, req.Upload)
	if err != nil {
		return nil, err
	}

	item, err := s.repository.Create(ctx, req.Name, req.Description, photoRef)
	if err != nil {
		return nil, &ItemError{Op: "register", Err: err}
	}

	return item, nil
}

func (s *service) List(ctx context.Context) ([]*Item, error) {
	return s.repository.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Item, error) {
	return s.repository.Get(ctx, id)
}

func (s *service) UpdateMetadata(ctx context.Context, req UpdateItemRequest) (*Item, error) {
	item, err := s.repository.UpdateMetadata(ctx, req.ID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, err
		}
		return nil, &ItemError{ItemID: req.ID, Op: "update", Err: err}
	}
	return item, nil
}

func (s *service) GetPhoto(ctx context.Context, id string) (io.ReadCloser, error) {
	item, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Photo == nil {
		return nil, ErrNoPhoto
	}

	rc, err := s.blobs.Get(ctx, *item.Photo)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			// The reference exists but the blob is gone: the store was
			// tampered with outside this process.
			return nil, fmt.Errorf("%w: %s", ErrPhotoMissing, *item.Photo)
		}
		return nil, &StorageError{Key: *item.Photo, Op: "get", Err: err}
	}

	return rc, nil
}

func (s *service) ReplacePhoto(ctx context.Context, id string, upload *Upload) error {
	return s.attacher.replace(ctx, s.repository, id, upload)
}

func (s *service) Delete(ctx context.Context, id string) error {
	item, err := s.repository.Delete(ctx, id)
	if err != nil {
		return err
	}

	// The record is gone; blob cleanup must not resurface as a failure.
	s.attacher.detach(ctx, item)

	return nil
}

func (s *service) Search(ctx context.Context, req SearchRequest) (*Item, error) {
	item, err := s.repository.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.IncludePhoto && item.Photo != nil {
		// Annotate the returned copy only; the stored record keeps its
		// description as-is.
		item.Description = fmt.Sprintf("%s [photo: /inventory/%s/photo]", item.Description, item.ID)
	}

	return item, nil
}
