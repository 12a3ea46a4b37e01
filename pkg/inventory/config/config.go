// Package config assembles an inventory service from declarative
// configuration: a listen address plus a storage URL selecting the blob
// store backend.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strings"

	"github.com/ostapk/simple-inventory/pkg/inventory"
	"github.com/ostapk/simple-inventory/pkg/inventory/repo/memory"
	fsstorage "github.com/ostapk/simple-inventory/pkg/inventory/storage/fs"
	memorystorage "github.com/ostapk/simple-inventory/pkg/inventory/storage/memory"
	s3storage "github.com/ostapk/simple-inventory/pkg/inventory/storage/s3"
)

// ServerConfig describes a complete server instance.
//
// StorageURL selects the blob store backend:
//
//	memory://                     in-memory store
//	file:///var/cache/inventory   filesystem store rooted at the path
//	s3://bucket?region=us-east-1&endpoint=http://localhost:9000&path_style=true&create_bucket=true
type ServerConfig struct {
	Host        string
	Port        string
	Environment string
	StorageURL  string
}

// Option mutates a ServerConfig during Load.
type Option func(*ServerConfig) error

// Load builds a ServerConfig from defaults and the given options.
func Load(opts ...Option) (*ServerConfig, error) {
	c := defaults()
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Host:        "localhost",
		Port:        "8080",
		Environment: "development",
		StorageURL:  "memory://",
	}
}

// WithHost sets the listen host.
func WithHost(host string) Option {
	return func(c *ServerConfig) error {
		if host != "" {
			c.Host = host
		}
		return nil
	}
}

// WithPort sets the listen port.
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port != "" {
			c.Port = port
		}
		return nil
	}
}

// WithEnvironment sets the runtime environment name.
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env != "" {
			c.Environment = env
		}
		return nil
	}
}

// WithStorage sets the storage URL.
func WithStorage(storageURL string) Option {
	return func(c *ServerConfig) error {
		if storageURL != "" {
			c.StorageURL = storageURL
		}
		return nil
	}
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Validate checks the configuration for consistency.
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	u, err := url.Parse(c.StorageURL)
	if err != nil {
		return fmt.Errorf("invalid storage URL %q: %w", c.StorageURL, err)
	}
	switch u.Scheme {
	case "memory", "file", "s3":
		return nil
	default:
		return fmt.Errorf("unsupported storage scheme %q (use memory://, file:// or s3://)", u.Scheme)
	}
}

// BuildService constructs the repository, the blob store selected by
// StorageURL, and the service façade over them.
func (c *ServerConfig) BuildService(logger *slog.Logger) (inventory.Service, error) {
	store, err := c.buildBlobStore()
	if err != nil {
		return nil, err
	}

	return inventory.New(
		inventory.WithRepository(memory.New()),
		inventory.WithBlobStore(store),
		inventory.WithLogger(logger),
	)
}

func (c *ServerConfig) buildBlobStore() (inventory.BlobStore, error) {
	u, err := url.Parse(c.StorageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid storage URL %q: %w", c.StorageURL, err)
	}

	switch u.Scheme {
	case "memory":
		return memorystorage.New(), nil

	case "file":
		path := u.Path
		if u.Host != "" {
			// file://relative/path parses the first segment as a host.
			path = u.Host + path
		}
		if path == "" {
			return nil, fmt.Errorf("file storage URL requires a path")
		}
		return fsstorage.New(fsstorage.Config{BaseDir: path})

	case "s3":
		q := u.Query()
		return s3storage.New(s3storage.Config{
			Bucket:                 u.Host,
			Region:                 q.Get("region"),
			Endpoint:               q.Get("endpoint"),
			AccessKeyID:            q.Get("access_key_id"),
			SecretAccessKey:        q.Get("secret_access_key"),
			UsePathStyle:           parseBool(q.Get("path_style")),
			CreateBucketIfNotExist: parseBool(q.Get("create_bucket")),
		})

	default:
		return nil, fmt.Errorf("unsupported storage scheme %q", u.Scheme)
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
