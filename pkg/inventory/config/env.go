package config

import "os"

// WithEnv applies environment variable overrides using the provided
// prefix.
//
// Recognized variables:
//
//	HOST        - Listen host
//	PORT        - Listen port
//	ENVIRONMENT - Runtime environment (default: "development")
//	STORAGE_URL - Blob storage URL (memory:// | file:///path | s3://bucket?...)
func WithEnv(prefix string) Option {
	return func(c *ServerConfig) error {
		if v, ok := lookupEnv(prefix, "HOST"); ok && v != "" {
			c.Host = v
		}
		if v, ok := lookupEnv(prefix, "PORT"); ok && v != "" {
			c.Port = v
		}
		if v, ok := lookupEnv(prefix, "ENVIRONMENT"); ok && v != "" {
			c.Environment = v
		}
		if v, ok := lookupEnv(prefix, "STORAGE_URL"); ok && v != "" {
			c.StorageURL = v
		}
		return nil
	}
}

func lookupEnv(prefix, key string) (string, bool) {
	if prefix != "" {
		return os.LookupEnv(prefix + key)
	}
	return os.LookupEnv(key)
}
