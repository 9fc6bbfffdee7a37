package services

import (
	"context"
	"io"
)

// ObjectStore abstracts the object-storage backend that holds file bytes.
// Paths are per-user, collision-resistant keys generated at upload time.
type ObjectStore interface {
	// Put writes an object under the given path
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error

	// Get opens an object for reading
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove deletes an object. Removing a missing object is not an error.
	Remove(ctx context.Context, path string) error

	// PublicURL resolves the publicly reachable URL for a stored path.
	// An empty path resolves to an empty string.
	PublicURL(path string) string
}
