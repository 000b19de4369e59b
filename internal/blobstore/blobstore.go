package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned for handles with no stored blob.
var ErrNotFound = errors.New("blob not found")

// Store is the byte-storage abstraction used by the transfer service.
type Store interface {
	// Write consumes r fully and persists its bytes under a fresh opaque
	// handle. A write that fails mid-stream leaves no reachable artifact.
	Write(ctx context.Context, r io.Reader) (handle string, size int64, err error)
	// Open returns a reader over the stored bytes for handle.
	Open(ctx context.Context, handle string) (io.ReadCloser, error)
	// Remove deletes the blob for handle, reporting ErrNotFound if absent.
	Remove(ctx context.Context, handle string) error
}
