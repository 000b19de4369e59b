// Package blobstore persists uploaded byte content on local disk.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps blobs as opaque-named files in a single directory.
// Handles are generated server-side; content and client-supplied names
// never influence the storage key, so identical uploads stay independent.
type LocalStore struct {
	root string
}

// NewLocalStore creates a local store rooted at root, creating the
// directory and its tmp staging area if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("blob store root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(abs, "tmp"), 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{root: abs}, nil
}

// Write streams r into a temp file and atomically publishes it under a
// fresh handle. Any failure discards the partial write.
func (s *LocalStore) Write(ctx context.Context, r io.Reader) (string, int64, error) {
	if s == nil {
		return "", 0, fmt.Errorf("blob store is not configured")
	}
	if r == nil {
		return "", 0, fmt.Errorf("reader is required")
	}
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	tmp, err := os.CreateTemp(filepath.Join(s.root, "tmp"), "put-*")
	if err != nil {
		return "", 0, err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	n, err := io.Copy(tmp, r)
	if err != nil {
		cleanup()
		return "", 0, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", 0, err
	}

	handle := uuid.NewString()
	if err := os.Rename(tmpPath, filepath.Join(s.root, handle)); err != nil {
		_ = os.Remove(tmpPath)
		return "", 0, err
	}
	return handle, n, nil
}

// Open returns a reader over the blob for handle.
func (s *LocalStore) Open(ctx context.Context, handle string) (io.ReadCloser, error) {
	if s == nil {
		return nil, fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.pathFromHandle(handle)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Remove deletes the blob for handle. A missing blob reports ErrNotFound so
// callers can surface registry/blob drift instead of masking it.
func (s *LocalStore) Remove(ctx context.Context, handle string) error {
	if s == nil {
		return fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathFromHandle(handle)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *LocalStore) pathFromHandle(handle string) (string, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return "", fmt.Errorf("blob handle is required")
	}
	// Handles are flat names; anything resembling a path is rejected.
	if strings.ContainsAny(handle, `/\`) || handle == "." || handle == ".." || handle == "tmp" {
		return "", fmt.Errorf("invalid blob handle")
	}
	return filepath.Join(s.root, handle), nil
}
