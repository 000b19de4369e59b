package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"ferry/internal/blobstore"
	"ferry/internal/registry"
)

// TransferService orchestrates uploads, downloads, and deletes across the
// registry and the blob store, keeping the two transactionally aligned per
// request: a record is inserted only after its blob is durably written, and
// removed only after its blob removal was attempted.
type TransferService struct {
	// mu serializes the write-then-insert and lookup-then-remove
	// sequences against each other and against reads, so a lookup can
	// never observe a record whose blob is mid-removal.
	mu       sync.RWMutex
	registry *registry.Registry
	blobs    blobstore.Store
	logger   *slog.Logger
}

// NewTransferService constructs a TransferService.
func NewTransferService(reg *registry.Registry, blobs blobstore.Store, logger *slog.Logger) *TransferService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransferService{registry: reg, blobs: blobs, logger: logger}
}

// Upload consumes content, persists it, and registers a new file record.
// The record's size comes from the stored artifact, not from any
// client-declared length.
func (s *TransferService) Upload(ctx context.Context, rawName string, content io.Reader) (registry.FileRecord, error) {
	var zero registry.FileRecord

	name, err := sanitizeFilename(rawName)
	if err != nil {
		return zero, badRequest(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	handle, size, err := s.blobs.Write(ctx, content)
	if err != nil {
		return zero, storageFault(fmt.Errorf("write blob: %w", err))
	}

	rec := registry.FileRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Size:      size,
		CreatedAt: time.Now().UTC(),
		BlobKey:   handle,
	}
	if err := s.registry.Insert(rec); err != nil {
		// Delete the just-written blob so no orphan blob survives the
		// failed insert.
		if removeErr := s.blobs.Remove(ctx, handle); removeErr != nil {
			s.logger.Error("orphan blob after failed insert", "id", rec.ID, "blob", handle, "error", removeErr)
		}
		return zero, storageFault(fmt.Errorf("insert record: %w", err))
	}
	return rec, nil
}

// List returns a snapshot of all file records in insertion order. The
// snapshot is taken under the read lock, so every record in it had its blob
// in place at snapshot time.
func (s *TransferService) List(ctx context.Context) []registry.FileRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry.List()
}

// Download resolves id to its record and an open byte stream. A record
// whose blob is missing is an invariant violation, logged as a consistency
// fault and reported as a storage failure rather than not-found.
func (s *TransferService) Download(ctx context.Context, id string) (registry.FileRecord, io.ReadCloser, error) {
	var zero registry.FileRecord

	// The read lock spans lookup and open, so a concurrent delete cannot
	// remove the blob between the two. It is released once the stream is
	// open; the fd stays valid even if the file is unlinked afterwards.
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.registry.Lookup(id)
	if err != nil {
		return zero, nil, notFound(fmt.Errorf("file not found"))
	}

	rc, err := s.blobs.Open(ctx, rec.BlobKey)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			s.logger.Error("registry record has no backing blob", "id", id, "op", "download", "blob", rec.BlobKey)
			return zero, nil, storageFault(fmt.Errorf("blob missing for file %s", id))
		}
		return zero, nil, storageFault(fmt.Errorf("open blob: %w", err))
	}
	return rec, rc, nil
}

// Delete removes the blob first, then the record. A failed blob removal
// leaves the record in place for diagnosis and retry.
func (s *TransferService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.registry.Lookup(id)
	if err != nil {
		return notFound(fmt.Errorf("file not found"))
	}

	if err := s.blobs.Remove(ctx, rec.BlobKey); err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			s.logger.Error("registry record has no backing blob", "id", id, "op", "delete", "blob", rec.BlobKey)
		} else {
			s.logger.Error("remove blob", "id", id, "op", "delete", "blob", rec.BlobKey, "error", err)
		}
		return storageFault(fmt.Errorf("remove blob for file %s", id))
	}

	if err := s.registry.Remove(id); err != nil {
		return storageFault(fmt.Errorf("remove record %s: %w", id, err))
	}
	return nil
}
